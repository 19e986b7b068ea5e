package branchstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	branchapimodels "ops-portal-backend/models/api/branch"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Branch) (string, error)
	Update(branchID string, updMap map[string]interface{}) error
	GetByID(branchID string) (rec *dbmodels.Branch, err error)
	GetList(companyID string) (list []dbmodels.Branch, err error)
	GetActiveList(companyID string) (list []dbmodels.Branch, err error)
	GetSubBranches(parentBranchID string) (list []dbmodels.Branch, err error)
	ExistByName(companyID, name string) (bool, error)
	SetStatusCascade(branchID string, isActive bool) error
	GetEmployeeCounts(companyID string) (list []branchapimodels.EmployeeCount, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Branch) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(branchID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Branch{}).
		Where("id = ?", branchID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(branchID string) (rec *dbmodels.Branch, err error) {
	err = i.db.Model(dbmodels.Branch{}).
		Where("id = ?", branchID).
		Preload("ParentBranch").
		Preload("Company").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetList(companyID string) (list []dbmodels.Branch, err error) {
	err = i.db.Model(dbmodels.Branch{}).
		Where("company_id = ?", companyID).
		Preload("ParentBranch").
		Order("is_main DESC, name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetActiveList(companyID string) (list []dbmodels.Branch, err error) {
	err = i.db.Model(dbmodels.Branch{}).
		Where("company_id = ? AND is_active = true", companyID).
		Order("is_main DESC, name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetSubBranches(parentBranchID string) (list []dbmodels.Branch, err error) {
	err = i.db.Model(dbmodels.Branch{}).
		Where("parent_branch_id = ?", parentBranchID).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistByName(companyID, name string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.Branch{}).
		Where("company_id = ? AND name = ?", companyID, name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetStatusCascade деактивация филиала гасит его сотрудников,
// активация сотрудников не возвращает
func (i impl) SetStatusCascade(branchID string, isActive bool) error {
	err := i.db.
		Model(&dbmodels.Branch{}).
		Where("id = ?", branchID).
		Update("is_active", isActive).
		Error
	if err != nil {
		return err
	}
	if isActive {
		return nil
	}
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("branch_id = ?", branchID).
		Update("is_active", false).
		Error
}

func (i impl) GetEmployeeCounts(companyID string) (list []branchapimodels.EmployeeCount, err error) {
	err = i.db.
		Table("branches b").
		Select("b.id as branch_id, b.name as branch_name, count(e.id) as employee_count").
		Joins("LEFT JOIN employees e ON e.branch_id = b.id AND e.is_active = true").
		Where("b.company_id = ?", companyID).
		Group("b.id, b.name, b.is_main").
		Order("b.is_main DESC, b.name").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

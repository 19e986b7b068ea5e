package employeestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	employeeapimodels "ops-portal-backend/models/api/employee"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Employee) (string, error)
	Update(employeeID string, updMap map[string]interface{}) error
	GetByID(employeeID string) (rec *dbmodels.Employee, err error)
	FindByLogin(login string) (rec *dbmodels.Employee, err error)
	GetListByCompany(companyID string) (list []dbmodels.Employee, err error)
	GetListByBranch(branchID string) (list []dbmodels.Employee, err error)
	GetActiveList(filter employeeapimodels.ActiveFilter) (list []dbmodels.Employee, err error)
	GetActiveListByRoles(roleIDs []string) (list []dbmodels.Employee, err error)
	ExistByLogin(login string) (bool, error)
	CountByRole(roleID string) (int64, error)
	ReassignRole(roleID, replacementRoleID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(employeeID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", employeeID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(employeeID string) (rec *dbmodels.Employee, err error) {
	err = i.db.Model(dbmodels.Employee{}).
		Where("id = ?", employeeID).
		Preload("Branch").
		Preload("Role").
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

// FindByLogin для аутентификации, сотрудник валиден только при активных
// сотруднике, филиале и компании
func (i impl) FindByLogin(login string) (rec *dbmodels.Employee, err error) {
	err = i.db.Model(dbmodels.Employee{}).
		Joins("JOIN branches b ON b.id = employees.branch_id").
		Joins("JOIN companies c ON c.id = b.company_id").
		Where("employees.login = ? AND employees.is_active = true AND b.is_active = true AND c.is_active = true", login).
		Preload("Branch").
		Preload("Branch.Company").
		Preload("Role").
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

func (i impl) GetListByCompany(companyID string) (list []dbmodels.Employee, err error) {
	err = i.db.Model(dbmodels.Employee{}).
		Joins("JOIN branches b ON b.id = employees.branch_id").
		Joins("JOIN roles r ON r.id = employees.role_id").
		Where("b.company_id = ?", companyID).
		Preload("Branch").
		Preload("Role").
		Order("b.name, r.level, employees.full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetListByBranch(branchID string) (list []dbmodels.Employee, err error) {
	err = i.db.Model(dbmodels.Employee{}).
		Joins("JOIN roles r ON r.id = employees.role_id").
		Where("employees.branch_id = ?", branchID).
		Preload("Branch").
		Preload("Role").
		Order("r.level, employees.full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetActiveList(filter employeeapimodels.ActiveFilter) (list []dbmodels.Employee, err error) {
	tx := i.db.Model(dbmodels.Employee{}).
		Joins("JOIN branches b ON b.id = employees.branch_id").
		Joins("JOIN roles r ON r.id = employees.role_id").
		Where("employees.is_active = true AND b.is_active = true")
	if filter.CompanyID != "" {
		tx = tx.Where("b.company_id = ?", filter.CompanyID)
	}
	if filter.BranchID != "" {
		tx = tx.Where("employees.branch_id = ?", filter.BranchID)
	}
	if filter.RoleLevel > 0 {
		tx = tx.Where("r.level = ?", filter.RoleLevel)
	}
	err = tx.
		Preload("Branch").
		Preload("Role").
		Order("r.level, employees.full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetActiveListByRoles(roleIDs []string) (list []dbmodels.Employee, err error) {
	if len(roleIDs) == 0 {
		return []dbmodels.Employee{}, nil
	}
	err = i.db.Model(dbmodels.Employee{}).
		Joins("JOIN roles r ON r.id = employees.role_id").
		Where("employees.role_id IN ? AND employees.is_active = true", roleIDs).
		Preload("Branch").
		Preload("Role").
		Order("r.level, employees.full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistByLogin(login string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.Employee{}).
		Where("login = ?", login).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) CountByRole(roleID string) (int64, error) {
	var count int64
	err := i.db.Model(dbmodels.Employee{}).
		Where("role_id = ?", roleID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReassignRole перевод всех сотрудников роли на замещающую роль
func (i impl) ReassignRole(roleID, replacementRoleID string) error {
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("role_id = ?", roleID).
		Update("role_id", replacementRoleID).
		Error
}

package companystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Company) (string, error)
	Update(companyID string, updMap map[string]interface{}) error
	GetByID(companyID string) (rec *dbmodels.Company, err error)
	FindByLogin(login string) (rec *dbmodels.Company, err error)
	GetList() (list []dbmodels.Company, err error)
	GetActiveList() (list []dbmodels.Company, err error)
	ExistByName(name string) (bool, error)
	ExistByLogin(login string) (bool, error)
	SetStatusCascade(companyID string, isActive bool) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Company) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(companyID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Company{}).
		Where("id = ?", companyID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(companyID string) (rec *dbmodels.Company, err error) {
	err = i.db.Model(dbmodels.Company{}).
		Where("id = ?", companyID).
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

func (i impl) FindByLogin(login string) (rec *dbmodels.Company, err error) {
	err = i.db.Model(dbmodels.Company{}).
		Where("login = ?", login).
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

func (i impl) GetList() (list []dbmodels.Company, err error) {
	err = i.db.Model(dbmodels.Company{}).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetActiveList() (list []dbmodels.Company, err error) {
	err = i.db.Model(dbmodels.Company{}).
		Where("is_active = true").
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistByName(name string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.Company{}).
		Where("name = ?", name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ExistByLogin(login string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.Company{}).
		Where("login = ?", login).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetStatusCascade деактивация компании каскадно гасит филиалы и сотрудников,
// активация обратно их не включает
func (i impl) SetStatusCascade(companyID string, isActive bool) error {
	err := i.db.
		Model(&dbmodels.Company{}).
		Where("id = ?", companyID).
		Update("is_active", isActive).
		Error
	if err != nil {
		return err
	}
	if isActive {
		return nil
	}
	err = i.db.
		Model(&dbmodels.Branch{}).
		Where("company_id = ?", companyID).
		Update("is_active", false).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("branch_id IN (SELECT id FROM branches WHERE company_id = ?)", companyID).
		Update("is_active", false).
		Error
}

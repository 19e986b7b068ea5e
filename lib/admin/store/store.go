package adminstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	FindByLogin(login string) (rec *dbmodels.AdminUser, err error)
	GetByID(adminID string) (rec *dbmodels.AdminUser, err error)
	Create(rec dbmodels.AdminUser) (string, error)
	Update(adminID string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) FindByLogin(login string) (rec *dbmodels.AdminUser, err error) {
	err = i.db.Model(dbmodels.AdminUser{}).
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

func (i impl) GetByID(adminID string) (rec *dbmodels.AdminUser, err error) {
	err = i.db.Model(dbmodels.AdminUser{}).
		Where("id = ?", adminID).
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

func (i impl) Create(rec dbmodels.AdminUser) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(adminID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.AdminUser{}).
		Where("id = ?", adminID).
		Updates(updMap).
		Error
}

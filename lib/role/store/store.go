package rolestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Role) (string, error)
	Update(roleID string, updMap map[string]interface{}) error
	Delete(roleID string) error
	GetByID(roleID string) (rec *dbmodels.Role, err error)
	GetList(companyID string) (list []dbmodels.Role, err error)
	GetManagerRoleIDs(companyID string) (ids []string, err error)
	ExistByName(companyID, name string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Role) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(roleID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Role{}).
		Where("id = ?", roleID).
		Updates(updMap).
		Error
}

func (i impl) Delete(roleID string) error {
	return i.db.
		Where("id = ?", roleID).
		Delete(&dbmodels.Role{}).
		Error
}

func (i impl) GetByID(roleID string) (rec *dbmodels.Role, err error) {
	err = i.db.Model(dbmodels.Role{}).
		Where("id = ?", roleID).
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

func (i impl) GetList(companyID string) (list []dbmodels.Role, err error) {
	err = i.db.Model(dbmodels.Role{}).
		Where("company_id = ?", companyID).
		Order("level").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetManagerRoleIDs роли с правом руководства (уровень <= 2)
func (i impl) GetManagerRoleIDs(companyID string) (ids []string, err error) {
	err = i.db.Model(dbmodels.Role{}).
		Where("company_id = ? AND level <= 2", companyID).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) ExistByName(companyID, name string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.Role{}).
		Where("company_id = ? AND name = ?", companyID, name).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

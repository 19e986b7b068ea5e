package companyhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ops-portal-backend/db"
	companystore "ops-portal-backend/lib/company/store"
	rolestore "ops-portal-backend/lib/role/store"
	authutils "ops-portal-backend/lib/utils/auth-utils"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	"ops-portal-backend/models"
	companyapimodels "ops-portal-backend/models/api/company"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(request companyapimodels.CreateCompany) (id string, err error)
	Get(companyID string) (view companyapimodels.CompanyView, err error)
	GetList() (list []companyapimodels.CompanyView, err error)
	GetActiveList() (list []companyapimodels.CompanyView, err error)
	UpdateProfile(companyID string, request companyapimodels.UpdateProfile) error
	SetStatus(companyID string, isActive bool) error
	ResetPassword(companyID, newPassword string) error
	ChangePassword(companyID string, request companyapimodels.ChangePassword) error
	SetPhotoKey(companyID, photoKey string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: companystore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store companystore.Provider
}

var defaultRoles = []struct {
	name  string
	level int
}{
	{models.ManagerRoleName, models.ManagerLevel},
	{models.AsstManagerRoleName, models.AsstManagerLevel},
	{models.GeneralEmployeeRoleName, models.GeneralEmployeeLevel},
}

// Create компания создается вместе с набором ролей по умолчанию
// в одной транзакции
func (i impl) Create(request companyapimodels.CreateCompany) (id string, err error) {
	logger := log.WithField("company_name", request.Name)
	exist, err := i.store.ExistByName(request.Name)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("компания с таким названием уже существует")
	}
	exist, err = i.store.ExistByLogin(request.Login)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("компания с таким логином уже существует")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return "", err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txStore := companystore.NewInstance(tx)
		txRoleStore := rolestore.NewInstance(tx)
		rec := dbmodels.Company{
			Name:     request.Name,
			Login:    request.Login,
			Password: hash,
			Email:    request.Email,
			IsActive: true,
		}
		id, err = txStore.Create(rec)
		if err != nil {
			return err
		}
		for _, role := range defaultRoles {
			_, err = txRoleStore.Create(dbmodels.Role{
				CompanyID: id,
				Name:      role.name,
				Level:     role.level,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания компании")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создана компания")
	return id, nil
}

func (i impl) Get(companyID string) (view companyapimodels.CompanyView, err error) {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return companyapimodels.CompanyView{}, err
	}
	if rec == nil {
		return companyapimodels.CompanyView{}, errors.New("компания не найдена")
	}
	return rec.ToModel(), nil
}

func (i impl) GetList() (list []companyapimodels.CompanyView, err error) {
	recList, err := i.store.GetList()
	if err != nil {
		return nil, err
	}
	list = make([]companyapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) GetActiveList() (list []companyapimodels.CompanyView, err error) {
	recList, err := i.store.GetActiveList()
	if err != nil {
		return nil, err
	}
	list = make([]companyapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) UpdateProfile(companyID string, request companyapimodels.UpdateProfile) error {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("компания не найдена")
	}
	if rec.Name != request.Name {
		exist, err := i.store.ExistByName(request.Name)
		if err != nil {
			return err
		}
		if exist {
			return errors.New("компания с таким названием уже существует")
		}
	}
	return i.store.Update(companyID, map[string]interface{}{
		"name":  request.Name,
		"email": request.Email,
	})
}

func (i impl) SetStatus(companyID string, isActive bool) error {
	logger := log.WithField("rec_id", companyID)
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("компания не найдена")
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return companystore.NewInstance(tx).SetStatusCascade(companyID, isActive)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка смены статуса компании")
		return err
	}
	logger.
		WithField("is_active", isActive).
		Info("изменен статус компании")
	return nil
}

func (i impl) ResetPassword(companyID, newPassword string) error {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("компания не найдена")
	}
	hash, err := authutils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return i.store.Update(companyID, map[string]interface{}{
		"password": hash,
	})
}

func (i impl) ChangePassword(companyID string, request companyapimodels.ChangePassword) error {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("компания не найдена")
	}
	if !authutils.CheckPassword(rec.Password, request.CurrentPassword) {
		return errors.New("неверный текущий пароль")
	}
	hash, err := authutils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	return i.store.Update(companyID, map[string]interface{}{
		"password": hash,
	})
}

func (i impl) SetPhotoKey(companyID, photoKey string) error {
	return i.store.Update(companyID, map[string]interface{}{
		"photo_key": photoKey,
	})
}

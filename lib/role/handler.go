package rolehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ops-portal-backend/db"
	employeestore "ops-portal-backend/lib/employee/store"
	rolestore "ops-portal-backend/lib/role/store"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	roleapimodels "ops-portal-backend/models/api/role"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(companyID string, request roleapimodels.CreateRole) (id string, err error)
	Update(companyID, roleID string, request roleapimodels.UpdateRole) error
	Get(companyID, roleID string) (view roleapimodels.RoleView, err error)
	GetList(companyID string) (list []roleapimodels.RoleView, err error)
	Delete(companyID, roleID, replacementRoleID string) error
}

var Instance Provider

// txRunner выполняет fn в транзакции, сторы внутри fn привязаны к ней
type txRunner func(fn func(roles rolestore.Provider, employees employeestore.Provider) error) error

func gormTxRunner(fn func(roles rolestore.Provider, employees employeestore.Provider) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(rolestore.NewInstance(tx), employeestore.NewInstance(tx))
	})
}

func NewHandler() {
	instance := impl{
		store:         rolestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		inTx:          gormTxRunner,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         rolestore.Provider
	employeeStore employeestore.Provider
	inTx          txRunner
}

func (i impl) Create(companyID string, request roleapimodels.CreateRole) (id string, err error) {
	logger := log.WithField("company_id", companyID).
		WithField("role_name", request.Name)
	exist, err := i.store.ExistByName(companyID, request.Name)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("роль с таким названием уже существует")
	}
	id, err = i.store.Create(dbmodels.Role{
		CompanyID: companyID,
		Name:      request.Name,
		Level:     request.Level,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания роли")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создана роль")
	return id, nil
}

func (i impl) Update(companyID, roleID string, request roleapimodels.UpdateRole) error {
	rec, err := i.getOwn(companyID, roleID)
	if err != nil {
		return err
	}
	if rec.Name != request.Name {
		exist, err := i.store.ExistByName(companyID, request.Name)
		if err != nil {
			return err
		}
		if exist {
			return errors.New("роль с таким названием уже существует")
		}
	}
	return i.store.Update(roleID, map[string]interface{}{
		"name":  request.Name,
		"level": request.Level,
	})
}

func (i impl) Get(companyID, roleID string) (view roleapimodels.RoleView, err error) {
	rec, err := i.getOwn(companyID, roleID)
	if err != nil {
		return roleapimodels.RoleView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) GetList(companyID string) (list []roleapimodels.RoleView, err error) {
	recList, err := i.store.GetList(companyID)
	if err != nil {
		return nil, err
	}
	list = make([]roleapimodels.RoleView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

// Delete сотрудники роли сначала переводятся на замещающую роль,
// удаление и перевод идут одной транзакцией
func (i impl) Delete(companyID, roleID, replacementRoleID string) error {
	logger := log.WithField("company_id", companyID).
		WithField("rec_id", roleID)
	if roleID == replacementRoleID {
		return errors.New("замещающая роль совпадает с удаляемой")
	}
	_, err := i.getOwn(companyID, roleID)
	if err != nil {
		return err
	}
	_, err = i.getOwn(companyID, replacementRoleID)
	if err != nil {
		return errors.New("замещающая роль не найдена")
	}
	affected, err := i.employeeStore.CountByRole(roleID)
	if err != nil {
		return err
	}
	err = i.inTx(func(roles rolestore.Provider, employees employeestore.Provider) error {
		err := employees.ReassignRole(roleID, replacementRoleID)
		if err != nil {
			return err
		}
		return roles.Delete(roleID)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления роли")
		return err
	}
	logger.
		WithField("replacement_role_id", replacementRoleID).
		WithField("reassigned_count", affected).
		Info("удалена роль")
	return nil
}

func (i impl) getOwn(companyID, roleID string) (*dbmodels.Role, error) {
	rec, err := i.store.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, errors.New("роль не найдена")
	}
	return rec, nil
}

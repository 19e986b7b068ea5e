package employeehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/db"
	branchstore "ops-portal-backend/lib/branch/store"
	employeestore "ops-portal-backend/lib/employee/store"
	"ops-portal-backend/lib/permissions"
	rolestore "ops-portal-backend/lib/role/store"
	authutils "ops-portal-backend/lib/utils/auth-utils"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	"ops-portal-backend/models"
	employeeapimodels "ops-portal-backend/models/api/employee"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(authCtx models.AuthContext, companyID string, request employeeapimodels.CreateEmployee) (id string, err error)
	Get(companyID, employeeID string) (view employeeapimodels.EmployeeView, err error)
	GetListByCompany(companyID string) (list []employeeapimodels.EmployeeView, err error)
	GetListByBranch(companyID, branchID string) (list []employeeapimodels.EmployeeView, err error)
	GetManagersList(companyID string) (list []employeeapimodels.EmployeeView, err error)
	UpdateProfile(companyID, employeeID string, request employeeapimodels.UpdateProfile) error
	SetStatus(authCtx models.AuthContext, companyID, employeeID string, isActive bool) error
	ChangeRole(companyID, employeeID, roleID string) error
	TransferBranch(companyID, employeeID, branchID string) error
	ChangePassword(employeeID string, request employeeapimodels.ChangePassword) error
	ResetPassword(companyID, employeeID, newPassword string) error
	SetPhotoKey(employeeID, photoKey string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       employeestore.NewInstance(db.DB),
		branchStore: branchstore.NewInstance(db.DB),
		roleStore:   rolestore.NewInstance(db.DB),
		hub:         connectionhub.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"branchStore", instance.branchStore,
		"roleStore", instance.roleStore,
		"hub", instance.hub,
	)
	Instance = instance
}

type impl struct {
	store       employeestore.Provider
	branchStore branchstore.Provider
	roleStore   rolestore.Provider
	hub         connectionhub.Provider
}

func (i impl) Create(authCtx models.AuthContext, companyID string, request employeeapimodels.CreateEmployee) (id string, err error) {
	logger := log.WithField("company_id", companyID).
		WithField("login", request.Login)
	if authCtx.IsEmployee() && !permissions.CanCreateEmployees(authCtx.RoleLevel) {
		return "", errors.New("недостаточно полномочий для создания сотрудников")
	}
	branch, err := i.branchStore.GetByID(request.BranchID)
	if err != nil {
		return "", err
	}
	if branch == nil || branch.CompanyID != companyID {
		return "", errors.New("филиал не найден")
	}
	if !branch.IsActive {
		return "", errors.New("филиал деактивирован")
	}
	role, err := i.roleStore.GetByID(request.RoleID)
	if err != nil {
		return "", err
	}
	if role == nil || role.CompanyID != companyID {
		return "", errors.New("роль не найдена")
	}
	exist, err := i.store.ExistByLogin(request.Login)
	if err != nil {
		return "", err
	}
	if exist {
		return "", errors.New("сотрудник с таким логином уже существует")
	}
	hash, err := authutils.HashPassword(request.Password)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return "", err
	}
	id, err = i.store.Create(dbmodels.Employee{
		BranchID: request.BranchID,
		RoleID:   request.RoleID,
		Login:    request.Login,
		Password: hash,
		FullName: request.FullName,
		IsActive: true,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания сотрудника")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создан сотрудник")
	return id, nil
}

func (i impl) Get(companyID, employeeID string) (view employeeapimodels.EmployeeView, err error) {
	rec, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) GetListByCompany(companyID string) (list []employeeapimodels.EmployeeView, err error) {
	recList, err := i.store.GetListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) GetListByBranch(companyID, branchID string) (list []employeeapimodels.EmployeeView, err error) {
	branch, err := i.branchStore.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, errors.New("филиал не найден")
	}
	recList, err := i.store.GetListByBranch(branchID)
	if err != nil {
		return nil, err
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

// GetManagersList активные сотрудники на ролях с правом руководства
func (i impl) GetManagersList(companyID string) (list []employeeapimodels.EmployeeView, err error) {
	roleIDs, err := i.roleStore.GetManagerRoleIDs(companyID)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.GetActiveListByRoles(roleIDs)
	if err != nil {
		return nil, err
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) UpdateProfile(companyID, employeeID string, request employeeapimodels.UpdateProfile) error {
	_, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return err
	}
	return i.store.Update(employeeID, map[string]interface{}{
		"full_name": request.FullName,
	})
}

// SetStatus для сотрудников-руководителей действует таблица полномочий,
// компания и админ ограничений не имеют
func (i impl) SetStatus(authCtx models.AuthContext, companyID, employeeID string, isActive bool) error {
	logger := log.WithField("company_id", companyID).
		WithField("rec_id", employeeID)
	rec, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return err
	}
	if authCtx.IsEmployee() {
		if !isActive && !permissions.CanDeactivateRole(authCtx.RoleLevel, rec.Role.Level) {
			return errors.New("недостаточно полномочий для деактивации сотрудника")
		}
		if isActive && !permissions.CanCreateEmployees(authCtx.RoleLevel) {
			return errors.New("недостаточно полномочий для активации сотрудника")
		}
	}
	err = i.store.Update(employeeID, map[string]interface{}{
		"is_active": isActive,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка смены статуса сотрудника")
		return err
	}
	// деактивированному сотруднику принудительно закрывается ws-сессия
	if !isActive && i.hub.IsConnected(employeeID) {
		i.hub.SendClose(employeeID)
	}
	logger.
		WithField("is_active", isActive).
		Info("изменен статус сотрудника")
	return nil
}

func (i impl) ChangeRole(companyID, employeeID, roleID string) error {
	_, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return err
	}
	role, err := i.roleStore.GetByID(roleID)
	if err != nil {
		return err
	}
	if role == nil || role.CompanyID != companyID {
		return errors.New("роль не найдена")
	}
	return i.store.Update(employeeID, map[string]interface{}{
		"role_id": roleID,
	})
}

func (i impl) TransferBranch(companyID, employeeID, branchID string) error {
	_, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return err
	}
	branch, err := i.branchStore.GetByID(branchID)
	if err != nil {
		return err
	}
	if branch == nil || branch.CompanyID != companyID {
		return errors.New("филиал не найден")
	}
	if !branch.IsActive {
		return errors.New("филиал деактивирован")
	}
	return i.store.Update(employeeID, map[string]interface{}{
		"branch_id": branchID,
	})
}

func (i impl) ChangePassword(employeeID string, request employeeapimodels.ChangePassword) error {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("сотрудник не найден")
	}
	if !authutils.CheckPassword(rec.Password, request.CurrentPassword) {
		return errors.New("неверный текущий пароль")
	}
	hash, err := authutils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	return i.store.Update(employeeID, map[string]interface{}{
		"password": hash,
	})
}

func (i impl) ResetPassword(companyID, employeeID, newPassword string) error {
	_, err := i.getOwn(companyID, employeeID)
	if err != nil {
		return err
	}
	hash, err := authutils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return i.store.Update(employeeID, map[string]interface{}{
		"password": hash,
	})
}

func (i impl) SetPhotoKey(employeeID, photoKey string) error {
	return i.store.Update(employeeID, map[string]interface{}{
		"photo_key": photoKey,
	})
}

func (i impl) getOwn(companyID, employeeID string) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Branch.CompanyID != companyID {
		return nil, errors.New("сотрудник не найден")
	}
	return rec, nil
}

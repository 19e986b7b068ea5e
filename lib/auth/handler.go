package authhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/db"
	adminstore "ops-portal-backend/lib/admin/store"
	companystore "ops-portal-backend/lib/company/store"
	employeestore "ops-portal-backend/lib/employee/store"
	authutils "ops-portal-backend/lib/utils/auth-utils"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	"ops-portal-backend/models"
	authapimodels "ops-portal-backend/models/api/auth"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Login(request authapimodels.LoginRequest) (response authapimodels.JWTResponse, err error)
	GetUserInfo(authCtx models.AuthContext) (info authapimodels.UserInfo, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		adminStore:    adminstore.NewInstance(db.DB),
		companyStore:  companystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"adminStore", instance.adminStore,
		"companyStore", instance.companyStore,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	adminStore    adminstore.Provider
	companyStore  companystore.Provider
	employeeStore employeestore.Provider
}

var errWrongCredentials = errors.New("неверный логин или пароль")

// Login единая точка входа, логин ищется среди администраторов,
// затем компаний, затем сотрудников
func (i impl) Login(request authapimodels.LoginRequest) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("login", request.Login)

	admin, err := i.adminStore.FindByLogin(request.Login)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска администратора по логину")
		return authapimodels.JWTResponse{}, err
	}
	if admin != nil {
		return i.loginAdmin(admin, request.Password)
	}

	company, err := i.companyStore.FindByLogin(request.Login)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска компании по логину")
		return authapimodels.JWTResponse{}, err
	}
	if company != nil {
		return i.loginCompany(company, request.Password)
	}

	employee, err := i.employeeStore.FindByLogin(request.Login)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска сотрудника по логину")
		return authapimodels.JWTResponse{}, err
	}
	if employee != nil {
		return i.loginEmployee(employee, request.Password)
	}

	logger.Debug("пользователь с таким логином не найден")
	return authapimodels.JWTResponse{}, errWrongCredentials
}

func (i impl) GetUserInfo(authCtx models.AuthContext) (info authapimodels.UserInfo, err error) {
	switch authCtx.UserType {
	case models.AdminUserType:
		rec, err := i.adminStore.GetByID(authCtx.UserID)
		if err != nil {
			return authapimodels.UserInfo{}, err
		}
		if rec == nil {
			return authapimodels.UserInfo{}, errors.New("администратор не найден")
		}
		return authapimodels.UserInfo{
			ID:       rec.ID,
			Login:    rec.Login,
			FullName: rec.FullName,
			UserType: models.AdminUserType,
		}, nil
	case models.CompanyUserType:
		rec, err := i.companyStore.GetByID(authCtx.UserID)
		if err != nil {
			return authapimodels.UserInfo{}, err
		}
		if rec == nil {
			return authapimodels.UserInfo{}, errors.New("компания не найдена")
		}
		return authapimodels.UserInfo{
			ID:        rec.ID,
			Login:     rec.Login,
			FullName:  rec.Name,
			UserType:  models.CompanyUserType,
			PhotoKey:  rec.PhotoKey,
			CompanyID: rec.ID,
			Company:   rec.Name,
		}, nil
	case models.EmployeeUserType:
		rec, err := i.employeeStore.GetByID(authCtx.UserID)
		if err != nil {
			return authapimodels.UserInfo{}, err
		}
		if rec == nil {
			return authapimodels.UserInfo{}, errors.New("сотрудник не найден")
		}
		info = authapimodels.UserInfo{
			ID:       rec.ID,
			Login:    rec.Login,
			FullName: rec.FullName,
			UserType: models.EmployeeUserType,
			PhotoKey: rec.PhotoKey,
			BranchID: rec.BranchID,
			Branch:   rec.Branch.Name,
			RoleID:   rec.RoleID,
			RoleName: rec.Role.Name,
		}
		info.CompanyID = rec.Branch.CompanyID
		info.RoleLevel = rec.Role.Level
		return info, nil
	}
	return authapimodels.UserInfo{}, errors.New("неизвестный тип пользователя")
}

func (i impl) loginAdmin(rec *dbmodels.AdminUser, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("login", rec.Login)
	if !authutils.CheckPassword(rec.Password, password) {
		logger.Debug("администратор не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errWrongCredentials
	}
	token, err := authutils.GetToken(rec.ID, rec.FullName, models.AdminUserType, "", "", 0)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.adminStore.Update(rec.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления даты последнего входа")
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) loginCompany(rec *dbmodels.Company, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("login", rec.Login)
	if !rec.IsActive {
		logger.Debug("компания деактивирована")
		return authapimodels.JWTResponse{}, errors.New("учетная запись компании деактивирована")
	}
	if !authutils.CheckPassword(rec.Password, password) {
		logger.Debug("компания не прошла проверку пароля")
		return authapimodels.JWTResponse{}, errWrongCredentials
	}
	token, err := authutils.GetToken(rec.ID, rec.Name, models.CompanyUserType, rec.ID, "", 0)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) loginEmployee(rec *dbmodels.Employee, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("login", rec.Login)
	if !authutils.CheckPassword(rec.Password, password) {
		logger.Debug("сотрудник не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errWrongCredentials
	}
	token, err := authutils.GetToken(rec.ID, rec.FullName, models.EmployeeUserType, rec.Branch.CompanyID, rec.BranchID, rec.Role.Level)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

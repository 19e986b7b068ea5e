package employeehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	branchstore "ops-portal-backend/lib/branch/store"
	employeestore "ops-portal-backend/lib/employee/store"
	rolestore "ops-portal-backend/lib/role/store"
	authutils "ops-portal-backend/lib/utils/auth-utils"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	"ops-portal-backend/models"
	employeeapimodels "ops-portal-backend/models/api/employee"
	dbmodels "ops-portal-backend/models/db"
)

type fakeEmployeeStore struct {
	employeestore.Provider
	employees map[string]dbmodels.Employee
	logins    map[string]bool
	created   *dbmodels.Employee
	updated   map[string]interface{}
}

func (f *fakeEmployeeStore) GetByID(employeeID string) (*dbmodels.Employee, error) {
	rec, ok := f.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeEmployeeStore) ExistByLogin(login string) (bool, error) {
	return f.logins[login], nil
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	f.created = &rec
	return "new-id", nil
}

func (f *fakeEmployeeStore) Update(employeeID string, updMap map[string]interface{}) error {
	f.updated = updMap
	return nil
}

type fakeBranchStore struct {
	branchstore.Provider
	branches map[string]dbmodels.Branch
}

func (f fakeBranchStore) GetByID(branchID string) (*dbmodels.Branch, error) {
	rec, ok := f.branches[branchID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeHub struct {
	connectionhub.Provider
	closed []string
}

func (f *fakeHub) IsConnected(userID string) bool {
	return true
}

func (f *fakeHub) SendClose(userID string) {
	f.closed = append(f.closed, userID)
}

type fakeRoleStore struct {
	rolestore.Provider
	roles map[string]dbmodels.Role
}

func (f fakeRoleStore) GetByID(roleID string) (*dbmodels.Role, error) {
	rec, ok := f.roles[roleID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func newTestHandler() (impl, *fakeEmployeeStore) {
	store := &fakeEmployeeStore{
		employees: map[string]dbmodels.Employee{
			"mgr": {
				BaseModel: dbmodels.BaseModel{ID: "mgr"},
				Branch:    dbmodels.Branch{CompanyID: "c1"},
				Role:      dbmodels.Role{Level: models.ManagerLevel},
				IsActive:  true,
			},
			"emp": {
				BaseModel: dbmodels.BaseModel{ID: "emp"},
				Branch:    dbmodels.Branch{CompanyID: "c1"},
				Role:      dbmodels.Role{Level: models.GeneralEmployeeLevel},
				IsActive:  true,
			},
		},
		logins: map[string]bool{"ivanov": true},
	}
	handler := impl{
		store: store,
		branchStore: fakeBranchStore{branches: map[string]dbmodels.Branch{
			"b1": {BaseModel: dbmodels.BaseModel{ID: "b1"}, CompanyID: "c1", IsActive: true},
			"b2": {BaseModel: dbmodels.BaseModel{ID: "b2"}, CompanyID: "c1", IsActive: false},
		}},
		roleStore: fakeRoleStore{roles: map[string]dbmodels.Role{
			"r1": {BaseModel: dbmodels.BaseModel{ID: "r1"}, CompanyID: "c1", Level: models.GeneralEmployeeLevel},
		}},
		hub: &fakeHub{},
	}
	return handler, store
}

func companyCtx() models.AuthContext {
	return models.AuthContext{UserID: "c1", UserType: models.CompanyUserType, CompanyID: "c1"}
}

func employeeCtx(userID string, roleLevel int) models.AuthContext {
	return models.AuthContext{
		UserID:    userID,
		UserType:  models.EmployeeUserType,
		CompanyID: "c1",
		RoleLevel: roleLevel,
	}
}

func TestCreateEmployee(t *testing.T) {
	request := employeeapimodels.CreateEmployee{
		BranchID: "b1",
		RoleID:   "r1",
		Login:    "petrov",
		Password: "secret123",
		FullName: "Петров Петр",
	}

	t.Run("компания создает без ограничений", func(t *testing.T) {
		handler, store := newTestHandler()
		id, err := handler.Create(companyCtx(), "c1", request)
		require.NoError(t, err)
		require.Equal(t, "new-id", id)
		require.True(t, store.created.IsActive)
		// пароль хранится только в виде bcrypt-хеша
		require.NotEqual(t, request.Password, store.created.Password)
		require.True(t, authutils.CheckPassword(store.created.Password, request.Password))
	})

	t.Run("рядовой сотрудник не создает", func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(employeeCtx("emp", models.GeneralEmployeeLevel), "c1", request)
		require.EqualError(t, err, "недостаточно полномочий для создания сотрудников")
	})

	t.Run("руководитель создает", func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create(employeeCtx("mgr", models.ManagerLevel), "c1", request)
		require.NoError(t, err)
	})

	t.Run("деактивированный филиал", func(t *testing.T) {
		handler, _ := newTestHandler()
		badBranch := request
		badBranch.BranchID = "b2"
		_, err := handler.Create(companyCtx(), "c1", badBranch)
		require.EqualError(t, err, "филиал деактивирован")
	})

	t.Run("дубль логина", func(t *testing.T) {
		handler, _ := newTestHandler()
		dup := request
		dup.Login = "ivanov"
		_, err := handler.Create(companyCtx(), "c1", dup)
		require.EqualError(t, err, "сотрудник с таким логином уже существует")
	})
}

func TestSetStatusPermissions(t *testing.T) {
	t.Run("рядовой не деактивирует руководителя", func(t *testing.T) {
		handler, _ := newTestHandler()
		err := handler.SetStatus(employeeCtx("emp", models.GeneralEmployeeLevel), "c1", "mgr", false)
		require.EqualError(t, err, "недостаточно полномочий для деактивации сотрудника")
	})

	t.Run("руководитель деактивирует рядового", func(t *testing.T) {
		handler, store := newTestHandler()
		err := handler.SetStatus(employeeCtx("mgr", models.ManagerLevel), "c1", "emp", false)
		require.NoError(t, err)
		require.Equal(t, false, store.updated["is_active"])
		// ws-сессия деактивированного сотрудника закрывается
		require.Equal(t, []string{"emp"}, handler.hub.(*fakeHub).closed)
	})

	t.Run("компания без ограничений", func(t *testing.T) {
		handler, store := newTestHandler()
		err := handler.SetStatus(companyCtx(), "c1", "mgr", false)
		require.NoError(t, err)
		require.Equal(t, false, store.updated["is_active"])
	})

	t.Run("чужая компания", func(t *testing.T) {
		handler, _ := newTestHandler()
		err := handler.SetStatus(companyCtx(), "other", "emp", false)
		require.EqualError(t, err, "сотрудник не найден")
	})
}

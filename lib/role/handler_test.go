package rolehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	employeestore "ops-portal-backend/lib/employee/store"
	rolestore "ops-portal-backend/lib/role/store"
	dbmodels "ops-portal-backend/models/db"
)

type fakeRoleStore struct {
	rolestore.Provider
	roles map[string]dbmodels.Role
	ops   *[]string
}

func (f fakeRoleStore) GetByID(roleID string) (*dbmodels.Role, error) {
	rec, ok := f.roles[roleID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeRoleStore) Delete(roleID string) error {
	*f.ops = append(*f.ops, "delete:"+roleID)
	return nil
}

type fakeEmployeeStore struct {
	employeestore.Provider
	ops *[]string
}

func (f fakeEmployeeStore) CountByRole(roleID string) (int64, error) {
	return 2, nil
}

func (f fakeEmployeeStore) ReassignRole(roleID, replacementRoleID string) error {
	*f.ops = append(*f.ops, "reassign:"+roleID+">"+replacementRoleID)
	return nil
}

func newTestHandler() (impl, *[]string) {
	ops := &[]string{}
	roleStore := fakeRoleStore{
		roles: map[string]dbmodels.Role{
			"r1":    {BaseModel: dbmodels.BaseModel{ID: "r1"}, CompanyID: "c1", Name: "Кассир", Level: 3},
			"r2":    {BaseModel: dbmodels.BaseModel{ID: "r2"}, CompanyID: "c1", Name: "Стажер", Level: 3},
			"alien": {BaseModel: dbmodels.BaseModel{ID: "alien"}, CompanyID: "other", Level: 3},
		},
		ops: ops,
	}
	employeeStore := fakeEmployeeStore{ops: ops}
	handler := impl{
		store:         roleStore,
		employeeStore: employeeStore,
		inTx: func(fn func(roles rolestore.Provider, employees employeestore.Provider) error) error {
			return fn(roleStore, employeeStore)
		},
	}
	return handler, ops
}

func TestDeleteRoleReassignment(t *testing.T) {
	t.Run("сотрудники переводятся до удаления роли", func(t *testing.T) {
		handler, ops := newTestHandler()
		err := handler.Delete("c1", "r1", "r2")
		require.NoError(t, err)
		require.Equal(t, []string{"reassign:r1>r2", "delete:r1"}, *ops)
	})

	t.Run("замещающая роль совпадает с удаляемой", func(t *testing.T) {
		handler, ops := newTestHandler()
		err := handler.Delete("c1", "r1", "r1")
		require.EqualError(t, err, "замещающая роль совпадает с удаляемой")
		require.Empty(t, *ops)
	})

	t.Run("замещающая роль другой компании", func(t *testing.T) {
		handler, ops := newTestHandler()
		err := handler.Delete("c1", "r1", "alien")
		require.EqualError(t, err, "замещающая роль не найдена")
		require.Empty(t, *ops)
	})

	t.Run("удаляемая роль не найдена", func(t *testing.T) {
		handler, ops := newTestHandler()
		err := handler.Delete("c1", "missing", "r2")
		require.EqualError(t, err, "роль не найдена")
		require.Empty(t, *ops)
	})
}

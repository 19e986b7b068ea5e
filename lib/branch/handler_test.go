package branchhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	branchstore "ops-portal-backend/lib/branch/store"
	branchapimodels "ops-portal-backend/models/api/branch"
	dbmodels "ops-portal-backend/models/db"
)

type fakeBranchStore struct {
	branchstore.Provider
	branches map[string]dbmodels.Branch
	names    map[string]bool
	created  *dbmodels.Branch
}

func (f *fakeBranchStore) GetByID(branchID string) (*dbmodels.Branch, error) {
	rec, ok := f.branches[branchID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeBranchStore) ExistByName(companyID, name string) (bool, error) {
	return f.names[name], nil
}

func (f *fakeBranchStore) Create(rec dbmodels.Branch) (string, error) {
	f.created = &rec
	return "new-id", nil
}

func newTestStore() *fakeBranchStore {
	mainID := "main"
	return &fakeBranchStore{
		branches: map[string]dbmodels.Branch{
			"main": {BaseModel: dbmodels.BaseModel{ID: "main"}, CompanyID: "c1", Name: "Центральный", IsMain: true, IsActive: true},
			"sub":  {BaseModel: dbmodels.BaseModel{ID: "sub"}, CompanyID: "c1", Name: "Северный", ParentBranchID: &mainID, IsActive: true},
			"alien": {BaseModel: dbmodels.BaseModel{ID: "alien"}, CompanyID: "other", Name: "Чужой", IsMain: true, IsActive: true},
		},
		names: map[string]bool{"Центральный": true, "Северный": true},
	}
}

func TestCreateBranchHierarchy(t *testing.T) {
	t.Run("главный филиал без родителя", func(t *testing.T) {
		store := newTestStore()
		handler := impl{store: store}
		id, err := handler.Create("c1", branchapimodels.CreateBranch{Name: "Южный"})
		require.NoError(t, err)
		require.Equal(t, "new-id", id)
		require.True(t, store.created.IsMain)
		require.Nil(t, store.created.ParentBranchID)
	})

	t.Run("подфилиал под главным", func(t *testing.T) {
		store := newTestStore()
		handler := impl{store: store}
		_, err := handler.Create("c1", branchapimodels.CreateBranch{Name: "Южный", ParentBranchID: "main"})
		require.NoError(t, err)
		require.False(t, store.created.IsMain)
		require.Equal(t, "main", *store.created.ParentBranchID)
	})

	t.Run("третий уровень запрещен", func(t *testing.T) {
		handler := impl{store: newTestStore()}
		_, err := handler.Create("c1", branchapimodels.CreateBranch{Name: "Южный", ParentBranchID: "sub"})
		require.EqualError(t, err, "подфилиал можно создать только под главным филиалом")
	})

	t.Run("родитель другой компании", func(t *testing.T) {
		handler := impl{store: newTestStore()}
		_, err := handler.Create("c1", branchapimodels.CreateBranch{Name: "Южный", ParentBranchID: "alien"})
		require.EqualError(t, err, "родительский филиал не найден")
	})

	t.Run("дубль названия", func(t *testing.T) {
		handler := impl{store: newTestStore()}
		_, err := handler.Create("c1", branchapimodels.CreateBranch{Name: "Центральный"})
		require.EqualError(t, err, "филиал с таким названием уже существует")
	})
}

func TestGetBranchScoped(t *testing.T) {
	handler := impl{store: newTestStore()}

	view, err := handler.Get("c1", "main")
	require.NoError(t, err)
	require.Equal(t, "Центральный", view.Name)

	_, err = handler.Get("c1", "alien")
	require.EqualError(t, err, "филиал не найден")
}

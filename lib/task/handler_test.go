package taskhandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	branchstore "ops-portal-backend/lib/branch/store"
	employeestore "ops-portal-backend/lib/employee/store"
	taskstore "ops-portal-backend/lib/task/store"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	"ops-portal-backend/models"
	employeeapimodels "ops-portal-backend/models/api/employee"
	taskapimodels "ops-portal-backend/models/api/task"
	dbmodels "ops-portal-backend/models/db"
	wsmodels "ops-portal-backend/models/ws"
)

type fakeTaskStore struct {
	taskstore.Provider
	tasks       map[string]dbmodels.Task
	assignments []dbmodels.TaskAssignment
	direct      []dbmodels.Task
	total       int64
	completed   int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]dbmodels.Task{}}
}

func (f *fakeTaskStore) Create(rec dbmodels.Task) (string, error) {
	rec.ID = fmt.Sprintf("t%d", len(f.tasks)+1)
	f.tasks[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeTaskStore) CreateAssignments(list []dbmodels.TaskAssignment) error {
	f.assignments = append(f.assignments, list...)
	return nil
}

func (f *fakeTaskStore) GetByID(taskID string) (*dbmodels.Task, error) {
	rec, ok := f.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTaskStore) GetAssignment(taskID, employeeID string) (*dbmodels.TaskAssignment, error) {
	for i := range f.assignments {
		if f.assignments[i].TaskID == taskID && f.assignments[i].EmployeeID == employeeID {
			rec := f.assignments[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskStore) CompleteAssignment(taskID, employeeID string, now time.Time) (bool, error) {
	for i := range f.assignments {
		asg := &f.assignments[i]
		if asg.TaskID == taskID && asg.EmployeeID == employeeID && !asg.IsCompleted {
			at := now
			asg.IsCompleted = true
			asg.CompletedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskStore) CountIncompleteAssignments(taskID string) (int64, error) {
	var count int64
	for _, asg := range f.assignments {
		if asg.TaskID == taskID && !asg.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskStore) CompleteTask(taskID, completedByID string, now time.Time) (bool, error) {
	rec, ok := f.tasks[taskID]
	if !ok || rec.IsCompleted {
		return false, nil
	}
	at := now
	rec.IsCompleted = true
	rec.CompletedByID = &completedByID
	rec.CompletedAt = &at
	f.tasks[taskID] = rec
	return true, nil
}

func (f *fakeTaskStore) ResetTask(taskID string) error {
	rec, ok := f.tasks[taskID]
	if !ok {
		return nil
	}
	rec.IsCompleted = false
	rec.CompletedByID = nil
	rec.CompletedAt = nil
	f.tasks[taskID] = rec
	return nil
}

func (f *fakeTaskStore) ResetAssignments(taskID string) error {
	for i := range f.assignments {
		if f.assignments[i].TaskID == taskID {
			f.assignments[i].IsCompleted = false
			f.assignments[i].CompletedAt = nil
		}
	}
	return nil
}

func (f *fakeTaskStore) GetDirectForEmployee(employeeID string, filter taskapimodels.StatusFilter) ([]dbmodels.Task, error) {
	return f.direct, nil
}

func (f *fakeTaskStore) GetAssignmentsForEmployee(employeeID string, filter taskapimodels.StatusFilter) ([]dbmodels.TaskAssignment, error) {
	var list []dbmodels.TaskAssignment
	for _, asg := range f.assignments {
		if asg.EmployeeID == employeeID {
			list = append(list, asg)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) GetAssignmentCounts(taskID string) (int64, int64, error) {
	return f.total, f.completed, nil
}

func (f *fakeTaskStore) GetAssignmentStatuses(taskID string) ([]taskapimodels.AssignmentStatus, error) {
	return nil, nil
}

func (f *fakeTaskStore) assignmentsOf(taskID string) []dbmodels.TaskAssignment {
	var list []dbmodels.TaskAssignment
	for _, asg := range f.assignments {
		if asg.TaskID == taskID {
			list = append(list, asg)
		}
	}
	return list
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

type fakeEmployeeStore struct {
	employeestore.Provider
	employees map[string]dbmodels.Employee
	active    []dbmodels.Employee
}

func (f fakeEmployeeStore) GetByID(employeeID string) (*dbmodels.Employee, error) {
	rec, ok := f.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeEmployeeStore) GetActiveList(filter employeeapimodels.ActiveFilter) ([]dbmodels.Employee, error) {
	return f.active, nil
}

type fakeHub struct {
	connectionhub.Provider
	sent []wsmodels.ServerMessage
}

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.sent = append(f.sent, msg)
}

// newEngineHandler хэндлер с изменяемым стором, транзакция выполняется
// поверх него напрямую
func newEngineHandler(store *fakeTaskStore) impl {
	return impl{
		store:         store,
		branchStore:   fakeBranchStore{},
		employeeStore: fakeEmployeeStore{},
		hub:           &fakeHub{},
		inTx: func(fn func(txStore taskstore.Provider) error) error {
			return fn(store)
		},
	}
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

func branchTask(store *fakeTaskStore, taskID string, assignees ...string) {
	branchID := "b1"
	store.tasks[taskID] = dbmodels.Task{
		BaseModel:   dbmodels.BaseModel{ID: taskID},
		CompanyID:   "c1",
		BranchID:    &branchID,
		Description: "инвентаризация",
	}
	for _, employeeID := range assignees {
		store.assignments = append(store.assignments, dbmodels.TaskAssignment{
			TaskID:     taskID,
			EmployeeID: employeeID,
		})
	}
}

func TestCreateBranchTaskChecks(t *testing.T) {
	handler := impl{
		branchStore: fakeBranchStore{branches: map[string]dbmodels.Branch{
			"b1": {CompanyID: "c1", IsActive: true},
			"b2": {CompanyID: "c1", IsActive: false},
			"b3": {CompanyID: "other", IsActive: true},
		}},
		employeeStore: fakeEmployeeStore{},
	}

	t.Run("рядовой сотрудник не назначает задачи филиалу", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.GeneralEmployeeLevel), "c1",
			taskapimodels.CreateTask{Description: "инвентаризация", BranchID: "b1"})
		require.EqualError(t, err, "недостаточно полномочий для назначения задач филиалу")
	})

	t.Run("деактивированный филиал", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.ManagerLevel), "c1",
			taskapimodels.CreateTask{Description: "инвентаризация", BranchID: "b2"})
		require.EqualError(t, err, "филиал деактивирован")
	})

	t.Run("чужой филиал", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.ManagerLevel), "c1",
			taskapimodels.CreateTask{Description: "инвентаризация", BranchID: "b3"})
		require.EqualError(t, err, "филиал не найден")
	})
}

func TestCreateDirectTaskChecks(t *testing.T) {
	handler := impl{
		branchStore: fakeBranchStore{},
		employeeStore: fakeEmployeeStore{employees: map[string]dbmodels.Employee{
			"mgr": {
				Branch:   dbmodels.Branch{CompanyID: "c1"},
				Role:     dbmodels.Role{Level: models.ManagerLevel},
				IsActive: true,
			},
			"off": {
				Branch:   dbmodels.Branch{CompanyID: "c1"},
				Role:     dbmodels.Role{Level: models.GeneralEmployeeLevel},
				IsActive: false,
			},
			"alien": {
				Branch:   dbmodels.Branch{CompanyID: "other"},
				Role:     dbmodels.Role{Level: models.GeneralEmployeeLevel},
				IsActive: true,
			},
		}},
	}

	t.Run("назначение вверх по уровню запрещено", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.GeneralEmployeeLevel), "c1",
			taskapimodels.CreateTask{Description: "сверка", EmployeeID: "mgr"})
		require.EqualError(t, err, "недостаточно полномочий для назначения задачи сотруднику")
	})

	t.Run("деактивированный сотрудник", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.ManagerLevel), "c1",
			taskapimodels.CreateTask{Description: "сверка", EmployeeID: "off"})
		require.EqualError(t, err, "сотрудник деактивирован")
	})

	t.Run("сотрудник другой компании", func(t *testing.T) {
		_, err := handler.Create(employeeCtx("e1", models.ManagerLevel), "c1",
			taskapimodels.CreateTask{Description: "сверка", EmployeeID: "alien"})
		require.EqualError(t, err, "сотрудник не найден")
	})
}

func TestCreateBranchTaskFanOut(t *testing.T) {
	store := newFakeTaskStore()
	hub := &fakeHub{}
	handler := newEngineHandler(store)
	handler.branchStore = fakeBranchStore{branches: map[string]dbmodels.Branch{
		"b1": {BaseModel: dbmodels.BaseModel{ID: "b1"}, CompanyID: "c1", IsActive: true},
	}}
	handler.employeeStore = fakeEmployeeStore{active: []dbmodels.Employee{
		{BaseModel: dbmodels.BaseModel{ID: "e1"}},
		{BaseModel: dbmodels.BaseModel{ID: "e2"}},
		{BaseModel: dbmodels.BaseModel{ID: "e3"}},
	}}
	handler.hub = hub

	id, err := handler.Create(companyCtx(), "c1",
		taskapimodels.CreateTask{Description: "инвентаризация", BranchID: "b1"})
	require.NoError(t, err)

	// по одному невыполненному назначению на каждого активного сотрудника
	asgList := store.assignmentsOf(id)
	require.Len(t, asgList, 3)
	seen := map[string]bool{}
	for _, asg := range asgList {
		require.False(t, asg.IsCompleted)
		seen[asg.EmployeeID] = true
	}
	require.Equal(t, map[string]bool{"e1": true, "e2": true, "e3": true}, seen)

	// каждый назначенный получает ws-уведомление
	require.Len(t, hub.sent, 3)
	for _, msg := range hub.sent {
		require.Equal(t, string(wsmodels.NewTaskEvent), msg.Code)
		require.True(t, seen[msg.ToUserID])
	}
}

func TestMarkCompletedDirectIdempotent(t *testing.T) {
	store := newFakeTaskStore()
	employeeID := "e1"
	store.tasks["t1"] = dbmodels.Task{
		BaseModel:  dbmodels.BaseModel{ID: "t1"},
		CompanyID:  "c1",
		EmployeeID: &employeeID,
	}
	handler := newEngineHandler(store)

	result, err := handler.MarkCompleted(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	require.True(t, result.TaskCompleted)
	first := store.tasks["t1"]
	require.True(t, first.IsCompleted)
	require.Equal(t, "e1", *first.CompletedByID)

	// повторная отметка не меняет данных
	result, err = handler.MarkCompleted(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	require.True(t, result.TaskCompleted)
	require.Equal(t, first, store.tasks["t1"])
}

func TestMarkCompletedManagerOverride(t *testing.T) {
	store := newFakeTaskStore()
	branchTask(store, "t1", "mgr", "e2", "e3")
	handler := newEngineHandler(store)

	result, err := handler.MarkCompleted(employeeCtx("mgr", models.ManagerLevel), "t1")
	require.NoError(t, err)
	require.True(t, result.TaskCompleted)
	require.True(t, store.tasks["t1"].IsCompleted)
	require.Equal(t, "mgr", *store.tasks["t1"].CompletedByID)

	// закрывается только собственное назначение, остальные не трогаются
	for _, asg := range store.assignmentsOf("t1") {
		require.Equal(t, asg.EmployeeID == "mgr", asg.IsCompleted)
	}
}

func TestMarkCompletedAllComplete(t *testing.T) {
	store := newFakeTaskStore()
	branchTask(store, "t1", "e1", "e2")
	handler := newEngineHandler(store)

	result, err := handler.MarkCompleted(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	require.False(t, result.TaskCompleted)
	require.False(t, store.tasks["t1"].IsCompleted)

	// задача закрывается последним исполнителем
	result, err = handler.MarkCompleted(employeeCtx("e2", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	require.True(t, result.TaskCompleted)
	require.True(t, store.tasks["t1"].IsCompleted)
	require.Equal(t, "e2", *store.tasks["t1"].CompletedByID)
}

func TestMarkCompletedWithoutAssignment(t *testing.T) {
	t.Run("переведенный руководитель закрывает задачу", func(t *testing.T) {
		store := newFakeTaskStore()
		branchTask(store, "t1", "e1", "e2")
		handler := newEngineHandler(store)

		result, err := handler.MarkCompleted(employeeCtx("mgr-new", models.AsstManagerLevel), "t1")
		require.NoError(t, err)
		require.True(t, result.TaskCompleted)
		require.Equal(t, "mgr-new", *store.tasks["t1"].CompletedByID)
		// новых назначений отметка не создает
		require.Len(t, store.assignmentsOf("t1"), 2)
	})

	t.Run("рядовой без назначения идет в общий зачет", func(t *testing.T) {
		store := newFakeTaskStore()
		branchTask(store, "t1", "e1")
		handler := newEngineHandler(store)

		result, err := handler.MarkCompleted(employeeCtx("e-new", models.GeneralEmployeeLevel), "t1")
		require.NoError(t, err)
		require.False(t, result.TaskCompleted)

		result, err = handler.MarkCompleted(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
		require.NoError(t, err)
		require.True(t, result.TaskCompleted)
	})
}

func TestReopenResets(t *testing.T) {
	store := newFakeTaskStore()
	branchTask(store, "t1", "e1", "e2")
	handler := newEngineHandler(store)

	_, err := handler.MarkCompleted(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	_, err = handler.MarkCompleted(employeeCtx("e2", models.GeneralEmployeeLevel), "t1")
	require.NoError(t, err)
	require.True(t, store.tasks["t1"].IsCompleted)

	t.Run("рядовой сотрудник не переоткрывает", func(t *testing.T) {
		err := handler.Reopen(employeeCtx("e1", models.GeneralEmployeeLevel), "t1")
		require.EqualError(t, err, "недостаточно полномочий для переоткрытия задачи")
	})

	t.Run("сброс задачи и всех назначений", func(t *testing.T) {
		err := handler.Reopen(companyCtx(), "t1")
		require.NoError(t, err)
		rec := store.tasks["t1"]
		require.False(t, rec.IsCompleted)
		require.Nil(t, rec.CompletedByID)
		require.Nil(t, rec.CompletedAt)
		for _, asg := range store.assignmentsOf("t1") {
			require.False(t, asg.IsCompleted)
			require.Nil(t, asg.CompletedAt)
		}
	})
}

func TestGetListForEmployeeMerge(t *testing.T) {
	now := time.Now()
	directID := "t-direct"
	employeeID := "e1"
	branchID := "b1"
	store := newFakeTaskStore()
	store.direct = []dbmodels.Task{
		{
			BaseModel:   dbmodels.BaseModel{ID: directID, CreatedAt: now.Add(-time.Hour)},
			CompanyID:   "c1",
			EmployeeID:  &employeeID,
			Description: "прямая задача",
		},
	}
	store.assignments = []dbmodels.TaskAssignment{
		{
			TaskID:      "t-branch",
			EmployeeID:  employeeID,
			IsCompleted: true,
			Task: dbmodels.Task{
				BaseModel:   dbmodels.BaseModel{ID: "t-branch", CreatedAt: now},
				CompanyID:   "c1",
				BranchID:    &branchID,
				Description: "задача филиала",
			},
		},
	}
	handler := impl{store: store}

	list, err := handler.GetListForEmployee(employeeCtx("e1", models.GeneralEmployeeLevel), taskapimodels.AllFilter)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// невыполненные впереди независимо от даты создания
	require.Equal(t, directID, list[0].ID)
	require.Equal(t, taskapimodels.EmployeeAssignee, list[0].TaskType)
	require.False(t, list[0].AssignmentCompleted)
	require.Equal(t, "t-branch", list[1].ID)
	require.Equal(t, taskapimodels.BranchAssignee, list[1].TaskType)
	require.True(t, list[1].AssignmentCompleted)
}

func TestGetProgress(t *testing.T) {
	branchID := "b1"
	employeeID := "e1"
	store := newFakeTaskStore()
	store.tasks = map[string]dbmodels.Task{
		"t-branch": {BaseModel: dbmodels.BaseModel{ID: "t-branch"}, CompanyID: "c1", BranchID: &branchID},
		"t-direct": {BaseModel: dbmodels.BaseModel{ID: "t-direct"}, CompanyID: "c1", EmployeeID: &employeeID},
	}
	store.total = 4
	store.completed = 1
	handler := impl{store: store}

	t.Run("процент выполнения", func(t *testing.T) {
		progress, err := handler.GetProgress("c1", "t-branch")
		require.NoError(t, err)
		require.Equal(t, int64(4), progress.Total)
		require.Equal(t, int64(1), progress.Completed)
		require.Equal(t, 25, progress.CompletionRate)
	})

	t.Run("прямая задача без прогресса", func(t *testing.T) {
		_, err := handler.GetProgress("c1", "t-direct")
		require.EqualError(t, err, "прогресс доступен только для задач филиала")
	})

	t.Run("чужая компания", func(t *testing.T) {
		_, err := handler.GetProgress("other", "t-branch")
		require.EqualError(t, err, "задача не найдена")
	})
}

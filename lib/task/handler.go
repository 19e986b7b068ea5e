package taskhandler

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ops-portal-backend/db"
	branchstore "ops-portal-backend/lib/branch/store"
	employeestore "ops-portal-backend/lib/employee/store"
	"ops-portal-backend/lib/permissions"
	taskstore "ops-portal-backend/lib/task/store"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	connectionhub "ops-portal-backend/lib/ws/hub/connection-hub"
	"ops-portal-backend/models"
	employeeapimodels "ops-portal-backend/models/api/employee"
	taskapimodels "ops-portal-backend/models/api/task"
	dbmodels "ops-portal-backend/models/db"
	wsmodels "ops-portal-backend/models/ws"
)

type Provider interface {
	Create(authCtx models.AuthContext, companyID string, request taskapimodels.CreateTask) (id string, err error)
	Get(companyID, taskID string) (view taskapimodels.TaskView, err error)
	GetListForCompany(companyID string, filter taskapimodels.StatusFilter) (list []taskapimodels.TaskView, err error)
	GetListForEmployee(authCtx models.AuthContext, filter taskapimodels.StatusFilter) (list []taskapimodels.EmployeeTaskView, err error)
	MarkCompleted(authCtx models.AuthContext, taskID string) (result taskapimodels.CompleteResult, err error)
	Reopen(authCtx models.AuthContext, taskID string) error
	GetProgress(companyID, taskID string) (progress taskapimodels.Progress, err error)
	Delete(companyID, taskID string) error
}

var Instance Provider

// txRunner выполняет fn в транзакции, store внутри fn привязан к ней
type txRunner func(fn func(txStore taskstore.Provider) error) error

func gormTxRunner(fn func(txStore taskstore.Provider) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(taskstore.NewInstance(tx))
	})
}

func NewHandler() {
	instance := impl{
		store:         taskstore.NewInstance(db.DB),
		branchStore:   branchstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		hub:           connectionhub.Instance,
		inTx:          gormTxRunner,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"branchStore", instance.branchStore,
		"employeeStore", instance.employeeStore,
		"hub", instance.hub,
	)
	Instance = instance
}

type impl struct {
	store         taskstore.Provider
	branchStore   branchstore.Provider
	employeeStore employeestore.Provider
	hub           connectionhub.Provider
	inTx          txRunner
}

// Create задача на филиал разворачивается в назначения всем активным
// сотрудникам филиала, создание задачи и назначений идет одной транзакцией
func (i impl) Create(authCtx models.AuthContext, companyID string, request taskapimodels.CreateTask) (id string, err error) {
	logger := log.WithField("company_id", companyID)
	rec := dbmodels.Task{
		CompanyID:   companyID,
		Description: request.Description,
		DueDate:     request.DueDate,
	}
	var assigneeIDs []string
	switch {
	case request.BranchID != "":
		if authCtx.IsEmployee() && authCtx.RoleLevel > models.AsstManagerLevel {
			return "", errors.New("недостаточно полномочий для назначения задач филиалу")
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
		staff, err := i.employeeStore.GetActiveList(employeeapimodels.ActiveFilter{BranchID: request.BranchID})
		if err != nil {
			return "", err
		}
		rec.BranchID = &request.BranchID
		for _, employee := range staff {
			assigneeIDs = append(assigneeIDs, employee.ID)
		}
	case request.EmployeeID != "":
		target, err := i.employeeStore.GetByID(request.EmployeeID)
		if err != nil {
			return "", err
		}
		if target == nil || target.Branch.CompanyID != companyID {
			return "", errors.New("сотрудник не найден")
		}
		if !target.IsActive {
			return "", errors.New("сотрудник деактивирован")
		}
		if authCtx.IsEmployee() && !permissions.CanAssignTasksTo(authCtx.RoleLevel, target.Role.Level) {
			return "", errors.New("недостаточно полномочий для назначения задачи сотруднику")
		}
		rec.EmployeeID = &request.EmployeeID
		assigneeIDs = append(assigneeIDs, request.EmployeeID)
	}
	err = i.inTx(func(txStore taskstore.Provider) error {
		id, err = txStore.Create(rec)
		if err != nil {
			return err
		}
		if rec.BranchID == nil {
			return nil
		}
		assignments := make([]dbmodels.TaskAssignment, 0, len(assigneeIDs))
		for _, employeeID := range assigneeIDs {
			assignments = append(assignments, dbmodels.TaskAssignment{
				TaskID:     id,
				EmployeeID: employeeID,
			})
		}
		return txStore.CreateAssignments(assignments)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания задачи")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("assignee_count", len(assigneeIDs)).
		Info("создана задача")
	i.notifyNewTask(assigneeIDs, request.Description)
	return id, nil
}

func (i impl) Get(companyID, taskID string) (view taskapimodels.TaskView, err error) {
	rec, err := i.getOwn(companyID, taskID)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) GetListForCompany(companyID string, filter taskapimodels.StatusFilter) (list []taskapimodels.TaskView, err error) {
	recList, err := i.store.GetListForCompany(companyID, filter)
	if err != nil {
		return nil, err
	}
	list = make([]taskapimodels.TaskView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

// GetListForEmployee прямые задачи и задачи филиала одним списком,
// для задач филиала отражается статус личного назначения
func (i impl) GetListForEmployee(authCtx models.AuthContext, filter taskapimodels.StatusFilter) (list []taskapimodels.EmployeeTaskView, err error) {
	direct, err := i.store.GetDirectForEmployee(authCtx.UserID, filter)
	if err != nil {
		return nil, err
	}
	assignments, err := i.store.GetAssignmentsForEmployee(authCtx.UserID, filter)
	if err != nil {
		return nil, err
	}
	list = make([]taskapimodels.EmployeeTaskView, 0, len(direct)+len(assignments))
	for _, rec := range direct {
		list = append(list, taskapimodels.EmployeeTaskView{
			TaskView:            rec.ToModel(),
			TaskType:            taskapimodels.EmployeeAssignee,
			AssignmentCompleted: rec.IsCompleted,
		})
	}
	for _, asg := range assignments {
		list = append(list, taskapimodels.EmployeeTaskView{
			TaskView:            asg.Task.ToModel(),
			TaskType:            taskapimodels.BranchAssignee,
			AssignmentCompleted: asg.IsCompleted,
		})
	}
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].AssignmentCompleted != list[b].AssignmentCompleted {
			return !list[a].AssignmentCompleted
		}
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	return list, nil
}

// MarkCompleted отметка выполнения сотрудником. Повторная отметка по
// выполненной задаче не меняет данных. Для задачи филиала руководитель
// (уровень <= 2) закрывает задачу целиком, рядовой сотрудник закрывает
// свое назначение, задача выполняется после последнего назначения.
func (i impl) MarkCompleted(authCtx models.AuthContext, taskID string) (result taskapimodels.CompleteResult, err error) {
	logger := log.WithField("employee_id", authCtx.UserID).
		WithField("rec_id", taskID)
	now := time.Now()
	err = i.inTx(func(txStore taskstore.Provider) error {
		task, err := txStore.GetByID(taskID)
		if err != nil {
			return err
		}
		if task == nil || task.CompanyID != authCtx.CompanyID {
			return errors.New("задача не найдена")
		}
		if task.IsCompleted {
			result.TaskCompleted = true
			return nil
		}
		if !task.IsBranchTask() {
			if task.EmployeeID == nil || *task.EmployeeID != authCtx.UserID {
				return errors.New("задача назначена другому сотруднику")
			}
			_, err = txStore.CompleteTask(taskID, authCtx.UserID, now)
			if err != nil {
				return err
			}
			result.TaskCompleted = true
			return nil
		}
		asg, err := txStore.GetAssignment(taskID, authCtx.UserID)
		if err != nil {
			return err
		}
		// сотрудник, переведенный в филиал после создания задачи, назначения
		// не имеет, его отметка идет сразу в общий зачет
		if asg != nil {
			_, err = txStore.CompleteAssignment(taskID, authCtx.UserID, now)
			if err != nil {
				return err
			}
		}
		if authCtx.RoleLevel <= models.AsstManagerLevel {
			_, err = txStore.CompleteTask(taskID, authCtx.UserID, now)
			if err != nil {
				return err
			}
			result.TaskCompleted = true
			return nil
		}
		remaining, err := txStore.CountIncompleteAssignments(taskID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			_, err = txStore.CompleteTask(taskID, authCtx.UserID, now)
			if err != nil {
				return err
			}
			result.TaskCompleted = true
		}
		return nil
	})
	if err != nil {
		return taskapimodels.CompleteResult{}, err
	}
	if result.TaskCompleted {
		logger.Info("задача выполнена")
	}
	return result, nil
}

// Reopen сброс выполнения задачи и всех ее назначений, доступен
// компании и сотрудникам-руководителям
func (i impl) Reopen(authCtx models.AuthContext, taskID string) error {
	logger := log.WithField("company_id", authCtx.CompanyID).
		WithField("rec_id", taskID)
	if authCtx.IsEmployee() && authCtx.RoleLevel > models.AsstManagerLevel {
		return errors.New("недостаточно полномочий для переоткрытия задачи")
	}
	_, err := i.getOwn(authCtx.CompanyID, taskID)
	if err != nil {
		return err
	}
	err = i.inTx(func(txStore taskstore.Provider) error {
		err := txStore.ResetTask(taskID)
		if err != nil {
			return err
		}
		return txStore.ResetAssignments(taskID)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка переоткрытия задачи")
		return err
	}
	logger.Info("задача переоткрыта")
	return nil
}

func (i impl) GetProgress(companyID, taskID string) (progress taskapimodels.Progress, err error) {
	rec, err := i.getOwn(companyID, taskID)
	if err != nil {
		return taskapimodels.Progress{}, err
	}
	if !rec.IsBranchTask() {
		return taskapimodels.Progress{}, errors.New("прогресс доступен только для задач филиала")
	}
	total, completed, err := i.store.GetAssignmentCounts(taskID)
	if err != nil {
		return taskapimodels.Progress{}, err
	}
	statuses, err := i.store.GetAssignmentStatuses(taskID)
	if err != nil {
		return taskapimodels.Progress{}, err
	}
	progress = taskapimodels.Progress{
		Total:     total,
		Completed: completed,
		Statuses:  statuses,
	}
	if total > 0 {
		progress.CompletionRate = int(completed * 100 / total)
	}
	return progress, nil
}

func (i impl) Delete(companyID, taskID string) error {
	logger := log.WithField("company_id", companyID).
		WithField("rec_id", taskID)
	_, err := i.getOwn(companyID, taskID)
	if err != nil {
		return err
	}
	err = i.inTx(func(txStore taskstore.Provider) error {
		err := txStore.DeleteAssignments(taskID)
		if err != nil {
			return err
		}
		return txStore.Delete(taskID)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления задачи")
		return err
	}
	logger.Info("удалена задача")
	return nil
}

func (i impl) getOwn(companyID, taskID string) (*dbmodels.Task, error) {
	rec, err := i.store.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, errors.New("задача не найдена")
	}
	return rec, nil
}

func (i impl) notifyNewTask(assigneeIDs []string, description string) {
	now := time.Now().Format("02.01.2006 15:04:05")
	for _, employeeID := range assigneeIDs {
		i.hub.SendMessage(wsmodels.ServerMessage{
			ToUserID: employeeID,
			Time:     now,
			Code:     string(wsmodels.NewTaskEvent),
			Msg:      description,
		})
	}
}

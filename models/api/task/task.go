package taskapimodels

import (
	"time"

	"github.com/pkg/errors"
)

type AssigneeType string

const (
	BranchAssignee   AssigneeType = "branch"
	EmployeeAssignee AssigneeType = "employee"
	NoAssignee       AssigneeType = "unassigned"
)

type StatusFilter string

const (
	AllFilter       StatusFilter = "ALL"
	PendingFilter   StatusFilter = "PENDING"
	CompletedFilter StatusFilter = "COMPLETED"
)

func (f StatusFilter) Validate() error {
	switch f {
	case "", AllFilter, PendingFilter, CompletedFilter:
		return nil
	}
	return errors.New("неизвестный фильтр статуса задач")
}

type TaskView struct {
	ID              string       `json:"id"`
	CompanyID       string       `json:"company_id"`
	Description     string       `json:"description"`
	DueDate         *time.Time   `json:"due_date,omitempty"`
	IsCompleted     bool         `json:"is_completed"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	CompletedByName string       `json:"completed_by_name,omitempty"`
	AssigneeType    AssigneeType `json:"assignee_type"`
	AssigneeID      string       `json:"assignee_id,omitempty"`
	AssigneeName    string       `json:"assignee_name,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// EmployeeTaskView - задача в списке сотрудника, для задач филиала
// дополнительно отражает статус личного назначения
type EmployeeTaskView struct {
	TaskView
	TaskType            AssigneeType `json:"task_type"` // direct/branch
	AssignmentCompleted bool         `json:"assignment_completed"`
}

type CreateTask struct {
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	BranchID    string     `json:"branch_id"`   // назначение на филиал
	EmployeeID  string     `json:"employee_id"` // либо на сотрудника
}

func (r CreateTask) Validate() error {
	if r.Description == "" {
		return errors.New("не указано описание задачи")
	}
	if r.BranchID != "" && r.EmployeeID != "" {
		return errors.New("задача назначается либо на филиал, либо на сотрудника")
	}
	return nil
}

type CompleteResult struct {
	TaskCompleted bool `json:"task_completed"` // вся задача выполнена
}

type AssignmentStatus struct {
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	RoleName     string     `json:"role_name"`
	RoleLevel    int        `json:"role_level"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type Progress struct {
	Total          int64              `json:"total"`
	Completed      int64              `json:"completed"`
	CompletionRate int                `json:"completion_rate"` // процент выполнения
	Statuses       []AssignmentStatus `json:"statuses"`
}

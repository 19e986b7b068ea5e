package dbmodels

import (
	"time"

	taskapimodels "ops-portal-backend/models/api/task"
)

type Task struct {
	BaseModel
	CompanyID     string  `gorm:"index"`
	BranchID      *string `gorm:"index"`
	Branch        *Branch `gorm:"foreignKey:BranchID"`
	EmployeeID    *string `gorm:"index"`
	Employee      *Employee `gorm:"foreignKey:EmployeeID"`
	Description   string    `gorm:"type:text;not null"`
	DueDate       *time.Time
	IsCompleted   bool `gorm:"default:false"`
	CompletedByID *string
	CompletedBy   *Employee `gorm:"foreignKey:CompletedByID"`
	CompletedAt   *time.Time
}

// IsBranchTask задача на филиал, учет выполнения ведется по назначениям
func (r Task) IsBranchTask() bool {
	return r.BranchID != nil
}

func (r Task) ToModel() taskapimodels.TaskView {
	view := taskapimodels.TaskView{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Description: r.Description,
		DueDate:     r.DueDate,
		IsCompleted: r.IsCompleted,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
	}
	switch {
	case r.BranchID != nil:
		view.AssigneeType = taskapimodels.BranchAssignee
		view.AssigneeID = *r.BranchID
		if r.Branch != nil {
			view.AssigneeName = r.Branch.Name
		}
	case r.EmployeeID != nil:
		view.AssigneeType = taskapimodels.EmployeeAssignee
		view.AssigneeID = *r.EmployeeID
		if r.Employee != nil {
			view.AssigneeName = r.Employee.FullName
		}
	default:
		view.AssigneeType = taskapimodels.NoAssignee
	}
	if r.CompletedBy != nil {
		view.CompletedByName = r.CompletedBy.FullName
	}
	return view
}

type TaskAssignment struct {
	BaseModel
	TaskID      string   `gorm:"index;uniqueIndex:idx_task_assignment"`
	Task        Task     `gorm:"foreignKey:TaskID"`
	EmployeeID  string   `gorm:"uniqueIndex:idx_task_assignment"`
	Employee    Employee `gorm:"foreignKey:EmployeeID"`
	IsCompleted bool     `gorm:"default:false"`
	CompletedAt *time.Time
}

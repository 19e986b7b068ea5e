package taskstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	taskapimodels "ops-portal-backend/models/api/task"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Task) (string, error)
	CreateAssignments(list []dbmodels.TaskAssignment) error
	GetByID(taskID string) (rec *dbmodels.Task, err error)
	GetAssignment(taskID, employeeID string) (rec *dbmodels.TaskAssignment, err error)
	CompleteAssignment(taskID, employeeID string, now time.Time) (updated bool, err error)
	CountIncompleteAssignments(taskID string) (int64, error)
	CompleteTask(taskID, completedByID string, now time.Time) (updated bool, err error)
	ResetTask(taskID string) error
	ResetAssignments(taskID string) error
	GetListForCompany(companyID string, filter taskapimodels.StatusFilter) (list []dbmodels.Task, err error)
	GetDirectForEmployee(employeeID string, filter taskapimodels.StatusFilter) (list []dbmodels.Task, err error)
	GetAssignmentsForEmployee(employeeID string, filter taskapimodels.StatusFilter) (list []dbmodels.TaskAssignment, err error)
	GetAssignmentStatuses(taskID string) (list []taskapimodels.AssignmentStatus, err error)
	GetAssignmentCounts(taskID string) (total, completed int64, err error)
	DeleteAssignments(taskID string) error
	Delete(taskID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateAssignments(list []dbmodels.TaskAssignment) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Create(&list).
		Error
}

func (i impl) GetByID(taskID string) (rec *dbmodels.Task, err error) {
	err = i.db.Model(dbmodels.Task{}).
		Where("id = ?", taskID).
		Preload("Branch").
		Preload("Employee").
		Preload("CompletedBy").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetAssignment(taskID, employeeID string) (rec *dbmodels.TaskAssignment, err error) {
	err = i.db.Model(dbmodels.TaskAssignment{}).
		Where("task_id = ? AND employee_id = ?", taskID, employeeID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// CompleteAssignment условное обновление, повторная отметка не перетирает
// первую дату выполнения
func (i impl) CompleteAssignment(taskID, employeeID string, now time.Time) (updated bool, err error) {
	tx := i.db.
		Model(&dbmodels.TaskAssignment{}).
		Where("task_id = ? AND employee_id = ? AND is_completed = false", taskID, employeeID).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) CountIncompleteAssignments(taskID string) (int64, error) {
	var count int64
	err := i.db.Model(dbmodels.TaskAssignment{}).
		Where("task_id = ? AND is_completed = false", taskID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CompleteTask гонка двух последних исполнителей решается условием в where,
// задача закрывается ровно один раз
func (i impl) CompleteTask(taskID, completedByID string, now time.Time) (updated bool, err error) {
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ? AND is_completed = false", taskID).
		Updates(map[string]interface{}{
			"is_completed":    true,
			"completed_by_id": completedByID,
			"completed_at":    now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) ResetTask(taskID string) error {
	return i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"is_completed":    false,
			"completed_by_id": nil,
			"completed_at":    nil,
		}).
		Error
}

func (i impl) ResetAssignments(taskID string) error {
	return i.db.
		Model(&dbmodels.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{
			"is_completed": false,
			"completed_at": nil,
		}).
		Error
}

func (i impl) GetListForCompany(companyID string, filter taskapimodels.StatusFilter) (list []dbmodels.Task, err error) {
	tx := i.db.Model(dbmodels.Task{}).
		Where("company_id = ?", companyID)
	tx = applyStatusFilter(tx, filter, "is_completed")
	err = tx.
		Preload("Branch").
		Preload("Employee").
		Preload("CompletedBy").
		Order("is_completed, created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetDirectForEmployee(employeeID string, filter taskapimodels.StatusFilter) (list []dbmodels.Task, err error) {
	tx := i.db.Model(dbmodels.Task{}).
		Where("employee_id = ?", employeeID)
	tx = applyStatusFilter(tx, filter, "is_completed")
	err = tx.
		Preload("Employee").
		Preload("CompletedBy").
		Order("is_completed, created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetAssignmentsForEmployee фильтр статуса идет по личному назначению,
// а не по задаче целиком
func (i impl) GetAssignmentsForEmployee(employeeID string, filter taskapimodels.StatusFilter) (list []dbmodels.TaskAssignment, err error) {
	tx := i.db.Model(dbmodels.TaskAssignment{}).
		Where("task_assignments.employee_id = ?", employeeID)
	tx = applyStatusFilter(tx, filter, "task_assignments.is_completed")
	err = tx.
		Preload("Task").
		Preload("Task.Branch").
		Preload("Task.CompletedBy").
		Joins("JOIN tasks t ON t.id = task_assignments.task_id").
		Order("task_assignments.is_completed, t.created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetAssignmentStatuses(taskID string) (list []taskapimodels.AssignmentStatus, err error) {
	err = i.db.
		Table("task_assignments ta").
		Select("ta.employee_id, e.full_name as employee_name, r.name as role_name, r.level as role_level, ta.is_completed, ta.completed_at").
		Joins("JOIN employees e ON e.id = ta.employee_id").
		Joins("JOIN roles r ON r.id = e.role_id").
		Where("ta.task_id = ?", taskID).
		Order("r.level, e.full_name").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetAssignmentCounts(taskID string) (total, completed int64, err error) {
	err = i.db.Model(dbmodels.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Count(&total).
		Error
	if err != nil {
		return 0, 0, err
	}
	err = i.db.Model(dbmodels.TaskAssignment{}).
		Where("task_id = ? AND is_completed = true", taskID).
		Count(&completed).
		Error
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (i impl) DeleteAssignments(taskID string) error {
	return i.db.
		Where("task_id = ?", taskID).
		Delete(&dbmodels.TaskAssignment{}).
		Error
}

func (i impl) Delete(taskID string) error {
	return i.db.
		Where("id = ?", taskID).
		Delete(&dbmodels.Task{}).
		Error
}

func applyStatusFilter(tx *gorm.DB, filter taskapimodels.StatusFilter, column string) *gorm.DB {
	switch filter {
	case taskapimodels.PendingFilter:
		return tx.Where(column+" = false")
	case taskapimodels.CompletedFilter:
		return tx.Where(column+" = true")
	}
	return tx
}

package permissions

import (
	"ops-portal-backend/models"
)

// Таблица полномочий по уровням ролей (1 = Manager, 2 = Asst. Manager,
// 3 = General Employee). Неизвестный уровень трактуется как рядовой сотрудник.

func normalize(level int) int {
	if level < models.ManagerLevel || level > models.GeneralEmployeeLevel {
		return models.GeneralEmployeeLevel
	}
	return level
}

// CanAssignTasksTo может ли actor назначать задачи сотруднику с уровнем target
func CanAssignTasksTo(actorLevel, targetLevel int) bool {
	switch normalize(actorLevel) {
	case models.ManagerLevel:
		return normalize(targetLevel) >= models.AsstManagerLevel
	case models.AsstManagerLevel:
		return normalize(targetLevel) == models.GeneralEmployeeLevel
	}
	return false
}

// CanViewReportsOf может ли actor просматривать отчеты сотрудника с уровнем target
func CanViewReportsOf(actorLevel, targetLevel int) bool {
	switch normalize(actorLevel) {
	case models.ManagerLevel:
		return true
	case models.AsstManagerLevel:
		return normalize(targetLevel) >= models.AsstManagerLevel
	}
	return normalize(actorLevel) == normalize(targetLevel)
}

// CanDeactivateRole может ли actor деактивировать сотрудника с уровнем target
func CanDeactivateRole(actorLevel, targetLevel int) bool {
	switch normalize(actorLevel) {
	case models.ManagerLevel:
		return normalize(targetLevel) > models.ManagerLevel
	case models.AsstManagerLevel:
		return normalize(targetLevel) == models.GeneralEmployeeLevel
	}
	return false
}

// CanCreateEmployees создавать учетки сотрудников могут Manager и Asst. Manager
func CanCreateEmployees(actorLevel int) bool {
	return normalize(actorLevel) <= models.AsstManagerLevel
}

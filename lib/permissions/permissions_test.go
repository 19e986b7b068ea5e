package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ops-portal-backend/models"
)

func TestCanAssignTasksTo(t *testing.T) {
	cases := []struct {
		name   string
		actor  int
		target int
		want   bool
	}{
		{"менеджер назначает зам. менеджеру", models.ManagerLevel, models.AsstManagerLevel, true},
		{"менеджер назначает рядовому", models.ManagerLevel, models.GeneralEmployeeLevel, true},
		{"менеджер назначает менеджеру", models.ManagerLevel, models.ManagerLevel, false},
		{"зам. менеджера назначает рядовому", models.AsstManagerLevel, models.GeneralEmployeeLevel, true},
		{"зам. менеджера назначает зам. менеджеру", models.AsstManagerLevel, models.AsstManagerLevel, false},
		{"рядовой не назначает никому", models.GeneralEmployeeLevel, models.GeneralEmployeeLevel, false},
		{"неизвестный уровень считается рядовым", 0, models.GeneralEmployeeLevel, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanAssignTasksTo(tc.actor, tc.target))
		})
	}
}

func TestCanViewReportsOf(t *testing.T) {
	require.True(t, CanViewReportsOf(models.ManagerLevel, models.ManagerLevel))
	require.True(t, CanViewReportsOf(models.ManagerLevel, models.GeneralEmployeeLevel))
	require.True(t, CanViewReportsOf(models.AsstManagerLevel, models.AsstManagerLevel))
	require.True(t, CanViewReportsOf(models.AsstManagerLevel, models.GeneralEmployeeLevel))
	require.False(t, CanViewReportsOf(models.AsstManagerLevel, models.ManagerLevel))
	require.True(t, CanViewReportsOf(models.GeneralEmployeeLevel, models.GeneralEmployeeLevel))
	require.False(t, CanViewReportsOf(models.GeneralEmployeeLevel, models.AsstManagerLevel))
	// неизвестный уровень актора трактуется как рядовой сотрудник
	require.True(t, CanViewReportsOf(7, models.GeneralEmployeeLevel))
	require.False(t, CanViewReportsOf(7, models.ManagerLevel))
}

func TestCanDeactivateRole(t *testing.T) {
	require.True(t, CanDeactivateRole(models.ManagerLevel, models.AsstManagerLevel))
	require.True(t, CanDeactivateRole(models.ManagerLevel, models.GeneralEmployeeLevel))
	require.False(t, CanDeactivateRole(models.ManagerLevel, models.ManagerLevel))
	require.True(t, CanDeactivateRole(models.AsstManagerLevel, models.GeneralEmployeeLevel))
	require.False(t, CanDeactivateRole(models.AsstManagerLevel, models.AsstManagerLevel))
	require.False(t, CanDeactivateRole(models.GeneralEmployeeLevel, models.GeneralEmployeeLevel))
}

func TestCanCreateEmployees(t *testing.T) {
	require.True(t, CanCreateEmployees(models.ManagerLevel))
	require.True(t, CanCreateEmployees(models.AsstManagerLevel))
	require.False(t, CanCreateEmployees(models.GeneralEmployeeLevel))
	require.False(t, CanCreateEmployees(0))
}

package roleapimodels

import (
	"github.com/pkg/errors"
)

type RoleView struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`  // название роли
	Level     int    `json:"level"` // уровень полномочий, 1 - максимальный
}

type CreateRole struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func (r CreateRole) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название роли")
	}
	if r.Level < 1 {
		return errors.New("не указан уровень роли")
	}
	return nil
}

type UpdateRole struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func (r UpdateRole) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название роли")
	}
	if r.Level < 1 {
		return errors.New("не указан уровень роли")
	}
	return nil
}

type DeleteRole struct {
	ReplacementRoleID string `json:"replacement_role_id"` // роль, на которую переводятся сотрудники
}

func (r DeleteRole) Validate() error {
	if r.ReplacementRoleID == "" {
		return errors.New("не указана роль для перевода сотрудников")
	}
	return nil
}

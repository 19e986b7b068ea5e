package employeeapimodels

import (
	"github.com/pkg/errors"
)

type EmployeeView struct {
	ID         string `json:"id"`
	Login      string `json:"login"`
	FullName   string `json:"full_name"`
	PhotoKey   string `json:"photo_key"`
	IsActive   bool   `json:"is_active"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	RoleID     string `json:"role_id"`
	RoleName   string `json:"role_name"`
	RoleLevel  int    `json:"role_level"`
}

type CreateEmployee struct {
	BranchID string `json:"branch_id"`
	RoleID   string `json:"role_id"`
	Login    string `json:"login"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (r CreateEmployee) Validate() error {
	if r.BranchID == "" {
		return errors.New("не указан филиал")
	}
	if r.RoleID == "" {
		return errors.New("не указана роль")
	}
	if r.Login == "" {
		return errors.New("не указан логин")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	if r.FullName == "" {
		return errors.New("не указано имя сотрудника")
	}
	return nil
}

type UpdateProfile struct {
	FullName string `json:"full_name"`
}

func (r UpdateProfile) Validate() error {
	if r.FullName == "" {
		return errors.New("не указано имя сотрудника")
	}
	return nil
}

type SetStatus struct {
	IsActive bool `json:"is_active"`
}

func (r SetStatus) Validate() error {
	return nil
}

type ChangeRole struct {
	RoleID string `json:"role_id"`
}

func (r ChangeRole) Validate() error {
	if r.RoleID == "" {
		return errors.New("не указана роль")
	}
	return nil
}

type TransferBranch struct {
	BranchID string `json:"branch_id"`
}

func (r TransferBranch) Validate() error {
	if r.BranchID == "" {
		return errors.New("не указан филиал")
	}
	return nil
}

type ChangePassword struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePassword) Validate() error {
	if r.CurrentPassword == "" {
		return errors.New("не указан текущий пароль")
	}
	if r.NewPassword == "" {
		return errors.New("не указан новый пароль")
	}
	return nil
}

type ResetPassword struct {
	NewPassword string `json:"new_password"`
}

func (r ResetPassword) Validate() error {
	if r.NewPassword == "" {
		return errors.New("не указан новый пароль")
	}
	return nil
}

// ActiveFilter - фильтр выборки активных сотрудников
type ActiveFilter struct {
	CompanyID string
	BranchID  string
	RoleLevel int // 0 = без фильтра по уровню
}

package authapimodels

import (
	"github.com/pkg/errors"

	"ops-portal-backend/models"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Login == "" {
		return errors.New("не указан логин")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type JWTResponse struct {
	Token string `json:"token"`
}

// UserInfo - контекст авторизованного пользователя, для сотрудника
// дополнен данными филиала/роли/компании
type UserInfo struct {
	ID        string          `json:"id"`
	Login     string          `json:"login"`
	FullName  string          `json:"full_name"`
	UserType  models.UserType `json:"user_type"`
	PhotoKey  string          `json:"photo_key,omitempty"`
	CompanyID string          `json:"company_id,omitempty"`
	Company   string          `json:"company_name,omitempty"`
	BranchID  string          `json:"branch_id,omitempty"`
	Branch    string          `json:"branch_name,omitempty"`
	RoleID    string          `json:"role_id,omitempty"`
	RoleName  string          `json:"role_name,omitempty"`
	RoleLevel int             `json:"role_level,omitempty"`
}

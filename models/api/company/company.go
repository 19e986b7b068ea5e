package companyapimodels

import (
	"time"

	"github.com/pkg/errors"
)

type CompanyView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`       // название компании
	Login     string    `json:"login"`      // логин для входа
	Email     string    `json:"email"`      // контактная почта
	PhotoKey  string    `json:"photo_key"`  // ключ фото профиля в хранилище
	IsActive  bool      `json:"is_active"`  // признак активности
	CreatedAt time.Time `json:"created_at"` // дата создания
}

type CreateCompany struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (r CreateCompany) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название компании")
	}
	if r.Login == "" {
		return errors.New("не указан логин")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type UpdateProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r UpdateProfile) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название компании")
	}
	return nil
}

type SetStatus struct {
	IsActive bool `json:"is_active"`
}

func (r SetStatus) Validate() error {
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

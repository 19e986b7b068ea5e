package models

type UserType string

const (
	AdminUserType    UserType = "ADMIN"
	CompanyUserType  UserType = "COMPANY"
	EmployeeUserType UserType = "EMPLOYEE"
)

var userTypeHumanName = map[UserType]string{
	AdminUserType:    "Администратор системы",
	CompanyUserType:  "Компания",
	EmployeeUserType: "Сотрудник",
}

func (t UserType) ToHuman() string {
	if human, exist := userTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

// PartyType - тип участника переписки (messages.sender_type/receiver_type)
type PartyType string

const (
	AdminParty   PartyType = "admin"
	CompanyParty PartyType = "company"
)

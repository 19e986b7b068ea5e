package models

// Уровень роли сотрудника, меньше = больше полномочий
const (
	ManagerLevel         = 1
	AsstManagerLevel     = 2
	GeneralEmployeeLevel = 3
)

const (
	ManagerRoleName         = "Manager"
	AsstManagerRoleName     = "Asst. Manager"
	GeneralEmployeeRoleName = "General Employee"
)

var roleLevelName = map[int]string{
	ManagerLevel:         ManagerRoleName,
	AsstManagerLevel:     AsstManagerRoleName,
	GeneralEmployeeLevel: GeneralEmployeeRoleName,
}

var roleNameLevel = map[string]int{
	ManagerRoleName:         ManagerLevel,
	AsstManagerRoleName:     AsstManagerLevel,
	GeneralEmployeeRoleName: GeneralEmployeeLevel,
}

// RoleLevelName неизвестный уровень считаем рядовым сотрудником
func RoleLevelName(level int) string {
	if name, exist := roleLevelName[level]; exist {
		return name
	}
	return GeneralEmployeeRoleName
}

func RoleNameLevel(name string) int {
	if level, exist := roleNameLevel[name]; exist {
		return level
	}
	return GeneralEmployeeLevel
}

// AuthContext - данные авторизованного пользователя из JWT
type AuthContext struct {
	UserID    string
	UserType  UserType
	CompanyID string
	BranchID  string
	RoleLevel int
}

func (c AuthContext) IsAdmin() bool {
	return c.UserType == AdminUserType
}

func (c AuthContext) IsCompany() bool {
	return c.UserType == CompanyUserType
}

func (c AuthContext) IsEmployee() bool {
	return c.UserType == EmployeeUserType
}

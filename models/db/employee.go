package dbmodels

import (
	employeeapimodels "ops-portal-backend/models/api/employee"
)

type Employee struct {
	BaseModel
	BranchID string `gorm:"index"`
	Branch   Branch `gorm:"foreignKey:BranchID"`
	RoleID   string `gorm:"index"`
	Role     Role   `gorm:"foreignKey:RoleID"`
	Login    string `gorm:"type:varchar(50);uniqueIndex"`
	Password string `gorm:"type:varchar(128)"`
	FullName string `gorm:"type:varchar(100)"`
	PhotoKey string `gorm:"type:varchar(255)"`
	IsActive bool   `gorm:"default:true"`
}

func (r Employee) ToModel() employeeapimodels.EmployeeView {
	return employeeapimodels.EmployeeView{
		ID:         r.ID,
		Login:      r.Login,
		FullName:   r.FullName,
		PhotoKey:   r.PhotoKey,
		IsActive:   r.IsActive,
		BranchID:   r.BranchID,
		BranchName: r.Branch.Name,
		RoleID:     r.RoleID,
		RoleName:   r.Role.Name,
		RoleLevel:  r.Role.Level,
	}
}

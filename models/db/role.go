package dbmodels

import (
	roleapimodels "ops-portal-backend/models/api/role"
)

type Role struct {
	BaseModel
	CompanyID string `gorm:"index;uniqueIndex:idx_company_role_name"`
	Name      string `gorm:"type:varchar(50);uniqueIndex:idx_company_role_name"`
	Level     int    `gorm:"not null"`
}

func (r Role) ToModel() roleapimodels.RoleView {
	return roleapimodels.RoleView{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		Level:     r.Level,
	}
}

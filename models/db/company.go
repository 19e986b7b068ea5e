package dbmodels

import (
	companyapimodels "ops-portal-backend/models/api/company"
)

type Company struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);uniqueIndex"`
	Login    string `gorm:"type:varchar(50);uniqueIndex"`
	Password string `gorm:"type:varchar(128)"`
	Email    string `gorm:"type:varchar(100)"`
	PhotoKey string `gorm:"type:varchar(255)"`
	IsActive bool   `gorm:"default:true"`
}

func (r Company) ToModel() companyapimodels.CompanyView {
	return companyapimodels.CompanyView{
		ID:        r.ID,
		Name:      r.Name,
		Login:     r.Login,
		Email:     r.Email,
		PhotoKey:  r.PhotoKey,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

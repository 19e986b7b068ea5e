package dbmodels

import (
	branchapimodels "ops-portal-backend/models/api/branch"
)

type Branch struct {
	BaseModel
	CompanyID      string  `gorm:"index;uniqueIndex:idx_company_branch_name"`
	Company        Company `gorm:"foreignKey:CompanyID"`
	ParentBranchID *string
	ParentBranch   *Branch `gorm:"foreignKey:ParentBranchID"`
	Name           string  `gorm:"type:varchar(100);uniqueIndex:idx_company_branch_name"`
	IsMain         bool
	Location       string `gorm:"type:varchar(255)"`
	Head           string `gorm:"type:varchar(100)"`
	IsActive       bool   `gorm:"default:true"`
}

func (r Branch) ToModel() branchapimodels.BranchView {
	view := branchapimodels.BranchView{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		IsMain:    r.IsMain,
		Location:  r.Location,
		Head:      r.Head,
		IsActive:  r.IsActive,
	}
	if r.ParentBranchID != nil {
		view.ParentBranchID = *r.ParentBranchID
	}
	if r.ParentBranch != nil {
		view.ParentBranchName = r.ParentBranch.Name
	}
	return view
}

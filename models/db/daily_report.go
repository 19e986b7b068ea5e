package dbmodels

import (
	"time"

	reportapimodels "ops-portal-backend/models/api/report"
)

type DailyReport struct {
	BaseModel
	EmployeeID string    `gorm:"index"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID"`
	ReportDate time.Time `gorm:"type:date;index"`
	ReportText string    `gorm:"type:text;not null"`
}

func (r DailyReport) ToModel() reportapimodels.ReportView {
	view := reportapimodels.ReportView{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.Employee.FullName,
		ReportDate:   r.ReportDate,
		ReportText:   r.ReportText,
		CreatedAt:    r.CreatedAt,
	}
	view.RoleName = r.Employee.Role.Name
	view.RoleLevel = r.Employee.Role.Level
	view.BranchName = r.Employee.Branch.Name
	return view
}

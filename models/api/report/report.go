package reportapimodels

import (
	"time"

	"github.com/pkg/errors"
)

type ReportView struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	RoleName     string    `json:"role_name,omitempty"`
	RoleLevel    int       `json:"role_level,omitempty"`
	BranchName   string    `json:"branch_name,omitempty"`
	ReportDate   time.Time `json:"report_date"`
	ReportText   string    `json:"report_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type AddReport struct {
	ReportDate time.Time `json:"report_date"`
	ReportText string    `json:"report_text"`
}

func (r AddReport) Validate() error {
	if r.ReportDate.IsZero() {
		return errors.New("не указана дата отчета")
	}
	if r.ReportText == "" {
		return errors.New("не указан текст отчета")
	}
	return nil
}

type UpdateReport struct {
	ReportDate time.Time `json:"report_date"`
	ReportText string    `json:"report_text"`
}

func (r UpdateReport) Validate() error {
	if r.ReportDate.IsZero() {
		return errors.New("не указана дата отчета")
	}
	if r.ReportText == "" {
		return errors.New("не указан текст отчета")
	}
	return nil
}

// RangeFilter - период выборки отчетов, пресет либо произвольные границы
type RangeFilter struct {
	Preset    string     `json:"preset"` // см. daterange.Preset
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type ListFilter struct {
	RangeFilter
	BranchID     string `json:"branch_id,omitempty"`
	RoleID       string `json:"role_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}

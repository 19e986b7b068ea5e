package reportstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"ops-portal-backend/lib/report/daterange"
	reportapimodels "ops-portal-backend/models/api/report"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DailyReport) (string, error)
	Update(reportID string, updMap map[string]interface{}) error
	GetByID(reportID string) (rec *dbmodels.DailyReport, err error)
	FindByEmployeeAndDate(employeeID string, date time.Time) (rec *dbmodels.DailyReport, err error)
	GetListForEmployee(employeeID string, rng daterange.Range) (list []dbmodels.DailyReport, err error)
	GetListForCompany(companyID string, rng daterange.Range, filter reportapimodels.ListFilter) (list []dbmodels.DailyReport, err error)
	Delete(reportID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DailyReport) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(reportID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.DailyReport{}).
		Where("id = ?", reportID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(reportID string) (rec *dbmodels.DailyReport, err error) {
	err = i.db.Model(dbmodels.DailyReport{}).
		Where("id = ?", reportID).
		Preload("Employee").
		Preload("Employee.Role").
		Preload("Employee.Branch").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// FindByEmployeeAndDate на одну дату у сотрудника не больше одного отчета
func (i impl) FindByEmployeeAndDate(employeeID string, date time.Time) (rec *dbmodels.DailyReport, err error) {
	err = i.db.Model(dbmodels.DailyReport{}).
		Where("employee_id = ? AND report_date = ?", employeeID, date.Format("2006-01-02")).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetListForEmployee(employeeID string, rng daterange.Range) (list []dbmodels.DailyReport, err error) {
	err = i.db.Model(dbmodels.DailyReport{}).
		Where("employee_id = ?", employeeID).
		Where("report_date BETWEEN ? AND ?", rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02")).
		Preload("Employee").
		Preload("Employee.Role").
		Preload("Employee.Branch").
		Order("report_date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetListForCompany(companyID string, rng daterange.Range, filter reportapimodels.ListFilter) (list []dbmodels.DailyReport, err error) {
	tx := i.db.Model(dbmodels.DailyReport{}).
		Joins("JOIN employees e ON e.id = daily_reports.employee_id").
		Joins("JOIN branches b ON b.id = e.branch_id").
		Joins("JOIN roles r ON r.id = e.role_id").
		Where("b.company_id = ?", companyID).
		Where("daily_reports.report_date BETWEEN ? AND ?", rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	if filter.BranchID != "" {
		tx = tx.Where("e.branch_id = ?", filter.BranchID)
	}
	if filter.RoleID != "" {
		tx = tx.Where("e.role_id = ?", filter.RoleID)
	}
	if filter.EmployeeName != "" {
		tx = tx.Where("e.full_name ILIKE ?", "%"+filter.EmployeeName+"%")
	}
	err = tx.
		Preload("Employee").
		Preload("Employee.Role").
		Preload("Employee.Branch").
		Order("daily_reports.report_date DESC, r.level, e.full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(reportID string) error {
	return i.db.
		Where("id = ?", reportID).
		Delete(&dbmodels.DailyReport{}).
		Error
}

package reporthandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ops-portal-backend/lib/report/daterange"
	reportstore "ops-portal-backend/lib/report/store"
	"ops-portal-backend/models"
	reportapimodels "ops-portal-backend/models/api/report"
	dbmodels "ops-portal-backend/models/db"
)

type fakeReportStore struct {
	reportstore.Provider
	reports  map[string]dbmodels.DailyReport
	byDate   map[string]dbmodels.DailyReport
	company  []dbmodels.DailyReport
	created  *dbmodels.DailyReport
	updated  map[string]interface{}
	deletedD string
}

func (f *fakeReportStore) Create(rec dbmodels.DailyReport) (string, error) {
	f.created = &rec
	return "new-id", nil
}

func (f *fakeReportStore) Update(reportID string, updMap map[string]interface{}) error {
	f.updated = updMap
	return nil
}

func (f *fakeReportStore) Delete(reportID string) error {
	f.deletedD = reportID
	return nil
}

func (f *fakeReportStore) GetByID(reportID string) (*dbmodels.DailyReport, error) {
	rec, ok := f.reports[reportID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeReportStore) FindByEmployeeAndDate(employeeID string, date time.Time) (*dbmodels.DailyReport, error) {
	rec, ok := f.byDate[employeeID+date.Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeReportStore) GetListForCompany(companyID string, rng daterange.Range, filter reportapimodels.ListFilter) ([]dbmodels.DailyReport, error) {
	return f.company, nil
}

func reportFor(id, employeeID string, roleLevel int) dbmodels.DailyReport {
	return dbmodels.DailyReport{
		BaseModel:  dbmodels.BaseModel{ID: id},
		EmployeeID: employeeID,
		Employee: dbmodels.Employee{
			Role: dbmodels.Role{Level: roleLevel},
		},
		ReportDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		ReportText: "итоги дня",
	}
}

func TestAddReportSinglePerDate(t *testing.T) {
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeReportStore{
		byDate: map[string]dbmodels.DailyReport{
			"e1" + date.Format("2006-01-02"): reportFor("r1", "e1", models.GeneralEmployeeLevel),
		},
	}
	handler := impl{store: store}
	authCtx := models.AuthContext{UserID: "e1", UserType: models.EmployeeUserType}

	t.Run("повторный отчет за дату", func(t *testing.T) {
		_, err := handler.Add(authCtx, reportapimodels.AddReport{ReportDate: date, ReportText: "итоги дня"})
		require.EqualError(t, err, "отчет за эту дату уже существует")
	})

	t.Run("другая дата проходит", func(t *testing.T) {
		id, err := handler.Add(authCtx, reportapimodels.AddReport{
			ReportDate: date.AddDate(0, 0, 1),
			ReportText: "итоги дня",
		})
		require.NoError(t, err)
		require.Equal(t, "new-id", id)
		require.Equal(t, "e1", store.created.EmployeeID)
	})
}

func TestUpdateReportOwnership(t *testing.T) {
	store := &fakeReportStore{
		reports: map[string]dbmodels.DailyReport{
			"r1": reportFor("r1", "e1", models.GeneralEmployeeLevel),
		},
	}
	handler := impl{store: store}

	t.Run("чужой отчет", func(t *testing.T) {
		err := handler.Update(models.AuthContext{UserID: "e2", UserType: models.EmployeeUserType}, "r1",
			reportapimodels.UpdateReport{ReportDate: time.Now(), ReportText: "правка"})
		require.EqualError(t, err, "отчет не найден")
	})

	t.Run("свой отчет", func(t *testing.T) {
		err := handler.Update(models.AuthContext{UserID: "e1", UserType: models.EmployeeUserType}, "r1",
			reportapimodels.UpdateReport{
				ReportDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
				ReportText: "правка",
			})
		require.NoError(t, err)
		require.Equal(t, "правка", store.updated["report_text"])
	})
}

// руководитель видит отчеты подчиненных и свои, рядовой сотрудник только свои
func TestGetListPermissionFilter(t *testing.T) {
	store := &fakeReportStore{
		company: []dbmodels.DailyReport{
			reportFor("r1", "mgr", models.ManagerLevel),
			reportFor("r2", "asst", models.AsstManagerLevel),
			reportFor("r3", "emp", models.GeneralEmployeeLevel),
		},
	}
	handler := impl{store: store}
	filter := reportapimodels.ListFilter{
		RangeFilter: reportapimodels.RangeFilter{Preset: string(daterange.AllTime)},
	}

	t.Run("компания видит все", func(t *testing.T) {
		list, err := handler.GetList(models.AuthContext{UserType: models.CompanyUserType}, "c1", filter)
		require.NoError(t, err)
		require.Len(t, list, 3)
	})

	t.Run("замруководителя видит рядовых и себя", func(t *testing.T) {
		list, err := handler.GetList(models.AuthContext{
			UserID:    "asst",
			UserType:  models.EmployeeUserType,
			RoleLevel: models.AsstManagerLevel,
		}, "c1", filter)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "r2", list[0].ID)
		require.Equal(t, "r3", list[1].ID)
	})

	t.Run("рядовой видит только себя", func(t *testing.T) {
		list, err := handler.GetList(models.AuthContext{
			UserID:    "emp",
			UserType:  models.EmployeeUserType,
			RoleLevel: models.GeneralEmployeeLevel,
		}, "c1", filter)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "r3", list[0].ID)
	})
}

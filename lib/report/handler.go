package reporthandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/db"
	"ops-portal-backend/lib/permissions"
	"ops-portal-backend/lib/report/daterange"
	reportstore "ops-portal-backend/lib/report/store"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	"ops-portal-backend/models"
	reportapimodels "ops-portal-backend/models/api/report"
	dbmodels "ops-portal-backend/models/db"
)

type Provider interface {
	Add(authCtx models.AuthContext, request reportapimodels.AddReport) (id string, err error)
	Update(authCtx models.AuthContext, reportID string, request reportapimodels.UpdateReport) error
	Delete(authCtx models.AuthContext, reportID string) error
	GetMyList(authCtx models.AuthContext, filter reportapimodels.RangeFilter) (list []reportapimodels.ReportView, err error)
	GetList(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (list []reportapimodels.ReportView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: reportstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store reportstore.Provider
}

// Add на одну дату у сотрудника допускается только один отчет
func (i impl) Add(authCtx models.AuthContext, request reportapimodels.AddReport) (id string, err error) {
	logger := log.WithField("employee_id", authCtx.UserID)
	existing, err := i.store.FindByEmployeeAndDate(authCtx.UserID, request.ReportDate)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errors.New("отчет за эту дату уже существует")
	}
	id, err = i.store.Create(dbmodels.DailyReport{
		EmployeeID: authCtx.UserID,
		ReportDate: request.ReportDate,
		ReportText: request.ReportText,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания отчета")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("report_date", request.ReportDate.Format("2006-01-02")).
		Info("добавлен отчет")
	return id, nil
}

func (i impl) Update(authCtx models.AuthContext, reportID string, request reportapimodels.UpdateReport) error {
	rec, err := i.getOwn(authCtx.UserID, reportID)
	if err != nil {
		return err
	}
	if !rec.ReportDate.Equal(request.ReportDate) {
		existing, err := i.store.FindByEmployeeAndDate(authCtx.UserID, request.ReportDate)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.New("отчет за эту дату уже существует")
		}
	}
	return i.store.Update(reportID, map[string]interface{}{
		"report_date": request.ReportDate,
		"report_text": request.ReportText,
	})
}

func (i impl) Delete(authCtx models.AuthContext, reportID string) error {
	_, err := i.getOwn(authCtx.UserID, reportID)
	if err != nil {
		return err
	}
	return i.store.Delete(reportID)
}

func (i impl) GetMyList(authCtx models.AuthContext, filter reportapimodels.RangeFilter) (list []reportapimodels.ReportView, err error) {
	rng, err := daterange.Resolve(filter.Preset, filter.StartDate, filter.EndDate, time.Now())
	if err != nil {
		return nil, err
	}
	recList, err := i.store.GetListForEmployee(authCtx.UserID, rng)
	if err != nil {
		return nil, err
	}
	list = make([]reportapimodels.ReportView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

// GetList для сотрудника-руководителя выборка дополнительно фильтруется
// таблицей полномочий по уровню роли автора отчета
func (i impl) GetList(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (list []reportapimodels.ReportView, err error) {
	rng, err := daterange.Resolve(filter.Preset, filter.StartDate, filter.EndDate, time.Now())
	if err != nil {
		return nil, err
	}
	recList, err := i.store.GetListForCompany(companyID, rng, filter)
	if err != nil {
		return nil, err
	}
	list = make([]reportapimodels.ReportView, 0, len(recList))
	for _, rec := range recList {
		if authCtx.IsEmployee() {
			if rec.EmployeeID != authCtx.UserID &&
				!permissions.CanViewReportsOf(authCtx.RoleLevel, rec.Employee.Role.Level) {
				continue
			}
		}
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) getOwn(employeeID, reportID string) (*dbmodels.DailyReport, error) {
	rec, err := i.store.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.EmployeeID != employeeID {
		return nil, errors.New("отчет не найден")
	}
	return rec, nil
}

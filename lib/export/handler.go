package exporthandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ops-portal-backend/db"
	branchstore "ops-portal-backend/lib/branch/store"
	companystore "ops-portal-backend/lib/company/store"
	pdfexport "ops-portal-backend/lib/export/pdf"
	xlsexport "ops-portal-backend/lib/export/xls"
	reporthandler "ops-portal-backend/lib/report"
	"ops-portal-backend/lib/report/daterange"
	rolestore "ops-portal-backend/lib/role/store"
	initchecker "ops-portal-backend/lib/utils/init-checker"
	"ops-portal-backend/models"
	reportapimodels "ops-portal-backend/models/api/report"
)

type Provider interface {
	ExportReportsPDF(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (fileName string, data []byte, err error)
	ExportReportsXLS(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (fileName string, data []byte, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		reports:      reporthandler.Instance,
		xls:          xlsexport.Instance,
		companyStore: companystore.NewInstance(db.DB),
		branchStore:  branchstore.NewInstance(db.DB),
		roleStore:    rolestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"reports", instance.reports,
		"xls", instance.xls,
		"companyStore", instance.companyStore,
		"branchStore", instance.branchStore,
		"roleStore", instance.roleStore,
	)
	Instance = instance
}

type impl struct {
	reports      reporthandler.Provider
	xls          xlsexport.Provider
	companyStore companystore.Provider
	branchStore  branchstore.Provider
	roleStore    rolestore.Provider
}

func (i impl) ExportReportsPDF(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (fileName string, data []byte, err error) {
	logger := log.WithField("company_id", companyID)
	list, rng, entity, err := i.collect(authCtx, companyID, filter)
	if err != nil {
		return "", nil, err
	}
	data, err = pdfexport.GenerateReportDocument(entity, rng, list)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования pdf")
		return "", nil, err
	}
	return pdfexport.FileName(entity, rng), data, nil
}

func (i impl) ExportReportsXLS(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) (fileName string, data []byte, err error) {
	logger := log.WithField("company_id", companyID)
	list, rng, entity, err := i.collect(authCtx, companyID, filter)
	if err != nil {
		return "", nil, err
	}
	buf, err := i.xls.ExportReportList(list)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования xlsx")
		return "", nil, err
	}
	return xlsexport.FileName(entity, rng), buf.Bytes(), nil
}

func (i impl) collect(authCtx models.AuthContext, companyID string, filter reportapimodels.ListFilter) ([]reportapimodels.ReportView, daterange.Range, string, error) {
	rng, err := daterange.Resolve(filter.Preset, filter.StartDate, filter.EndDate, time.Now())
	if err != nil {
		return nil, daterange.Range{}, "", err
	}
	list, err := i.reports.GetList(authCtx, companyID, filter)
	if err != nil {
		return nil, daterange.Range{}, "", err
	}
	entity, err := i.entityName(companyID, filter)
	if err != nil {
		return nil, daterange.Range{}, "", err
	}
	return list, rng, entity, nil
}

// entityName название выгрузки по самому узкому заданному фильтру
func (i impl) entityName(companyID string, filter reportapimodels.ListFilter) (string, error) {
	if filter.EmployeeName != "" {
		return filter.EmployeeName, nil
	}
	if filter.BranchID != "" {
		branch, err := i.branchStore.GetByID(filter.BranchID)
		if err != nil {
			return "", err
		}
		if branch == nil {
			return "", errors.New("филиал не найден")
		}
		return branch.Name, nil
	}
	if filter.RoleID != "" {
		role, err := i.roleStore.GetByID(filter.RoleID)
		if err != nil {
			return "", err
		}
		if role == nil {
			return "", errors.New("роль не найдена")
		}
		return role.Name, nil
	}
	company, err := i.companyStore.GetByID(companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", errors.New("компания не найдена")
	}
	return company.Name, nil
}

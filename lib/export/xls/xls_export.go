package xlsexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"ops-portal-backend/lib/report/daterange"
	reportapimodels "ops-portal-backend/models/api/report"
)

type Provider interface {
	ExportReportList(list []reportapimodels.ReportView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var reportHeaders = []string{"Дата", "Сотрудник", "Роль", "Филиал", "Отчет"}

func (i impl) ExportReportList(list []reportapimodels.ReportView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, reportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeReportData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Отчеты")
	return f.WriteToBuffer()
}

func writeReportData(f *excelize.File, sheet string, list []reportapimodels.ReportView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(reportHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Дата"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ReportDate.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Сотрудник"
		col++
		if err := writeColumn(f, sheet, col, row, item.EmployeeName); err != nil {
			return row, err
		}

		// "Роль"
		col++
		if err := writeColumn(f, sheet, col, row, item.RoleName); err != nil {
			return row, err
		}

		// "Филиал"
		col++
		if err := writeColumn(f, sheet, col, row, item.BranchName); err != nil {
			return row, err
		}

		// "Отчет"
		col++
		if err := writeColumn(f, sheet, col, row, item.ReportText); err != nil {
			return row, err
		}
	}
	return row, nil
}

// FileName имя файла выгрузки вида entity_from_to.xlsx
func FileName(entity string, rng daterange.Range) string {
	entity = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(entity), " ", "_"))
	return fmt.Sprintf("%s_%s_%s.xlsx",
		entity,
		rng.Start.Format("2006-01-02"),
		rng.End.Format("2006-01-02"))
}

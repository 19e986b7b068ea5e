package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"ops-portal-backend/lib/report/daterange"
	reportapimodels "ops-portal-backend/models/api/report"
)

var monthNames = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// GenerateReportDocument формирует pdf с отчетами за период,
// отчеты группируются по месяцам
func GenerateReportDocument(title string, rng daterange.Range, list []reportapimodels.ReportView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateReportDocument panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "Letter", "static/font/")
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.AddUTF8Font("Arial", "I", "Arial Italic.ttf")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(contentW, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 11)
	period := fmt.Sprintf("Период: %s - %s", rng.Start.Format("02.01.2006"), rng.End.Format("02.01.2006"))
	pdf.CellFormat(contentW, 8, period, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(list) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(contentW, 8, "Отчетов за период нет", "", 1, "L", false, 0, "")
	}

	currentMonth := ""
	for _, report := range list {
		month := fmt.Sprintf("%s %d", monthNames[report.ReportDate.Month()-1], report.ReportDate.Year())
		if month != currentMonth {
			currentMonth = month
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 13)
			pdf.CellFormat(contentW, 9, month, "B", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		header := report.ReportDate.Format("02.01.2006")
		if report.EmployeeName != "" {
			header += " - " + report.EmployeeName
		}
		if report.RoleName != "" {
			header += " (" + report.RoleName + ")"
		}
		if report.BranchName != "" {
			header += ", " + report.BranchName
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(contentW, 6, header, "", "L", false)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(contentW, 6, report.ReportText, "", "L", false)
		pdf.Ln(3)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName имя файла выгрузки вида entity_from_to.pdf
func FileName(entity string, rng daterange.Range) string {
	entity = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(entity), " ", "_"))
	return fmt.Sprintf("%s_%s_%s.pdf",
		entity,
		rng.Start.Format("2006-01-02"),
		rng.End.Format("2006-01-02"))
}

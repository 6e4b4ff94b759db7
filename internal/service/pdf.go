package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

const PDFContentType = "application/pdf"

// FinancialPDF renders a financial report: the yearly totals followed by
// the monthly salary and dividend tables.
func FinancialPDF(report entity.FinancialReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Financial report %d", report.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Financial report %d", report.Year), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range [][2]string{
		{"Total salary", money(report.TotalSalary)},
		{"Total dividends", money(report.TotalDividends)},
		{"Total", money(report.TotalFinancial)},
	} {
		pdf.CellFormat(60, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, line[1], "", 1, "R", false, 0, "")
	}

	table(pdf, "Salaries by month", "salary_amount", report.MonthlySalary)
	table(pdf, "Dividends by month", "dividend_amount", report.MonthlyDividends)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, title, amountColumn string, rows []sqldb.Row) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 7, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(110, 7, "No data", "1", 1, "C", false, 0, "")
		return
	}
	for _, r := range rows {
		pdf.CellFormat(60, 7, fmt.Sprint(r.Get("month")), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, money(r.Float(amountColumn)), "1", 1, "R", false, 0, "")
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

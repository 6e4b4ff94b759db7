package report

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/pkg/month"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/service"
)

type Controller struct {
	report Report
}

func NewController(report Report) *Controller {
	return &Controller{report}
}

func year(c *web.Context) (int, error) {
	raw, ok := c.GetQuery("year")
	if !ok || raw == "" {
		return 0, repository.BadRequest(errors.New("year is required"))
	}
	y, err := month.ParseYear(raw)
	if err != nil {
		return 0, repository.BadRequest(err)
	}
	return y, nil
}

func (uc Controller) Salary(c *web.Context) error {
	y, err := year(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.Salary(c.Ctx, y)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Attendance(c *web.Context) error {
	y, err := year(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.Attendance(c.Ctx, y)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Financial(c *web.Context) error {
	y, err := year(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.Financial(c.Ctx, y)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

// SalaryExport downloads the salary report as a spreadsheet.
func (uc Controller) SalaryExport(c *web.Context) error {
	y, err := year(c)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := uc.report.Salary(c.Ctx, y)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.SalaryReportXLSX(report)
	if err != nil {
		return c.RespondError(err)
	}

	return c.RespondFile(fmt.Sprintf("salary-report-%d.xlsx", y), service.XLSXContentType, data)
}

// FinancialExport downloads the financial report as a PDF.
func (uc Controller) FinancialExport(c *web.Context) error {
	y, err := year(c)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := uc.report.Financial(c.Ctx, y)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.FinancialPDF(report)
	if err != nil {
		return c.RespondError(err)
	}

	return c.RespondFile(fmt.Sprintf("financial-report-%d.pdf", y), service.PDFContentType, data)
}

// Package service renders exports: spreadsheets, PDF reports and QR codes.
package service

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	employeeSheet = "Employees"
)

var employeeHeaders = []interface{}{
	"Employee ID", "Full Name", "Date of Birth", "Gender", "Phone Number", "Email",
	"Hire Date", "Department", "Position", "Status",
}

// EmployeesXLSX writes the employee list as a workbook with one header row.
func EmployeesXLSX(employees []entity.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeeSheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}
	if err := f.SetSheetRow(employeeSheet, "A1", &employeeHeaders); err != nil {
		return nil, errors.Wrap(err, "writing headers")
	}

	for i, e := range employees {
		row := []interface{}{
			e.EmployeeID,
			e.FullName,
			dateText(e.DateOfBirth),
			text(e.Gender),
			text(e.PhoneNumber),
			text(e.Email),
			dateText(e.HireDate),
			text(e.DepartmentName),
			text(e.PositionName),
			text(e.Status),
		}
		if err := f.SetSheetRow(employeeSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, errors.Wrapf(err, "writing employee %d", e.EmployeeID)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

// SalaryReportXLSX writes the monthly breakdown and the yearly summary of a
// salary report on two sheets.
func SalaryReportXLSX(report entity.YearReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	monthly := fmt.Sprintf("Salaries %d", report.Year)
	if err := f.SetSheetName("Sheet1", monthly); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}
	if err := writeRows(f, monthly, report.MonthlyBreakdown); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return nil, errors.Wrap(err, "adding summary sheet")
	}
	if err := writeRows(f, "Summary", []sqldb.Row{report.YearlySummary}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

// writeRows writes the column names of the first row as headers, then every
// row in column order.
func writeRows(f *excelize.File, sheet string, rows []sqldb.Row) error {
	if len(rows) == 0 || len(rows[0].Columns()) == 0 {
		return nil
	}

	columns := rows[0].Columns()
	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.Wrapf(err, "writing %s headers", sheet)
	}

	for i, r := range rows {
		values := make([]interface{}, len(columns))
		for j, c := range columns {
			values[j] = r.Get(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "writing %s row %d", sheet, i+2)
		}
	}

	return nil
}

package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrpayroll/backend/internal/entity"
)

func TestEmployeesXLSX(t *testing.T) {
	dept := "Engineering"
	b, err := EmployeesXLSX([]entity.Employee{
		{EmployeeID: 1, FullName: "Ann", DepartmentName: &dept},
		{EmployeeID: 2, FullName: "Bob"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(employeeSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "Ann", rows[1][1])
	assert.Equal(t, "Engineering", rows[1][7])
	assert.Equal(t, "2", rows[2][0])
}

func TestEmployeeQR(t *testing.T) {
	b, err := EmployeeQR(entity.Employee{EmployeeID: 7, FullName: "Ann"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestFinancialPDF(t *testing.T) {
	b, err := FinancialPDF(entity.FinancialReport{Year: 2024, TotalSalary: 10, TotalFinancial: 10})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestSalaryReportXLSXWithoutRows(t *testing.T) {
	b, err := SalaryReportXLSX(entity.YearReport{Year: 2024})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Salaries 2024", "Summary"}, f.GetSheetList())
}

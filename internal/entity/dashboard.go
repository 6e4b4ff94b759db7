package entity

import (
	"github.com/Azure/go-autorest/autorest/date"

	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/pkg/stats"
)

type Overview struct {
	TotalEmployees            int64   `json:"total_employees"`
	TotalDepartments          int64   `json:"total_departments"`
	TotalPositions            int64   `json:"total_positions"`
	ActiveEmployees           int64   `json:"active_employees"`
	CurrentMonth              string  `json:"current_month"`
	CurrentYear               string  `json:"current_year"`
	TotalSalaryCurrentMonth   float64 `json:"total_salary_current_month"`
	TotalWorkdaysCurrentMonth int64   `json:"total_workdays_current_month"`
	TotalDividendsCurrentYear float64 `json:"total_dividends_current_year"`
}

// Comparison measures the current month against the previous one.
type Comparison struct {
	CurrentMonth         string           `json:"current_month"`
	PreviousMonth        string           `json:"previous_month"`
	TotalEmployeesChange stats.Comparison `json:"total_employees_change"`
	TotalWorkdaysChange  stats.Comparison `json:"total_workdays_change"`
	TotalSalaryChange    stats.Comparison `json:"total_salary_change"`
}

type NewHire struct {
	EmployeeID     int64      `json:"EmployeeID"`
	FullName       string     `json:"FullName"`
	HireDate       *date.Date `json:"HireDate"`
	DepartmentName *string    `json:"DepartmentName"`
	PositionName   *string    `json:"PositionName"`
}

type DepartmentHeadcount struct {
	DepartmentID   int64  `json:"DepartmentID"`
	DepartmentName string `json:"DepartmentName"`
	EmployeeCount  int64  `json:"employee_count"`
}

// TrendPoint is the value of one YYYY-MM month.
type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type Trends struct {
	Months        int          `json:"months"`
	EmployeeTrend []TrendPoint `json:"employee_trend"`
	SalaryTrend   []TrendPoint `json:"salary_trend"`
	WorkdaysTrend []TrendPoint `json:"workdays_trend"`
}

// DebugData shows what the month columns actually hold.
type DebugData struct {
	Vendor            string      `json:"vendor"`
	SalarySamples     []sqldb.Row `json:"salary_samples"`
	AttendanceSamples []sqldb.Row `json:"attendance_samples"`
}

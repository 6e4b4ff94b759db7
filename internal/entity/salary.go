package entity

import "time"

// Salary is one month of pay. NetSalary is BaseSalary + Bonus - Deductions.
type Salary struct {
	SalaryID     int64      `json:"SalaryID"`
	EmployeeID   int64      `json:"EmployeeID"`
	EmployeeName *string    `json:"EmployeeName,omitempty"`
	SalaryMonth  string     `json:"SalaryMonth"`
	BaseSalary   float64    `json:"BaseSalary"`
	Bonus        float64    `json:"Bonus"`
	Deductions   float64    `json:"Deductions"`
	NetSalary    float64    `json:"NetSalary"`
	CreatedAt    *time.Time `json:"CreatedAt"`
}

// SalaryTotals are the sums over a set of salary rows.
type SalaryTotals struct {
	TotalRecords     int64   `json:"total_records"`
	TotalBaseSalary  float64 `json:"total_base_salary"`
	TotalBonus       float64 `json:"total_bonus"`
	TotalDeductions  float64 `json:"total_deductions"`
	TotalAmount      float64 `json:"total_amount"`
	TotalGrossSalary float64 `json:"total_gross_salary"`
}

// SalaryMonthTotals are the sums of one month within a year.
type SalaryMonthTotals struct {
	Month            string  `json:"month"`
	EmployeeCount    int64   `json:"employee_count"`
	TotalGrossSalary float64 `json:"total_gross_salary"`
	TotalNetSalary   float64 `json:"total_net_salary"`
	TotalBaseSalary  float64 `json:"total_base_salary"`
	TotalBonus       float64 `json:"total_bonus"`
	TotalDeductions  float64 `json:"total_deductions"`
}

// SalaryStatistics answers /salaries/statistics. Month statistics leave
// MonthlyData and TotalGrossSalary out.
type SalaryStatistics struct {
	Year             *int                `json:"year"`
	Month            *string             `json:"month"`
	MonthlyData      []SalaryMonthTotals `json:"monthly_data,omitempty"`
	TotalRecords     int64               `json:"total_records"`
	TotalBaseSalary  float64             `json:"total_base_salary"`
	TotalBonus       float64             `json:"total_bonus"`
	TotalDeductions  float64             `json:"total_deductions"`
	TotalAmount      float64             `json:"total_amount"`
	TotalGrossSalary *float64            `json:"total_gross_salary,omitempty"`
}

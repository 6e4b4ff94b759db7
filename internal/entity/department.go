package entity

type Department struct {
	DepartmentID   int64  `json:"DepartmentID"`
	DepartmentName string `json:"DepartmentName"`
}

// DepartmentStatistic is the head count of one department.
type DepartmentStatistic struct {
	DepartmentID    int64   `json:"DepartmentID"`
	DepartmentName  string  `json:"DepartmentName"`
	EmployeeCount   int64   `json:"employee_count"`
	ActiveEmployees int64   `json:"active_employees"`
	Percentage      float64 `json:"percentage"`
}

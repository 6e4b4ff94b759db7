package entity

type Position struct {
	PositionID   int64  `json:"PositionID"`
	PositionName string `json:"PositionName"`
}

// PositionStatistic is the head count of one position.
type PositionStatistic struct {
	PositionID      int64   `json:"PositionID"`
	PositionName    string  `json:"PositionName"`
	EmployeeCount   int64   `json:"employee_count"`
	ActiveEmployees int64   `json:"active_employees"`
	Percentage      float64 `json:"percentage"`
}

package entity

import "time"

// Attendance is one employee's timesheet for a month. TotalDaysInMonth is
// derived from AttendanceMonth.
type Attendance struct {
	AttendanceID     int64      `json:"AttendanceID"`
	EmployeeID       int64      `json:"EmployeeID"`
	FullName         *string    `json:"FullName,omitempty"`
	AttendanceMonth  string     `json:"AttendanceMonth"`
	WorkDays         int64      `json:"WorkDays"`
	AbsentDays       int64      `json:"AbsentDays"`
	LeaveDays        int64      `json:"LeaveDays"`
	CreatedAt        *time.Time `json:"CreatedAt"`
	TotalDaysInMonth int        `json:"TotalDaysInMonth"`
}

type AttendanceStatistics struct {
	TotalRecords    int64  `json:"total_records"`
	TotalWorkDays   int64  `json:"total_work_days"`
	TotalAbsentDays int64  `json:"total_absent_days"`
	TotalLeaveDays  int64  `json:"total_leave_days"`
	AttendanceRate  string `json:"attendance_rate"`
}

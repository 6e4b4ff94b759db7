package attendance

import (
	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/coerce"
)

type Filter struct {
	EmployeeID *int64
	Month      *string
	Year       *int
	Page       *int
	Size       *int
}

type CreateRequest struct {
	EmployeeID      *coerce.Int `json:"EmployeeID"`
	AttendanceMonth *string     `json:"AttendanceMonth"`
	WorkDays        *coerce.Int `json:"WorkDays"`
	AbsentDays      *coerce.Int `json:"AbsentDays"`
	LeaveDays       *coerce.Int `json:"LeaveDays"`
}

// UpdateRequest keeps the stored value of every absent field.
type UpdateRequest struct {
	WorkDays   *coerce.Int `json:"WorkDays"`
	AbsentDays *coerce.Int `json:"AbsentDays"`
	LeaveDays  *coerce.Int `json:"LeaveDays"`
}

// WriteResponse is the stored timesheet with a confirmation.
type WriteResponse struct {
	entity.Attendance
	Message string `json:"message"`
}

type DeleteResponse struct {
	Message       string            `json:"message"`
	DeletedRecord entity.Attendance `json:"deleted_record"`
}

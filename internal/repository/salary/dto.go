package salary

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

type GenerateRequest struct {
	EmployeeID  *coerce.Int   `json:"EmployeeID"`
	SalaryMonth string        `json:"SalaryMonth"`
	BaseSalary  *coerce.Float `json:"BaseSalary"`
	Bonus       *coerce.Float `json:"Bonus"`
	Deductions  *coerce.Float `json:"Deductions"`
}

// UpdateRequest may only change the bonus and the deductions.
type UpdateRequest struct {
	Bonus      *coerce.Float `json:"Bonus"`
	Deductions *coerce.Float `json:"Deductions"`
}

type DeleteResponse struct {
	Message       string        `json:"message"`
	DeletedRecord entity.Salary `json:"deleted_record"`
}

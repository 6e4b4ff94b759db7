package employee

import (
	"github.com/Azure/go-autorest/autorest/date"

	"hrpayroll/backend/internal/pkg/coerce"
)

type Filter struct {
	DepartmentID *int64
	PositionID   *int64
	Status       *string
	Keyword      *string
	Page         *int
	Size         *int
}

type CreateRequest struct {
	FullName     string      `json:"FullName"`
	DateOfBirth  *date.Date  `json:"DateOfBirth"`
	Gender       *string     `json:"Gender"`
	PhoneNumber  *string     `json:"PhoneNumber"`
	Email        *string     `json:"Email"`
	HireDate     *date.Date  `json:"HireDate"`
	DepartmentID *coerce.Int `json:"DepartmentID"`
	PositionID   *coerce.Int `json:"PositionID"`
	Status       *string     `json:"Status"`
}

// UpdateRequest changes only the fields that are present. An explicit null
// DepartmentID or PositionID clears the reference.
type UpdateRequest struct {
	FullName     *string        `json:"FullName"`
	DateOfBirth  *date.Date     `json:"DateOfBirth"`
	Gender       *string        `json:"Gender"`
	PhoneNumber  *string        `json:"PhoneNumber"`
	Email        *string        `json:"Email"`
	HireDate     *date.Date     `json:"HireDate"`
	DepartmentID coerce.NullInt `json:"DepartmentID"`
	PositionID   coerce.NullInt `json:"PositionID"`
	Status       *string        `json:"Status"`
}

type DeleteResponse struct {
	EmployeeID int64  `json:"EmployeeID"`
	Message    string `json:"message"`
}

package dividend

import (
	"github.com/Azure/go-autorest/autorest/date"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/pkg/coerce"
)

type Filter struct {
	EmployeeID *int64
	Page       *int
	Size       *int
}

type CreateRequest struct {
	EmployeeID     *coerce.Int   `json:"EmployeeID"`
	DividendAmount *coerce.Float `json:"DividendAmount"`
	DividendDate   *date.Date    `json:"DividendDate"`
}

// UpdateRequest keeps the stored value of every absent field.
type UpdateRequest struct {
	EmployeeID     *coerce.Int   `json:"EmployeeID"`
	DividendAmount *coerce.Float `json:"DividendAmount"`
	DividendDate   *date.Date    `json:"DividendDate"`
}

type WriteResponse struct {
	entity.Dividend
	Message string `json:"message"`
}

type DeleteResponse struct {
	Message       string          `json:"message"`
	DeletedRecord entity.Dividend `json:"deleted_record"`
}

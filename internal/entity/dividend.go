package entity

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Dividend struct {
	DividendID     int64      `json:"DividendID"`
	EmployeeID     *int64     `json:"EmployeeID"`
	DividendAmount float64    `json:"DividendAmount"`
	DividendDate   *date.Date `json:"DividendDate"`
	CreatedAt      *time.Time `json:"CreatedAt"`
}

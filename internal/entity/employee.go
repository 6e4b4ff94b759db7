package entity

import (
	"github.com/Azure/go-autorest/autorest/date"
)

// Employee is the primary backend's employee row joined with its department
// and position names. The secondary backend keeps FullName, HireDate,
// DepartmentID, PositionID and Status.
type Employee struct {
	EmployeeID     int64      `json:"EmployeeID"`
	FullName       string     `json:"FullName"`
	DateOfBirth    *date.Date `json:"DateOfBirth"`
	Gender         *string    `json:"Gender"`
	PhoneNumber    *string    `json:"PhoneNumber"`
	Email          *string    `json:"Email"`
	HireDate       *date.Date `json:"HireDate"`
	DepartmentID   *int64     `json:"DepartmentID"`
	DepartmentName *string    `json:"DepartmentName"`
	PositionID     *int64     `json:"PositionID"`
	PositionName   *string    `json:"PositionName"`
	Status         *string    `json:"Status"`
}

// EmployeePage is one page of the employee list.
type EmployeePage struct {
	TotalRecords int        `json:"total_records"`
	Page         int        `json:"page"`
	Size         int        `json:"size"`
	Employees    []Employee `json:"employees"`
}

package service

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"hrpayroll/backend/internal/entity"
)

const (
	PNGContentType = "image/png"

	qrSize = 256
)

// EmployeeQR encodes an employee card as a PNG QR code.
func EmployeeQR(e entity.Employee) ([]byte, error) {
	content := fmt.Sprintf("EmployeeID:%d\nFullName:%s", e.EmployeeID, e.FullName)
	if e.DepartmentName != nil {
		content += "\nDepartment:" + *e.DepartmentName
	}
	if e.PositionName != nil {
		content += "\nPosition:" + *e.PositionName
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding qr code of employee %d", e.EmployeeID)
	}
	return png, nil
}

package employee

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/employee"
)

type Employee interface {
	GetList(ctx context.Context, filter employee.Filter) (entity.EmployeePage, error)
	All(ctx context.Context, filter employee.Filter) ([]entity.Employee, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Employee, error)
	Create(ctx context.Context, request employee.CreateRequest) (*entity.Employee, error)
	Update(ctx context.Context, id int64, request employee.UpdateRequest) (*entity.Employee, error)
	Delete(ctx context.Context, id int64) (employee.DeleteResponse, error)
}

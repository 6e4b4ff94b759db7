package department

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/department"
)

type Department interface {
	GetList(ctx context.Context, filter department.Filter) ([]entity.Department, int, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Department, error)
	Create(ctx context.Context, request department.CreateRequest) (*entity.Department, error)
	Update(ctx context.Context, id int64, request department.UpdateRequest) (*entity.Department, error)
	Delete(ctx context.Context, id int64) (department.DeleteResponse, error)
	Statistics(ctx context.Context) ([]entity.DepartmentStatistic, error)
}

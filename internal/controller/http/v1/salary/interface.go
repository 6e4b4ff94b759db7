package salary

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/salary"
)

type Salary interface {
	GetList(ctx context.Context, filter salary.Filter) ([]entity.Salary, int, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Salary, error)
	My(ctx context.Context, employeeID int64) ([]entity.Salary, error)
	Generate(ctx context.Context, request salary.GenerateRequest) (*entity.Salary, error)
	Update(ctx context.Context, id int64, request salary.UpdateRequest) (*entity.Salary, error)
	Delete(ctx context.Context, id int64) (salary.DeleteResponse, error)
	Statistics(ctx context.Context, month *string, year *int) (entity.SalaryStatistics, error)
}

package dashboard

import (
	"context"

	"hrpayroll/backend/internal/entity"
)

type Dashboard interface {
	Overview(ctx context.Context) (entity.Overview, error)
	Comparison(ctx context.Context) (entity.Comparison, error)
	TopEmployees(ctx context.Context, limit int) ([]entity.NewHire, error)
	TopDepartments(ctx context.Context, limit int) ([]entity.DepartmentHeadcount, error)
	Trends(ctx context.Context, months int) (entity.Trends, error)
	DebugData(ctx context.Context) (entity.DebugData, error)
}

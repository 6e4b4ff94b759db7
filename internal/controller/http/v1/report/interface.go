package report

import (
	"context"

	"hrpayroll/backend/internal/entity"
)

type Report interface {
	Salary(ctx context.Context, year int) (entity.YearReport, error)
	Attendance(ctx context.Context, year int) (entity.YearReport, error)
	Financial(ctx context.Context, year int) (entity.FinancialReport, error)
}

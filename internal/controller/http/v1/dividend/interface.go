package dividend

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/dividend"
)

type Dividend interface {
	GetList(ctx context.Context, filter dividend.Filter) ([]entity.Dividend, int, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Dividend, error)
	Create(ctx context.Context, request dividend.CreateRequest) (dividend.WriteResponse, error)
	Update(ctx context.Context, id int64, request dividend.UpdateRequest) (dividend.WriteResponse, error)
	Delete(ctx context.Context, id int64) (dividend.DeleteResponse, error)
}

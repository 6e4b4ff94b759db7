package position

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/position"
)

type Position interface {
	GetList(ctx context.Context, filter position.Filter) ([]entity.Position, int, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Position, error)
	Create(ctx context.Context, request position.CreateRequest) (*entity.Position, error)
	Update(ctx context.Context, id int64, request position.UpdateRequest) (*entity.Position, error)
	Delete(ctx context.Context, id int64) (position.DeleteResponse, error)
	Statistics(ctx context.Context) ([]entity.PositionStatistic, error)
}

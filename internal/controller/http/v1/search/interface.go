package search

import (
	"context"

	"hrpayroll/backend/internal/entity"
)

type Search interface {
	All(ctx context.Context, keyword string) (entity.SearchResult, error)
}

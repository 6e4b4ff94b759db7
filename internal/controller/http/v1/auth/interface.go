package auth

import (
	"context"

	"hrpayroll/backend/internal/service/auth"
)

type Auth interface {
	Health(ctx context.Context, traceID string) (auth.Result, error)
}

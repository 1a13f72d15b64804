package broker

import (
	"context"

	"github.com/google/uuid"

	"tv-gateway/internal/exchange"
	"tv-gateway/internal/types"
)

// Gateway is the narrow seam to the brokerage. Every call is one blocking
// remote request; failures come back as errors, nothing is retried or cached
// here.
type Gateway interface {
	GetClock(ctx context.Context) (Clock, error)
	GetAccount(ctx context.Context) (Account, error)
	ListActiveAssets(ctx context.Context, ex exchange.Exchange) ([]Asset, error)
	GetAsset(ctx context.Context, symbol string) (Asset, error)
	SubmitMarketOrder(ctx context.Context, symbol string, qty int64, side types.OrderSide) (Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) error
}

package price_history

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Request names the rate and how many changes to return.
type Request struct {
	RateID string
	Limit  int
}

// Query handles the price history query use case.
type Query struct {
	history contracts.PriceHistoryRepository
}

// NewQuery creates a new price history query.
func NewQuery(history contracts.PriceHistoryRepository) *Query {
	return &Query{history: history}
}

// Execute returns the base price changes of a rate, most recent first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.PriceHistoryRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return q.history.GetByRateID(ctx, req.RateID, limit)
}

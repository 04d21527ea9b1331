package best_rate

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
)

// Request names the item and the date to resolve a rate for.
type Request struct {
	ItemType string
	ItemID   string
	Date     domain.Date
}

// Query handles the best rate query use case.
type Query struct {
	resolver *services.RateResolver
}

// NewQuery creates a new best rate query.
func NewQuery(resolver *services.RateResolver) *Query {
	return &Query{resolver: resolver}
}

// Execute returns the winning rate, or nil when no rate applies.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Rate, error) {
	return q.resolver.BestRate(ctx, req.ItemType, req.ItemID, req.Date)
}

package adjust_price

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
)

// Query handles the adjust price query use case.
type Query struct {
	adjuster *services.Adjuster
}

// NewQuery creates a new adjust price query.
func NewQuery(adjuster *services.Adjuster) *Query {
	return &Query{adjuster: adjuster}
}

// Execute applies seasonal and dynamic adjustments to a caller-supplied price.
func (q *Query) Execute(ctx context.Context, req services.AdjustmentRequest) (domain.AdjustedPrice, error) {
	return q.adjuster.Adjust(ctx, req)
}

package pricing_calendar

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
)

// Query handles the pricing calendar query use case.
type Query struct {
	adjuster *services.Adjuster
}

// NewQuery creates a new pricing calendar query.
func NewQuery(adjuster *services.Adjuster) *Query {
	return &Query{adjuster: adjuster}
}

// Execute returns one adjusted price per day of the inclusive range.
func (q *Query) Execute(ctx context.Context, req services.CalendarRequest) ([]domain.AdjustedPrice, error) {
	return q.adjuster.PricingCalendar(ctx, req)
}

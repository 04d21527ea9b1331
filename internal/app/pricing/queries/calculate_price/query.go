package calculate_price

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
)

// Request describes the stay to price. Nights must be at least 1.
type Request struct {
	ItemType string
	ItemID   string
	Date     domain.Date
	Nights   int
}

// Query handles the calculate price query use case.
type Query struct {
	calculator *services.PriceCalculator
}

// NewQuery creates a new calculate price query.
func NewQuery(calculator *services.PriceCalculator) *Query {
	return &Query{calculator: calculator}
}

// Execute prices the stay against the rate catalog.
func (q *Query) Execute(ctx context.Context, req *Request) (domain.PriceBreakdown, error) {
	return q.calculator.CalculatePrice(ctx, req.ItemType, req.ItemID, req.Date, req.Nights)
}

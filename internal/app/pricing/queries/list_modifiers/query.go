package list_modifiers

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// Query handles the list modifiers query use case.
type Query struct {
	rates     contracts.RateRepository
	modifiers contracts.RateModifierRepository
}

// NewQuery creates a new list modifiers query.
func NewQuery(rates contracts.RateRepository, modifiers contracts.RateModifierRepository) *Query {
	return &Query{rates: rates, modifiers: modifiers}
}

// Execute lists the modifiers of a rate in creation order.
// An unknown rate is ErrRateNotFound rather than an empty list.
func (q *Query) Execute(ctx context.Context, rateID string) ([]*domain.RateModifier, error) {
	exists, err := q.rates.Exists(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrRateNotFound
	}
	return q.modifiers.ListByRate(ctx, rateID)
}

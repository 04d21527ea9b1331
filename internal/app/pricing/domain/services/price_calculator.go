package services

import (
	"context"
	"fmt"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// PriceCalculator prices an item stay against the rate catalog.
type PriceCalculator struct {
	resolver *RateResolver
	rates    contracts.RateStore
}

// NewPriceCalculator creates a new PriceCalculator.
func NewPriceCalculator(resolver *RateResolver, rates contracts.RateStore) *PriceCalculator {
	return &PriceCalculator{resolver: resolver, rates: rates}
}

// CalculatePrice prices nights of the item starting on date.
//
// Each modifier contributes independently of the others: percentage modifiers
// take a share of the stay's base price, fixed modifiers add their value per night.
// No matching rate yields a zero breakdown with no applied rate.
func (pc *PriceCalculator) CalculatePrice(ctx context.Context, itemType, itemID string, date domain.Date, nights int) (domain.PriceBreakdown, error) {
	if nights < 1 {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: nights must be at least 1", domain.ErrInvalidStayRange)
	}

	rate, err := pc.resolver.BestRateForStay(ctx, itemType, itemID, date, nights)
	if err != nil {
		return domain.PriceBreakdown{}, err
	}
	if rate == nil {
		return domain.NoRateBreakdown(nights), nil
	}

	modifiers, err := pc.rates.Modifiers(ctx, rate.ID())
	if err != nil {
		return domain.PriceBreakdown{}, fmt.Errorf("failed to load modifiers for rate %s: %w", rate.ID(), err)
	}

	base := rate.BasePrice().MultiplyInt(int64(nights))
	total := base.Copy()
	contributions := make([]domain.ModifierContribution, 0, len(modifiers))
	for _, m := range modifiers {
		amount := m.Contribution(base, nights)
		contributions = append(contributions, domain.ModifierContribution{Name: m.Name(), Amount: amount})
		total = total.Add(amount)
	}

	return domain.PriceBreakdown{
		BasePrice:   base,
		Modifiers:   contributions,
		TotalPrice:  total.NonNegative(),
		Currency:    rate.Currency(),
		Nights:      nights,
		AppliedRate: rate,
	}, nil
}

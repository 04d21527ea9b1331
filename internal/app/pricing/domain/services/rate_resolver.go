package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// RateResolver selects the single best-matching active rate for an item on a date.
type RateResolver struct {
	rates contracts.RateStore
}

// NewRateResolver creates a new RateResolver.
func NewRateResolver(rates contracts.RateStore) *RateResolver {
	return &RateResolver{rates: rates}
}

// BestRate returns the highest-priority active rate matching the item on date.
// A nil rate with a nil error means no rate matched.
func (r *RateResolver) BestRate(ctx context.Context, itemType, itemID string, date domain.Date) (*domain.Rate, error) {
	return r.BestRateForStay(ctx, itemType, itemID, date, 0)
}

// BestRateForStay is BestRate restricted to rates whose stay bounds allow nights.
// nights <= 0 disables the stay check.
func (r *RateResolver) BestRateForStay(ctx context.Context, itemType, itemID string, date domain.Date, nights int) (*domain.Rate, error) {
	itemID = domain.CanonicalItemID(itemID)
	candidates, err := r.rates.ApplicableRates(ctx, domain.NormalizeItemType(itemType), itemID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicable rates: %w", err)
	}

	// Stable, so same-priority rates keep the store's created_at ordering.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority() > candidates[j].Priority()
	})

	for _, rate := range candidates {
		if !rate.AppliesTo(itemType, itemID, date) {
			continue
		}
		if nights > 0 && !rate.AllowsStay(nights) {
			continue
		}
		return rate, nil
	}
	return nil, nil
}

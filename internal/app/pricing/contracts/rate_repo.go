package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// RateRepository defines the interface for rate persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type RateRepository interface {
	// InsertMut creates a mutation for inserting a new rate
	InsertMut(rate *domain.Rate) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a rate (only dirty fields).
	// Returns nil when nothing changed.
	UpdateMut(rate *domain.Rate) (*spanner.Mutation, error)

	// GetByID retrieves a rate by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, rateID string) (*domain.Rate, error)

	// Exists checks if a rate exists
	Exists(ctx context.Context, rateID string) (bool, error)
}

// RateStore is the read side of the catalog used by the resolver and calculator.
type RateStore interface {
	// ApplicableRates returns active rates for the item whose date window contains date,
	// ordered by priority descending, then created_at ascending, then id.
	// Weekday masks are left for the caller to check.
	ApplicableRates(ctx context.Context, itemType, itemID string, date domain.Date) ([]*domain.Rate, error)

	// Modifiers returns the modifiers attached to a rate in creation order.
	Modifiers(ctx context.Context, rateID string) ([]*domain.RateModifier, error)
}

// RateCacheInvalidator drops cached catalog lookups after a catalog write.
type RateCacheInvalidator interface {
	InvalidateRates(ctx context.Context) error
}

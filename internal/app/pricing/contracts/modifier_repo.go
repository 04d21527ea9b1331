package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// RateModifierRepository defines the interface for rate modifier persistence.
type RateModifierRepository interface {
	InsertMut(modifier *domain.RateModifier) *spanner.Mutation
	DeleteMut(rateID, modifierID string) *spanner.Mutation

	// GetByID returns ErrModifierNotFound when the modifier does not belong to the rate.
	GetByID(ctx context.Context, rateID, modifierID string) (*domain.RateModifier, error)
	ListByRate(ctx context.Context, rateID string) ([]*domain.RateModifier, error)
}

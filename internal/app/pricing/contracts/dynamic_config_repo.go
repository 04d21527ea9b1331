package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// DynamicConfigRepository defines the interface for dynamic pricing config persistence.
type DynamicConfigRepository interface {
	DynamicConfigStore

	// ReplaceMut creates a mutation that overwrites the config of cfg.Domain.
	ReplaceMut(cfg domain.DynamicPricingConfig) *spanner.Mutation
}

// DynamicConfigStore is the read side used by the adjuster.
type DynamicConfigStore interface {
	// Get returns ErrDynamicConfigNotFound when the domain has no config.
	Get(ctx context.Context, pricingDomain string) (domain.DynamicPricingConfig, error)
}

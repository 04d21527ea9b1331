package get_dynamic_config

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// Query handles the get dynamic config query use case.
type Query struct {
	store contracts.DynamicConfigStore
}

// NewQuery creates a new get dynamic config query.
func NewQuery(store contracts.DynamicConfigStore) *Query {
	return &Query{store: store}
}

// Execute returns the stored config of the domain. Unlike the adjuster it does not
// fall back to the default domain, so callers can tell stored and inherited configs apart.
func (q *Query) Execute(ctx context.Context, pricingDomain string) (domain.DynamicPricingConfig, error) {
	return q.store.Get(ctx, domain.NormalizePricingDomain(pricingDomain))
}

package list_seasonal_rules

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// Request filters the listing.
type Request struct {
	ActiveOnly bool
}

// Query handles the list seasonal rules query use case.
type Query struct {
	repo contracts.SeasonalRuleRepository
}

// NewQuery creates a new list seasonal rules query.
func NewQuery(repo contracts.SeasonalRuleRepository) *Query {
	return &Query{repo: repo}
}

// Execute lists seasonal rules, highest priority first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.SeasonalRule, error) {
	return q.repo.List(ctx, req.ActiveOnly)
}

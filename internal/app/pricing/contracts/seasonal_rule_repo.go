package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// SeasonalRuleRepository defines the interface for seasonal rule persistence.
type SeasonalRuleRepository interface {
	// SaveMut creates an insert-or-update mutation for the rule.
	SaveMut(rule *domain.SeasonalRule) *spanner.Mutation
	DeleteMut(ruleID string) *spanner.Mutation

	GetByID(ctx context.Context, ruleID string) (*domain.SeasonalRule, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.SeasonalRule, error)
}

// SeasonalRuleStore is the read side used by the adjuster.
type SeasonalRuleStore interface {
	// ActiveRules returns active rules applicable to the category on any date,
	// ordered by priority descending.
	ActiveRules(ctx context.Context, category string) ([]*domain.SeasonalRule, error)

	// ActiveRulesFor narrows ActiveRules to the rules whose window contains date.
	ActiveRulesFor(ctx context.Context, category string, date domain.Date) ([]*domain.SeasonalRule, error)
}

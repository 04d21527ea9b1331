package save_seasonal_rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
)

// Request creates a rule when RuleID is empty and replaces the existing rule otherwise.
type Request struct {
	RuleID string
	domain.SeasonalRuleParams
}

// Interactor handles the save seasonal rule use case.
type Interactor struct {
	repo       contracts.SeasonalRuleRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new save seasonal rule interactor.
func NewInteractor(
	repo contracts.SeasonalRuleRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute validates and stores the rule, returning its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	now := i.clock.Now()

	var rule *domain.SeasonalRule
	if req.RuleID == "" {
		created, err := domain.NewSeasonalRule(uuid.New().String(), req.SeasonalRuleParams, now)
		if err != nil {
			return "", err
		}
		rule = created
	} else {
		existing, err := i.repo.GetByID(ctx, req.RuleID)
		if err != nil {
			return "", err
		}
		if err := existing.Replace(req.SeasonalRuleParams, now); err != nil {
			return "", err
		}
		rule = existing
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.SaveMut(rule))

	eventMuts, err := i.outboxRepo.EventMuts([]domain.DomainEvent{rule.SavedEvent()})
	if err != nil {
		return "", err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rule.ID(), nil
}

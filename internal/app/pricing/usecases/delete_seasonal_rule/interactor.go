package delete_seasonal_rule

import (
	"context"
	"fmt"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
)

// Request names the rule to delete.
type Request struct {
	RuleID string
}

// Interactor handles the delete seasonal rule use case.
type Interactor struct {
	repo       contracts.SeasonalRuleRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new delete seasonal rule interactor.
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

// Execute removes the rule. Seasonal rules have no history to keep, so this is a hard delete.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	rule, err := i.repo.GetByID(ctx, req.RuleID)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(rule.ID()))

	eventMuts, err := i.outboxRepo.EventMuts([]domain.DomainEvent{
		&domain.SeasonalRuleDeletedEvent{RuleID: rule.ID(), DeletedAt: i.clock.Now()},
	})
	if err != nil {
		return err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

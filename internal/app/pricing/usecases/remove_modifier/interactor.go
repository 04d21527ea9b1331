package remove_modifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// Request names the modifier to detach.
type Request struct {
	RateID     string
	ModifierID string
}

// Interactor handles the remove modifier use case.
type Interactor struct {
	rates       contracts.RateRepository
	modifiers   contracts.RateModifierRepository
	outboxRepo  contracts.OutboxRepository
	invalidator contracts.RateCacheInvalidator
	committer   *committer.Committer
	clock       clock.Clock
}

// NewInteractor creates a new remove modifier interactor.
func NewInteractor(
	rates contracts.RateRepository,
	modifiers contracts.RateModifierRepository,
	outboxRepo contracts.OutboxRepository,
	invalidator contracts.RateCacheInvalidator,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		rates:       rates,
		modifiers:   modifiers,
		outboxRepo:  outboxRepo,
		invalidator: invalidator,
		committer:   committer,
		clock:       clock,
	}
}

// Execute deletes the modifier. It fails with ErrModifierNotFound when the
// modifier does not belong to the rate.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	rate, err := i.rates.GetByID(ctx, req.RateID)
	if err != nil {
		return err
	}
	if _, err := i.modifiers.GetByID(ctx, req.RateID, req.ModifierID); err != nil {
		return err
	}

	rate.RecordModifierRemoved(req.ModifierID, i.clock.Now())

	plan := committer.NewPlan()
	plan.Add(i.modifiers.DeleteMut(req.RateID, req.ModifierID))

	eventMuts, err := i.outboxRepo.EventMuts(rate.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	rate.ClearEvents()

	if err := i.invalidator.InvalidateRates(ctx); err != nil {
		logging.FromContext(ctx, nil).Warn("rate cache invalidation failed", zap.String("rate_id", rate.ID()), zap.Error(err))
	}
	return nil
}

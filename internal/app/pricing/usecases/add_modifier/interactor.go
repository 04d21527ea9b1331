package add_modifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// Request contains the modifier to attach to a rate.
type Request struct {
	RateID string
	domain.ModifierParams
}

// Interactor handles the add modifier use case.
type Interactor struct {
	rates       contracts.RateRepository
	modifiers   contracts.RateModifierRepository
	outboxRepo  contracts.OutboxRepository
	invalidator contracts.RateCacheInvalidator
	committer   *committer.Committer
	clock       clock.Clock
}

// NewInteractor creates a new add modifier interactor.
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

// Execute attaches a new modifier and returns its id. The rate must exist.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	rate, err := i.rates.GetByID(ctx, req.RateID)
	if err != nil {
		return "", err
	}

	modifier, err := domain.NewRateModifier(uuid.New().String(), rate.ID(), req.ModifierParams, i.clock.Now())
	if err != nil {
		return "", err
	}
	rate.RecordModifierAdded(modifier)

	plan := committer.NewPlan()
	plan.Add(i.modifiers.InsertMut(modifier))

	eventMuts, err := i.outboxRepo.EventMuts(rate.DomainEvents())
	if err != nil {
		return "", err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	rate.ClearEvents()

	if err := i.invalidator.InvalidateRates(ctx); err != nil {
		logging.FromContext(ctx, nil).Warn("rate cache invalidation failed", zap.String("rate_id", rate.ID()), zap.Error(err))
	}
	return modifier.ID(), nil
}

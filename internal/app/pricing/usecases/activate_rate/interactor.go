package activate_rate

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// Request contains the rate ID to activate.
type Request struct {
	RateID  string
	Version int64 // For optimistic locking; 0 uses the stored version
}

// Interactor handles the activate rate use case.
type Interactor struct {
	repo        contracts.RateRepository
	outboxRepo  contracts.OutboxRepository
	invalidator contracts.RateCacheInvalidator
	committer   *committer.Committer
	clock       clock.Clock
}

// NewInteractor creates a new activate rate interactor.
func NewInteractor(
	repo contracts.RateRepository,
	outboxRepo contracts.OutboxRepository,
	invalidator contracts.RateCacheInvalidator,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:        repo,
		outboxRepo:  outboxRepo,
		invalidator: invalidator,
		committer:   committer,
		clock:       clock,
	}
}

// Execute activates a rate so that it is considered by the resolver again.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	rate, err := i.repo.GetByID(ctx, req.RateID)
	if err != nil {
		return err
	}

	expected := req.Version
	if expected == 0 {
		expected = rate.Version()
	}

	if err := rate.Activate(i.clock.Now()); err != nil {
		return err
	}

	plan := committer.NewPlan()

	updateMut, err := i.repo.UpdateMut(rate)
	if err != nil {
		return err
	}
	plan.Add(updateMut)

	eventMuts, err := i.outboxRepo.EventMuts(rate.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(eventMuts)

	// Clear events only after successful commit to prevent loss on retry
	if err := i.committer.ApplyWithVersionCheck(ctx, committer.RateVersion(rate.ID(), expected), plan); err != nil {
		return committer.Translate(err, domain.ErrVersionConflict, domain.ErrRateNotFound)
	}
	rate.ClearEvents()

	if err := i.invalidator.InvalidateRates(ctx); err != nil {
		logging.FromContext(ctx, nil).Warn("rate cache invalidation failed", zap.String("rate_id", rate.ID()), zap.Error(err))
	}
	return nil
}

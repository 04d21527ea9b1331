package update_rate

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

// Request contains a partial update of a rate.
type Request struct {
	RateID    string
	Version   int64 // For optimistic locking
	Update    domain.RateUpdate
	ChangedBy string
}

// Interactor handles the update rate use case.
type Interactor struct {
	repo             contracts.RateRepository
	outboxRepo       contracts.OutboxRepository
	priceHistoryRepo contracts.PriceHistoryRepository
	invalidator      contracts.RateCacheInvalidator
	committer        *committer.Committer
	clock            clock.Clock
}

// NewInteractor creates a new update rate interactor.
func NewInteractor(
	repo contracts.RateRepository,
	outboxRepo contracts.OutboxRepository,
	priceHistoryRepo contracts.PriceHistoryRepository,
	invalidator contracts.RateCacheInvalidator,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:             repo,
		outboxRepo:       outboxRepo,
		priceHistoryRepo: priceHistoryRepo,
		invalidator:      invalidator,
		committer:        committer,
		clock:            clock,
	}
}

// Execute merges the update onto the stored rate, re-validates it and commits it
// if the rate still carries req.Version.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.Version <= 0 {
		return fmt.Errorf("%w: version is required", domain.ErrVersionConflict)
	}

	rate, err := i.repo.GetByID(ctx, req.RateID)
	if err != nil {
		return err
	}
	if rate.Version() != req.Version {
		return fmt.Errorf("%w: expected version %d, found %d", domain.ErrVersionConflict, req.Version, rate.Version())
	}

	now := i.clock.Now()
	oldPrice := rate.BasePrice()
	if err := rate.Update(req.Update, now); err != nil {
		return err
	}

	plan := committer.NewPlan()

	updateMut, err := i.repo.UpdateMut(rate)
	if err != nil {
		return err
	}
	plan.Add(updateMut)

	if rate.Changes().Dirty(domain.FieldBasePrice) && !oldPrice.Equals(rate.BasePrice()) {
		historyMut, err := i.priceHistoryRepo.InsertMut(uuid.New().String(), rate.ID(), oldPrice, rate.BasePrice(), req.ChangedBy, now)
		if err != nil {
			return err
		}
		plan.Add(historyMut)
	}

	eventMuts, err := i.outboxRepo.EventMuts(rate.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.ApplyWithVersionCheck(ctx, committer.RateVersion(rate.ID(), req.Version), plan); err != nil {
		return committer.Translate(err, domain.ErrVersionConflict, domain.ErrRateNotFound)
	}
	rate.ClearEvents()

	if err := i.invalidator.InvalidateRates(ctx); err != nil {
		logging.FromContext(ctx, nil).Warn("rate cache invalidation failed", zap.String("rate_id", rate.ID()), zap.Error(err))
	}
	return nil
}

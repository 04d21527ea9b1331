package create_rate

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

// Request contains the data needed to create a rate.
type Request struct {
	domain.RateParams
	CreatedBy string // recorded on the initial price history entry
}

// Interactor handles the create rate use case.
type Interactor struct {
	repo             contracts.RateRepository
	outboxRepo       contracts.OutboxRepository
	priceHistoryRepo contracts.PriceHistoryRepository
	invalidator      contracts.RateCacheInvalidator
	committer        *committer.Committer
	clock            clock.Clock
}

// NewInteractor creates a new create rate interactor.
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

// Execute creates a rate and returns its id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	now := i.clock.Now()
	rateID := uuid.New().String()

	rate, err := domain.NewRate(rateID, req.RateParams, now)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()

	insertMut, err := i.repo.InsertMut(rate)
	if err != nil {
		return "", err
	}
	plan.Add(insertMut)

	historyMut, err := i.priceHistoryRepo.InsertMut(uuid.New().String(), rateID, nil, rate.BasePrice(), req.CreatedBy, now)
	if err != nil {
		return "", err
	}
	plan.Add(historyMut)

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
		logging.FromContext(ctx, nil).Warn("rate cache invalidation failed", zap.String("rate_id", rateID), zap.Error(err))
	}

	return rateID, nil
}

package replace_dynamic_config

import (
	"context"
	"fmt"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
)

// Interactor handles the replace dynamic config use case.
type Interactor struct {
	repo       contracts.DynamicConfigRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new replace dynamic config interactor.
func NewInteractor(
	repo contracts.DynamicConfigRepository,
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

// Execute validates cfg and overwrites the stored config of cfg.Domain.
func (i *Interactor) Execute(ctx context.Context, cfg domain.DynamicPricingConfig) (domain.DynamicPricingConfig, error) {
	cfg = cfg.Copy()
	cfg.Domain = domain.NormalizePricingDomain(cfg.Domain)
	if len(cfg.WeekendDays) == 0 {
		cfg.WeekendDays = append([]domain.DayOfWeek(nil), domain.DefaultWeekendDays...)
	}
	if err := cfg.Validate(); err != nil {
		return domain.DynamicPricingConfig{}, err
	}

	now := i.clock.Now()
	plan := committer.NewPlan()
	plan.Add(i.repo.ReplaceMut(cfg))

	eventMuts, err := i.outboxRepo.EventMuts([]domain.DomainEvent{
		&domain.DynamicConfigReplacedEvent{Domain: cfg.Domain, Enabled: cfg.Enabled, ReplacedAt: now},
	})
	if err != nil {
		return domain.DynamicPricingConfig{}, err
	}
	plan.AddMultiple(eventMuts)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return domain.DynamicPricingConfig{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	cfg.UpdatedAt = now
	return cfg, nil
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_dynamic_config"
)

// DynamicConfigRepo implements DynamicConfigRepository for Spanner.
type DynamicConfigRepo struct {
	client *spanner.Client
	model  *m_dynamic_config.Model
}

// NewDynamicConfigRepo creates a new DynamicConfigRepo.
func NewDynamicConfigRepo(client *spanner.Client) contracts.DynamicConfigRepository {
	return &DynamicConfigRepo{
		client: client,
		model:  m_dynamic_config.NewModel(),
	}
}

// ReplaceMut creates a mutation that overwrites the config of cfg.Domain.
func (r *DynamicConfigRepo) ReplaceMut(cfg domain.DynamicPricingConfig) *spanner.Mutation {
	return r.model.ReplaceMut(&m_dynamic_config.Data{
		PricingDomain:      domain.NormalizePricingDomain(cfg.Domain),
		Enabled:            cfg.Enabled,
		MinOccupancy:       cfg.MinOccupancy,
		MaxOccupancy:       cfg.MaxOccupancy,
		MinMultiplier:      numeric(cfg.MinMultiplier),
		MaxMultiplier:      numeric(cfg.MaxMultiplier),
		AdvanceBookingDays: int64(cfg.AdvanceBookingDays),
		EarlyBirdDiscount:  numeric(cfg.EarlyBirdDiscount),
		LastMinuteDays:     int64(cfg.LastMinuteDays),
		LastMinutePremium:  numeric(cfg.LastMinutePremium),
		WeekendMultiplier:  numeric(cfg.WeekendMultiplier),
		WeekendDays:        dayNames(cfg.WeekendDays),
	})
}

// Get returns ErrDynamicConfigNotFound when the domain has no config.
func (r *DynamicConfigRepo) Get(ctx context.Context, pricingDomain string) (domain.DynamicPricingConfig, error) {
	key := domain.NormalizePricingDomain(pricingDomain)
	row, err := r.client.Single().ReadRow(ctx, m_dynamic_config.TableName, spanner.Key{key}, m_dynamic_config.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.DynamicPricingConfig{}, domain.ErrDynamicConfigNotFound
		}
		return domain.DynamicPricingConfig{}, fmt.Errorf("failed to read dynamic pricing config: %w", err)
	}

	var data m_dynamic_config.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.DynamicPricingConfig{}, fmt.Errorf("failed to parse dynamic pricing config: %w", err)
	}

	return domain.DynamicPricingConfig{
		Domain:             data.PricingDomain,
		Enabled:            data.Enabled,
		MinOccupancy:       data.MinOccupancy,
		MaxOccupancy:       data.MaxOccupancy,
		MinMultiplier:      &data.MinMultiplier,
		MaxMultiplier:      &data.MaxMultiplier,
		AdvanceBookingDays: int(data.AdvanceBookingDays),
		EarlyBirdDiscount:  &data.EarlyBirdDiscount,
		LastMinuteDays:     int(data.LastMinuteDays),
		LastMinutePremium:  &data.LastMinutePremium,
		WeekendMultiplier:  &data.WeekendMultiplier,
		WeekendDays:        parseDays(data.WeekendDays),
		UpdatedAt:          data.UpdatedAt,
	}, nil
}

package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupancyConfig() DynamicPricingConfig {
	cfg := DefaultDynamicConfig("chalet")
	cfg.Enabled = true
	cfg.MinOccupancy = 30
	cfg.MaxOccupancy = 80
	cfg.MinMultiplier = big.NewRat(9, 10)
	cfg.MaxMultiplier = big.NewRat(15, 10)
	return cfg
}

func TestDynamicPricingConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultDynamicConfig("").Validate())
	require.NoError(t, occupancyConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(c *DynamicPricingConfig)
		wantErr error
	}{
		{"occupancy above 100", func(c *DynamicPricingConfig) { c.MaxOccupancy = 120 }, ErrInvalidDynamicConfig},
		{"min occupancy above max", func(c *DynamicPricingConfig) { c.MinOccupancy = 90 }, ErrInvalidDynamicConfig},
		{"multiplier out of range", func(c *DynamicPricingConfig) { c.MaxMultiplier = big.NewRat(4, 1) }, ErrInvalidMultiplier},
		{"min multiplier above max", func(c *DynamicPricingConfig) { c.MinMultiplier = big.NewRat(2, 1) }, ErrInvalidDynamicConfig},
		{"early bird above one", func(c *DynamicPricingConfig) { c.EarlyBirdDiscount = big.NewRat(3, 2) }, ErrInvalidDynamicConfig},
		{"negative window", func(c *DynamicPricingConfig) { c.LastMinuteDays = -1 }, ErrInvalidDynamicConfig},
		{"overlapping booking windows", func(c *DynamicPricingConfig) {
			c.AdvanceBookingDays = 7
			c.LastMinuteDays = 7
		}, ErrInvalidDynamicConfig},
		{"weekend multiplier out of range", func(c *DynamicPricingConfig) { c.WeekendMultiplier = big.NewRat(0, 1) }, ErrInvalidMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := occupancyConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestCalculateDynamicPrice(t *testing.T) {
	cfg := occupancyConfig()
	base := MustMoney(100, 1)

	atMin := CalculateDynamicPrice(base, cfg.MinOccupancy, cfg)
	atMax := CalculateDynamicPrice(base, cfg.MaxOccupancy, cfg)
	assert.True(t, atMin.Equals(base.MultiplyByRat(cfg.MinMultiplier)))
	assert.True(t, atMax.Equals(base.MultiplyByRat(cfg.MaxMultiplier)))

	assert.Equal(t, "90.00", CalculateDynamicPrice(base, 10, cfg).String(), "below min clamps to min multiplier")
	assert.Equal(t, "150.00", CalculateDynamicPrice(base, 100, cfg).String(), "above max clamps to max multiplier")

	for _, occ := range []float64{30.5, 42, 55, 79.9} {
		p := CalculateDynamicPrice(base, occ, cfg)
		assert.True(t, p.GreaterThan(atMin), "occupancy %.1f", occ)
		assert.True(t, p.LessThan(atMax), "occupancy %.1f", occ)
	}

	// midpoint interpolates linearly: 0.9 + 0.5 * 0.6 = 1.2
	assert.Equal(t, "120.00", CalculateDynamicPrice(base, 55, cfg).String())
}

func TestDefaultDynamicConfig_IsNeutral(t *testing.T) {
	cfg := DefaultDynamicConfig("  ")
	assert.Equal(t, DefaultPricingDomain, cfg.Domain)
	assert.Equal(t, "100.00", CalculateDynamicPrice(MustMoney(100, 1), 65, cfg).String())
}

package services

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
)

func newModifier(t *testing.T, id, rateID, kind string, value int64) *domain.RateModifier {
	t.Helper()
	m, err := domain.NewRateModifier(id, rateID, domain.ModifierParams{
		Name:  "mod " + id,
		Type:  kind,
		Value: big.NewRat(value, 1),
	}, created)
	require.NoError(t, err)
	return m
}

func newCalculator(catalog *memory.RateCatalog) *PriceCalculator {
	return NewPriceCalculator(NewRateResolver(catalog), catalog)
}

func TestPriceCalculator_CalculatePrice(t *testing.T) {
	ctx := context.Background()
	date := domain.NewDate(2026, time.July, 3)

	t.Run("modifiers apply to the base independently", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "std", 100, 5, nil))
		catalog.PutModifier(newModifier(t, "m1", "std", "percentage", 20))
		catalog.PutModifier(newModifier(t, "m2", "std", "fixed", 30))

		b, err := newCalculator(catalog).CalculatePrice(ctx, "chalet", chaletID, date, 1)
		require.NoError(t, err)
		require.True(t, b.HasRate())
		assert.Equal(t, "100.00", b.BasePrice.String())
		assert.Equal(t, "150.00", b.TotalPrice.String(), "compounding would give 156.00")
		require.Len(t, b.Modifiers, 2)
		assert.Equal(t, "20.00", b.Modifiers[0].Amount.String())
		assert.Equal(t, "30.00", b.Modifiers[1].Amount.String())
		assert.Equal(t, domain.Currency("USD"), b.Currency)
	})

	t.Run("multi night stay", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "std", 100, 5, nil))
		catalog.PutModifier(newModifier(t, "m1", "std", "percentage", 20))
		catalog.PutModifier(newModifier(t, "m2", "std", "fixed", 30))

		b, err := newCalculator(catalog).CalculatePrice(ctx, "chalet", chaletID, date, 3)
		require.NoError(t, err)
		assert.Equal(t, "300.00", b.BasePrice.String())
		assert.Equal(t, "450.00", b.TotalPrice.String())
		assert.Equal(t, 3, b.Nights)
	})

	t.Run("total never goes negative", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "std", 100, 5, nil))
		catalog.PutModifier(newModifier(t, "m1", "std", "percentage", -100))
		catalog.PutModifier(newModifier(t, "m2", "std", "fixed", -50))

		b, err := newCalculator(catalog).CalculatePrice(ctx, "chalet", chaletID, date, 1)
		require.NoError(t, err)
		assert.True(t, b.TotalPrice.IsZero())
	})

	t.Run("no rate yields a zero breakdown", func(t *testing.T) {
		b, err := newCalculator(memory.NewRateCatalog()).CalculatePrice(ctx, "chalet", chaletID, date, 2)
		require.NoError(t, err)
		assert.False(t, b.HasRate())
		assert.True(t, b.BasePrice.IsZero())
		assert.True(t, b.TotalPrice.IsZero())
		assert.Empty(t, b.Modifiers)
		assert.Equal(t, 2, b.Nights)
	})

	t.Run("stay must be at least one night", func(t *testing.T) {
		_, err := newCalculator(memory.NewRateCatalog()).CalculatePrice(ctx, "chalet", chaletID, date, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidStayRange)
	})
}

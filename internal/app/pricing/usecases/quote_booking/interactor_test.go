package quote_booking

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

var now = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newInteractor(t *testing.T) *Interactor {
	t.Helper()

	catalog := memory.NewRateCatalog()
	rate, err := domain.NewRate("rate-1", domain.RateParams{
		Name:        "Chalet summer",
		Description: "summer chalet rate",
		RateType:    "seasonal",
		BasePrice:   domain.MustMoney(100, 1),
		Currency:    "USD",
		ItemType:    "chalet",
		Priority:    1,
	}, now)
	require.NoError(t, err)
	catalog.PutRate(rate)

	cleaning, err := domain.NewRateModifier("mod-1", "rate-1", domain.ModifierParams{
		Name:  "cleaning",
		Type:  "fixed",
		Value: big.NewRat(10, 1),
	}, now)
	require.NoError(t, err)
	catalog.PutModifier(cleaning)

	peak, err := domain.NewSeasonalRule("rule-1", domain.SeasonalRuleParams{
		Name:       "peak",
		Start:      "07-01",
		End:        "08-31",
		Multiplier: domain.MustRat("1.5"),
		Priority:   1,
		Active:     true,
	}, now)
	require.NoError(t, err)

	adjuster := services.NewAdjuster(memory.NewSeasonalRules(peak), memory.NewDynamicConfigs(), clock.NewMockClock(now))
	calculator := services.NewPriceCalculator(services.NewRateResolver(catalog), catalog)
	return NewInteractor(calculator, adjuster)
}

func TestQuoteBooking_Execute(t *testing.T) {
	interactor := newInteractor(t)

	t.Run("seasonal adjustment on the stay total", func(t *testing.T) {
		// Wednesday, inside the peak window
		quote, err := interactor.Execute(context.Background(), &Request{
			ItemType: "chalet",
			Arrival:  domain.NewDate(2026, time.July, 8),
			Nights:   2,
		})
		require.NoError(t, err)

		assert.True(t, quote.Breakdown.HasRate())
		assert.Equal(t, "220.00", quote.Breakdown.TotalPrice.String())
		require.Len(t, quote.Adjustment.Adjustments, 1)
		assert.Equal(t, domain.AdjustmentSeasonal, quote.Adjustment.Adjustments[0].Kind)
		assert.Equal(t, "330.00", quote.Total.String())
		assert.Equal(t, domain.Currency("USD"), quote.Currency)
	})

	t.Run("outside any season", func(t *testing.T) {
		quote, err := interactor.Execute(context.Background(), &Request{
			ItemType: "chalet",
			Arrival:  domain.NewDate(2026, time.June, 10),
			Nights:   1,
		})
		require.NoError(t, err)
		assert.Empty(t, quote.Adjustment.Adjustments)
		assert.Equal(t, "110.00", quote.Total.String())
	})

	t.Run("no matching rate quotes zero", func(t *testing.T) {
		quote, err := interactor.Execute(context.Background(), &Request{
			ItemType: "villa",
			Arrival:  domain.NewDate(2026, time.July, 8),
			Nights:   1,
		})
		require.NoError(t, err)
		assert.False(t, quote.Breakdown.HasRate())
		assert.True(t, quote.Total.IsZero())
	})

	t.Run("invalid stay", func(t *testing.T) {
		_, err := interactor.Execute(context.Background(), &Request{
			ItemType: "chalet",
			Arrival:  domain.NewDate(2026, time.July, 8),
			Nights:   0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStayRange)
	})
}

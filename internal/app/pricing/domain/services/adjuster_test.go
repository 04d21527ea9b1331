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
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

var today = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newRule(t *testing.T, id, start, end, multiplier string, priority int, categories ...string) *domain.SeasonalRule {
	t.Helper()
	r, err := domain.NewSeasonalRule(id, domain.SeasonalRuleParams{
		Name:       id,
		Start:      start,
		End:        end,
		Multiplier: domain.MustRat(multiplier),
		Categories: categories,
		Priority:   priority,
		Active:     true,
	}, today)
	require.NoError(t, err)
	return r
}

func resortConfig() domain.DynamicPricingConfig {
	return domain.DynamicPricingConfig{
		Domain:             "resort",
		Enabled:            true,
		MinOccupancy:       30,
		MaxOccupancy:       80,
		MinMultiplier:      domain.MustRat("0.9"),
		MaxMultiplier:      domain.MustRat("1.5"),
		AdvanceBookingDays: 60,
		EarlyBirdDiscount:  domain.MustRat("0.10"),
		LastMinuteDays:     7,
		LastMinutePremium:  domain.MustRat("0.15"),
		WeekendMultiplier:  domain.MustRat("1.2"),
		WeekendDays:        []domain.DayOfWeek{domain.Saturday, domain.Sunday},
	}
}

func newAdjuster(t *testing.T, configs ...domain.DynamicPricingConfig) *Adjuster {
	t.Helper()
	rules := memory.NewSeasonalRules(
		newRule(t, "peak-summer", "07-01", "08-31", "1.5", 10),
		newRule(t, "july-lull", "07-01", "07-15", "0.8", 1),
		newRule(t, "holidays", "12-20", "01-05", "2.0", 5, "chalet"),
	)
	return NewAdjuster(rules, memory.NewDynamicConfigs(configs...), clock.NewMockClock(today))
}

func occupancy(v float64) *float64 { return &v }

func datePtr(d domain.Date) *domain.Date { return &d }

func kinds(p domain.AdjustedPrice) []domain.AdjustmentKind {
	out := make([]domain.AdjustmentKind, 0, len(p.Adjustments))
	for _, a := range p.Adjustments {
		out = append(out, a.Kind)
	}
	return out
}

func TestAdjuster_Adjust(t *testing.T) {
	ctx := context.Background()
	base := domain.MustMoney(100, 1)
	a := newAdjuster(t, resortConfig())

	tests := []struct {
		name      string
		req       AdjustmentRequest
		wantFinal string
		wantKinds []domain.AdjustmentKind
	}{
		{
			name:      "highest priority seasonal rule wins",
			req:       AdjustmentRequest{Domain: "resort", Category: "chalet", Date: domain.NewDate(2026, time.July, 3)},
			wantFinal: "150.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentSeasonal},
		},
		{
			name:      "seasonal and weekend are additive",
			req:       AdjustmentRequest{Domain: "resort", Category: "chalet", Date: domain.NewDate(2026, time.July, 4)},
			wantFinal: "170.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentSeasonal, domain.AdjustmentWeekend},
		},
		{
			name:      "occupancy interpolation and early bird",
			req:       AdjustmentRequest{Domain: "resort", Date: domain.NewDate(2026, time.October, 14), Occupancy: occupancy(55)},
			wantFinal: "110.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentOccupancy, domain.AdjustmentEarlyBird},
		},
		{
			name: "last minute premium",
			req: AdjustmentRequest{
				Domain:      "resort",
				Date:        domain.NewDate(2026, time.October, 14),
				BookingDate: datePtr(domain.NewDate(2026, time.October, 12)),
			},
			wantFinal: "115.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentLastMinute},
		},
		{
			name:      "year-wrapping holiday window for its category only",
			req:       AdjustmentRequest{Domain: "resort", Category: "chalet", Date: domain.NewDate(2027, time.January, 5)},
			wantFinal: "190.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentSeasonal, domain.AdjustmentEarlyBird},
		},
		{
			name:      "holiday window ignores other categories",
			req:       AdjustmentRequest{Domain: "resort", Category: "room", Date: domain.NewDate(2027, time.January, 5)},
			wantFinal: "90.00",
			wantKinds: []domain.AdjustmentKind{domain.AdjustmentEarlyBird},
		},
		{
			name: "booking after arrival skips booking windows",
			req: AdjustmentRequest{
				Domain:      "resort",
				Date:        domain.NewDate(2026, time.October, 14),
				BookingDate: datePtr(domain.NewDate(2026, time.October, 20)),
			},
			wantFinal: "100.00",
			wantKinds: []domain.AdjustmentKind{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.BasePrice = base
			got, err := a.Adjust(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFinal, got.FinalPrice.String())
			assert.Equal(t, tt.wantKinds, kinds(got))
			assert.Equal(t, "100.00", got.BasePrice.String())
		})
	}
}

func TestAdjuster_AdditiveAgainstBase(t *testing.T) {
	// an unvalidated stored config may carry overlapping windows; both then apply
	cfg := resortConfig()
	cfg.AdvanceBookingDays = 1
	a := newAdjuster(t, cfg)

	got, err := a.Adjust(context.Background(), AdjustmentRequest{
		Domain:      "resort",
		Category:    "chalet",
		Date:        domain.NewDate(2026, time.July, 4),
		BookingDate: datePtr(domain.NewDate(2026, time.June, 29)),
		BasePrice:   domain.MustMoney(100, 1),
		Occupancy:   occupancy(80),
	})
	require.NoError(t, err)

	// +50 seasonal, +20 weekend, +50 occupancy, -10 early bird, +15 last minute
	assert.Equal(t, "225.00", got.FinalPrice.String())
	assert.Equal(t, "125.00", got.TotalAdjustment().String())
	assert.Equal(t, 5, got.DaysUntilArrival)
}

func TestAdjuster_SameDayLastMinute(t *testing.T) {
	cfg := resortConfig()
	cfg.LastMinuteDays = 0
	a := newAdjuster(t, cfg)
	wednesday := domain.NewDate(2026, time.October, 14)

	got, err := a.Adjust(context.Background(), AdjustmentRequest{
		Domain:      "resort",
		Date:        wednesday,
		BookingDate: datePtr(wednesday),
		BasePrice:   domain.MustMoney(100, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.AdjustmentKind{domain.AdjustmentLastMinute}, kinds(got))
	assert.Equal(t, "115.00", got.FinalPrice.String())

	got, err = a.Adjust(context.Background(), AdjustmentRequest{
		Domain:      "resort",
		Date:        wednesday,
		BookingDate: datePtr(domain.NewDate(2026, time.October, 13)),
		BasePrice:   domain.MustMoney(100, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, kinds(got))
}

func TestAdjuster_DisabledConfig(t *testing.T) {
	cfg := resortConfig()
	cfg.Enabled = false
	a := newAdjuster(t, cfg)

	got, err := a.Adjust(context.Background(), AdjustmentRequest{
		Domain:    "resort",
		Date:      domain.NewDate(2026, time.October, 17),
		BasePrice: domain.MustMoney(100, 1),
		Occupancy: occupancy(80),
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.AdjustmentKind{domain.AdjustmentWeekend}, kinds(got))
	assert.Equal(t, "120.00", got.FinalPrice.String())
}

func TestAdjuster_ConfigFallback(t *testing.T) {
	ctx := context.Background()
	saturday := domain.NewDate(2026, time.October, 17)

	fallback := domain.DefaultDynamicConfig("")
	fallback.WeekendMultiplier = big.NewRat(13, 10)
	a := newAdjuster(t, fallback)

	got, err := a.Adjust(ctx, AdjustmentRequest{Domain: "spa", Date: saturday, BasePrice: domain.MustMoney(100, 1)})
	require.NoError(t, err)
	assert.Equal(t, "130.00", got.FinalPrice.String())

	neutral := newAdjuster(t)
	got, err = neutral.Adjust(ctx, AdjustmentRequest{Domain: "spa", Date: saturday, BasePrice: domain.MustMoney(100, 1), Occupancy: occupancy(90)})
	require.NoError(t, err)
	assert.Empty(t, got.Adjustments)
	assert.Equal(t, "100.00", got.FinalPrice.String())
}

func TestAdjuster_Validation(t *testing.T) {
	ctx := context.Background()
	a := newAdjuster(t, resortConfig())
	date := domain.NewDate(2026, time.July, 3)

	_, err := a.Adjust(ctx, AdjustmentRequest{Date: date, BasePrice: domain.MustMoney(-1, 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPricingRequest)

	_, err = a.Adjust(ctx, AdjustmentRequest{Date: date})
	assert.ErrorIs(t, err, domain.ErrInvalidPricingRequest)

	_, err = a.Adjust(ctx, AdjustmentRequest{Date: date, BasePrice: domain.MustMoney(100, 1), Occupancy: occupancy(120)})
	assert.ErrorIs(t, err, domain.ErrInvalidOccupancy)
}

func TestAdjuster_PricingCalendar(t *testing.T) {
	ctx := context.Background()
	a := newAdjuster(t, resortConfig())
	base := domain.MustMoney(100, 1)

	t.Run("one entry per day", func(t *testing.T) {
		days, err := a.PricingCalendar(ctx, CalendarRequest{
			Domain:    "resort",
			Category:  "chalet",
			From:      domain.NewDate(2026, time.July, 3),
			To:        domain.NewDate(2026, time.July, 5),
			BasePrice: base,
		})
		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "2026-07-03", days[0].Date.String())
		assert.Equal(t, "150.00", days[0].FinalPrice.String())
		assert.Equal(t, "170.00", days[1].FinalPrice.String())
		assert.Equal(t, "170.00", days[2].FinalPrice.String())
		assert.Equal(t, 34, days[2].DaysUntilArrival)
	})

	t.Run("single day", func(t *testing.T) {
		d := domain.NewDate(2026, time.July, 3)
		days, err := a.PricingCalendar(ctx, CalendarRequest{From: d, To: d, BasePrice: base})
		require.NoError(t, err)
		assert.Len(t, days, 1)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := a.PricingCalendar(ctx, CalendarRequest{
			From:      domain.NewDate(2026, time.July, 5),
			To:        domain.NewDate(2026, time.July, 3),
			BasePrice: base,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("range limit", func(t *testing.T) {
		from := domain.NewDate(2026, time.January, 1)
		days, err := a.PricingCalendar(ctx, CalendarRequest{From: from, To: from.AddDays(MaxCalendarDays - 1), BasePrice: base})
		require.NoError(t, err)
		assert.Len(t, days, MaxCalendarDays)

		_, err = a.PricingCalendar(ctx, CalendarRequest{From: from, To: from.AddDays(MaxCalendarDays), BasePrice: base})
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

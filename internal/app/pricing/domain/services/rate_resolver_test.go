package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
)

const chaletID = "6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f"

var created = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func newRate(t *testing.T, id string, price int64, priority int, mutate func(p *domain.RateParams)) *domain.Rate {
	t.Helper()
	params := domain.RateParams{
		Name:        "Rate " + id,
		Description: "test rate",
		RateType:    "standard",
		BasePrice:   domain.MustMoney(price, 1),
		Currency:    "USD",
		ItemType:    "chalet",
		Priority:    priority,
	}
	if mutate != nil {
		mutate(&params)
	}
	r, err := domain.NewRate(id, params, created)
	require.NoError(t, err)
	return r
}

func TestRateResolver_BestRate(t *testing.T) {
	ctx := context.Background()
	july3 := domain.NewDate(2026, time.July, 3)

	t.Run("higher priority wins", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "low", 100, 5, nil))
		catalog.PutRate(newRate(t, "high", 180, 10, nil))

		rate, err := NewRateResolver(catalog).BestRate(ctx, "Chalet", chaletID, july3)
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.Equal(t, "high", rate.ID())
	})

	t.Run("no matching rate", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "room", 100, 5, func(p *domain.RateParams) { p.ItemType = "room" }))

		rate, err := NewRateResolver(catalog).BestRate(ctx, "chalet", chaletID, july3)
		require.NoError(t, err)
		assert.Nil(t, rate)
	})

	t.Run("inactive and out of window rates are ignored", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		inactive := newRate(t, "inactive", 300, 50, nil)
		require.NoError(t, inactive.Deactivate(created))
		catalog.PutRate(inactive)
		catalog.PutRate(newRate(t, "winter", 250, 40, func(p *domain.RateParams) {
			p.StartDate, p.EndDate = "2026-12-01", "2027-03-31"
		}))
		catalog.PutRate(newRate(t, "weekdays", 220, 30, func(p *domain.RateParams) {
			p.DaysOfWeek = []string{"monday", "tuesday"}
		}))
		catalog.PutRate(newRate(t, "base", 100, 1, nil))

		rate, err := NewRateResolver(catalog).BestRate(ctx, "chalet", chaletID, july3)
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.Equal(t, "base", rate.ID())
	})

	t.Run("item specific rate only matches its item", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "specific", 400, 20, func(p *domain.RateParams) { p.ItemID = chaletID }))
		catalog.PutRate(newRate(t, "generic", 100, 1, nil))
		resolver := NewRateResolver(catalog)

		rate, err := resolver.BestRate(ctx, "chalet", chaletID, july3)
		require.NoError(t, err)
		assert.Equal(t, "specific", rate.ID())

		rate, err = resolver.BestRate(ctx, "chalet", "0d4a3c9e-1111-4a2b-9c3d-5e6f7a8b9c0d", july3)
		require.NoError(t, err)
		assert.Equal(t, "generic", rate.ID())
	})

	t.Run("item id is matched in canonical form", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		catalog.PutRate(newRate(t, "specific", 400, 20, func(p *domain.RateParams) { p.ItemID = chaletID }))
		catalog.PutRate(newRate(t, "generic", 100, 1, nil))
		resolver := NewRateResolver(catalog)

		rate, err := resolver.BestRate(ctx, "chalet", " "+strings.ToUpper(chaletID)+" ", july3)
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.Equal(t, "specific", rate.ID())

		rate, err = resolver.BestRate(ctx, "chalet", "x", july3)
		require.NoError(t, err)
		require.NotNil(t, rate)
		assert.Equal(t, "generic", rate.ID())
	})

	t.Run("equal priority keeps the older rate", func(t *testing.T) {
		catalog := memory.NewRateCatalog()
		older := newRate(t, "z-older", 100, 5, nil)
		newer, err := domain.NewRate("a-newer", domain.RateParams{
			Name: "Newer", Description: "test rate", RateType: "standard",
			BasePrice: domain.MustMoney(90, 1), Currency: "USD", ItemType: "chalet", Priority: 5,
		}, created.Add(time.Hour))
		require.NoError(t, err)
		catalog.PutRate(newer)
		catalog.PutRate(older)

		rate, err := NewRateResolver(catalog).BestRate(ctx, "chalet", chaletID, july3)
		require.NoError(t, err)
		assert.Equal(t, "z-older", rate.ID())
	})
}

func TestRateResolver_BestRateForStay(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewRateCatalog()
	catalog.PutRate(newRate(t, "long-stay", 90, 10, func(p *domain.RateParams) { p.MinStay = intPtr(3) }))
	catalog.PutRate(newRate(t, "short-stay", 120, 5, func(p *domain.RateParams) { p.MaxStay = intPtr(2) }))
	resolver := NewRateResolver(catalog)
	date := domain.NewDate(2026, time.July, 3)

	rate, err := resolver.BestRateForStay(ctx, "chalet", chaletID, date, 2)
	require.NoError(t, err)
	assert.Equal(t, "short-stay", rate.ID())

	rate, err = resolver.BestRateForStay(ctx, "chalet", chaletID, date, 4)
	require.NoError(t, err)
	assert.Equal(t, "long-stay", rate.ID())

	// only the open-ended rate takes a 14 night stay
	rate, err = resolver.BestRateForStay(ctx, "chalet", chaletID, date, 14)
	require.NoError(t, err)
	assert.Equal(t, "long-stay", rate.ID())
}

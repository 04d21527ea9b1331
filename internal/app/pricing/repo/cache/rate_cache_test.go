package cache

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
)

var created = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func chaletRate(t *testing.T) *domain.Rate {
	t.Helper()
	rate, err := domain.NewRate("rate-1", domain.RateParams{
		Name:        "Winter Chalet",
		Description: "Ski season",
		RateType:    "seasonal",
		BasePrice:   domain.MustMoney(247, 20),
		Currency:    "EUR",
		ItemType:    "chalet",
		StartDate:   "2026-12-01",
		EndDate:     "2027-03-31",
		DaysOfWeek:  []string{"friday", "saturday"},
		MinStay:     intPtr(2),
		Priority:    7,
	}, created)
	require.NoError(t, err)
	return rate
}

// unreachable returns a client whose every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRates_EncodeDecode(t *testing.T) {
	rate := chaletRate(t)

	payload, err := encodeRates([]*domain.Rate{rate})
	require.NoError(t, err)

	decoded, err := decodeRates(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got := decoded[0]
	assert.Equal(t, rate.ID(), got.ID())
	assert.True(t, rate.BasePrice().Equals(got.BasePrice()), "price must survive exactly")
	assert.Equal(t, "2026-12-01", got.StartDate().String())
	assert.Equal(t, "2027-03-31", got.EndDate().String())
	assert.Equal(t, []domain.DayOfWeek{domain.Friday, domain.Saturday}, got.DaysOfWeek())
	assert.Equal(t, 2, *got.MinStay())
	assert.Nil(t, got.MaxStay())
	assert.Equal(t, 7, got.Priority())
	assert.Equal(t, rate.Version(), got.Version())
	assert.True(t, got.IsActive())
	assert.Empty(t, got.DomainEvents())
}

func TestModifiers_EncodeDecode(t *testing.T) {
	m, err := domain.NewRateModifier("mod-1", "rate-1", domain.ModifierParams{
		Name:  "Ski pass",
		Type:  "fixed",
		Value: big.NewRat(25, 2),
	}, created)
	require.NoError(t, err)

	payload, err := encodeModifiers([]*domain.RateModifier{m})
	require.NoError(t, err)

	decoded, err := decodeModifiers(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "mod-1", decoded[0].ID())
	assert.Equal(t, domain.ModifierFixed, decoded[0].Type())
	assert.Equal(t, 0, decoded[0].Value().Cmp(big.NewRat(25, 2)))

	_, err = decodeModifiers([]byte(`[{"value":"not-a-number"}]`))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	day := domain.NewDate(2026, time.December, 24)
	assert.Equal(t, "pricing:rates:g3:applicable:chalet:abc:2026-12-24", applicableKey(3, "chalet", "abc", day))
	assert.Equal(t, "pricing:rates:g0:modifiers:rate-1", modifiersKey(0, "rate-1"))
	assert.NotEqual(t, applicableKey(1, "chalet", "", day), applicableKey(2, "chalet", "", day))
}

func TestRateCache_FallsThroughWhenRedisIsDown(t *testing.T) {
	catalog := memory.NewRateCatalog()
	catalog.PutRate(chaletRate(t))

	c := NewRateCache(catalog, unreachable(t), 0, zap.NewNop())
	assert.Equal(t, DefaultTTL, c.ttl)

	rates, err := c.ApplicableRates(context.Background(), "chalet", "", domain.NewDate(2026, time.December, 24))
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "rate-1", rates[0].ID())

	mods, err := c.Modifiers(context.Background(), "rate-1")
	require.NoError(t, err)
	assert.Empty(t, mods)

	assert.Error(t, c.InvalidateRates(context.Background()))
}

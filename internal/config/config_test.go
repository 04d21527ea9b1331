package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.Equal(t, defaultSpannerDatabase, cfg.Spanner.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 3*time.Second, cfg.Pricing.StepTimeout)
	assert.Equal(t, 0, cfg.Pricing.PointsPerDollar.Cmp(big.NewRat(1, 1)))
	assert.Equal(t, 0, cfg.Pricing.PointValue.Cmp(big.NewRat(1, 100)))
	assert.Equal(t, 0, cfg.Pricing.DefaultTaxRate.Sign())
	assert.Equal(t, time.UTC, cfg.Pricing.Location)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"HTTP_PORT":                 "9000",
		"REDIS_ADDR":                "localhost:6379",
		"REDIS_DB":                  "2",
		"RATE_CACHE_TTL":            "30s",
		"DISCOUNT_STEP_TIMEOUT":     "500ms",
		"LOYALTY_POINTS_PER_DOLLAR": "2",
		"DEFAULT_TAX_RATE":          "0.11",
		"RESORT_TIMEZONE":           "Asia/Beirut",
		"LOG_LEVEL":                 "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Pricing.StepTimeout)
	assert.Equal(t, 0, cfg.Pricing.PointsPerDollar.Cmp(big.NewRat(2, 1)))
	assert.Equal(t, 0, cfg.Pricing.DefaultTaxRate.Cmp(big.NewRat(11, 100)))
	assert.Equal(t, "Asia/Beirut", cfg.Pricing.Location.String())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"REDIS_DB":                  "two",
		"RATE_CACHE_TTL":            "soon",
		"DISCOUNT_STEP_TIMEOUT":     "-1s",
		"LOYALTY_POINT_VALUE":       "abc",
		"LOYALTY_POINTS_PER_DOLLAR": "0",
		"DEFAULT_TAX_RATE":          "-0.1",
		"RESORT_TIMEZONE":           "Mars/Olympus",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(map[string]string{key: value}))
			assert.Error(t, err)
		})
	}
}

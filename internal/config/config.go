// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Spanner SpannerConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
}

// SpannerConfig names the database holding the catalog and ledgers.
type SpannerConfig struct {
	Database string
}

// RedisConfig configures the applicable-rate cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PricingConfig tunes the discount pipeline and loyalty accrual.
type PricingConfig struct {
	StepTimeout     time.Duration
	PointsPerDollar *big.Rat
	PointValue      *big.Rat
	DefaultTaxRate  *big.Rat
	// Location is the resort's local time zone. Booking lead times count calendar days in it.
	Location *time.Location
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string
}

const defaultSpannerDatabase = "projects/test-project/instances/dev-instance/databases/resort-pricing-db"

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function, applying defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	r := reader{lookup: lookup}

	cfg := Config{
		Server: ServerConfig{
			HTTPPort:        r.str("HTTP_PORT", "8080"),
			ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Spanner: SpannerConfig{
			Database: r.str("SPANNER_DATABASE", defaultSpannerDatabase),
		},
		Redis: RedisConfig{
			Addr:     r.str("REDIS_ADDR", ""),
			Password: r.str("REDIS_PASSWORD", ""),
			DB:       r.integer("REDIS_DB", 0),
			TTL:      r.duration("RATE_CACHE_TTL", 5*time.Minute),
		},
		Pricing: PricingConfig{
			StepTimeout:     r.duration("DISCOUNT_STEP_TIMEOUT", 3*time.Second),
			PointsPerDollar: r.rat("LOYALTY_POINTS_PER_DOLLAR", "1"),
			PointValue:      r.rat("LOYALTY_POINT_VALUE", "0.01"),
			DefaultTaxRate:  r.rat("DEFAULT_TAX_RATE", "0"),
			Location:        r.location("RESORT_TIMEZONE", "UTC"),
		},
		Log: LogConfig{
			Level: r.str("LOG_LEVEL", "info"),
		},
	}
	if len(r.errs) > 0 {
		return Config{}, errors.Join(r.errs...)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Spanner.Database == "":
		return errors.New("SPANNER_DATABASE must not be empty")
	case c.Redis.TTL <= 0:
		return errors.New("RATE_CACHE_TTL must be positive")
	case c.Pricing.StepTimeout <= 0:
		return errors.New("DISCOUNT_STEP_TIMEOUT must be positive")
	case c.Pricing.PointsPerDollar.Sign() <= 0:
		return errors.New("LOYALTY_POINTS_PER_DOLLAR must be positive")
	case c.Pricing.PointValue.Sign() <= 0:
		return errors.New("LOYALTY_POINT_VALUE must be positive")
	case c.Pricing.DefaultTaxRate.Sign() < 0:
		return errors.New("DEFAULT_TAX_RATE must not be negative")
	}
	return nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) str(key, fallback string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *reader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return v
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return v
}

func (r *reader) rat(key, fallback string) *big.Rat {
	raw := r.str(key, fallback)
	v, ok := new(big.Rat).SetString(raw)
	if !ok {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid decimal %q", key, raw))
		v, _ = new(big.Rat).SetString(fallback)
	}
	return v
}

func (r *reader) location(key, fallback string) *time.Location {
	raw := r.str(key, fallback)
	loc, err := time.LoadLocation(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: unknown time zone %q", key, raw))
		return time.UTC
	}
	return loc
}

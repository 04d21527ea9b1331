// Package cache puts a Redis read-through cache in front of the rate catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

const (
	// DefaultTTL bounds how long a lookup may be served after a write on another instance.
	DefaultTTL = 5 * time.Minute

	keyPrefix = "pricing:rates"
)

// RateCache wraps a RateStore. Keys embed a generation counter so that
// InvalidateRates drops every cached lookup with a single INCR.
// Redis failures are logged and fall through to the wrapped store.
type RateCache struct {
	next   contracts.RateStore
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRateCache creates a RateCache. A non-positive ttl uses DefaultTTL.
func NewRateCache(next contracts.RateStore, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RateCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

var (
	_ contracts.RateStore            = (*RateCache)(nil)
	_ contracts.RateCacheInvalidator = (*RateCache)(nil)
)

// ApplicableRates implements contracts.RateStore.
func (c *RateCache) ApplicableRates(ctx context.Context, itemType, itemID string, date domain.Date) ([]*domain.Rate, error) {
	gen := c.generation(ctx)
	key := applicableKey(gen, domain.NormalizeItemType(itemType), itemID, date)

	if payload, ok := c.get(ctx, key); ok {
		rates, err := decodeRates(payload)
		if err == nil {
			return rates, nil
		}
		c.log(ctx).Warn("discarding undecodable cached rates", zap.String("key", key), zap.Error(err))
	}

	rates, err := c.next.ApplicableRates(ctx, itemType, itemID, date)
	if err != nil {
		return nil, err
	}
	if payload, err := encodeRates(rates); err == nil {
		c.set(ctx, key, payload)
	}
	return rates, nil
}

// Modifiers implements contracts.RateStore.
func (c *RateCache) Modifiers(ctx context.Context, rateID string) ([]*domain.RateModifier, error) {
	gen := c.generation(ctx)
	key := modifiersKey(gen, rateID)

	if payload, ok := c.get(ctx, key); ok {
		modifiers, err := decodeModifiers(payload)
		if err == nil {
			return modifiers, nil
		}
		c.log(ctx).Warn("discarding undecodable cached modifiers", zap.String("key", key), zap.Error(err))
	}

	modifiers, err := c.next.Modifiers(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if payload, err := encodeModifiers(modifiers); err == nil {
		c.set(ctx, key, payload)
	}
	return modifiers, nil
}

// InvalidateRates implements contracts.RateCacheInvalidator.
// Entries of older generations are left to expire with their TTL.
func (c *RateCache) InvalidateRates(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, generationKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate rate cache: %w", err)
	}
	return nil
}

func (c *RateCache) generation(ctx context.Context) int64 {
	gen, err := c.rdb.Get(ctx, generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log(ctx).Warn("rate cache generation unavailable", zap.Error(err))
	}
	return gen
}

func (c *RateCache) get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log(ctx).Warn("rate cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (c *RateCache) set(ctx context.Context, key string, payload []byte) {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log(ctx).Warn("rate cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RateCache) log(ctx context.Context) *zap.Logger {
	return logging.FromContext(ctx, c.logger)
}

func generationKey() string {
	return keyPrefix + ":gen"
}

func applicableKey(gen int64, itemType, itemID string, date domain.Date) string {
	return fmt.Sprintf("%s:g%d:applicable:%s:%s:%s", keyPrefix, gen, itemType, itemID, date)
}

func modifiersKey(gen int64, rateID string) string {
	return fmt.Sprintf("%s:g%d:modifiers:%s", keyPrefix, gen, rateID)
}

// cachedRate is the wire form of a rate. Amounts are exact rational strings.
type cachedRate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RateType    string    `json:"rate_type"`
	BasePrice   string    `json:"base_price"`
	Currency    string    `json:"currency"`
	ItemType    string    `json:"item_type"`
	ItemID      string    `json:"item_id,omitempty"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	DaysOfWeek  []string  `json:"days_of_week,omitempty"`
	MinStay     *int      `json:"min_stay,omitempty"`
	MaxStay     *int      `json:"max_stay,omitempty"`
	Priority    int       `json:"priority"`
	Active      bool      `json:"active"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type cachedModifier struct {
	ID        string    `json:"id"`
	RateID    string    `json:"rate_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	Condition string    `json:"condition,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func encodeRates(rates []*domain.Rate) ([]byte, error) {
	out := make([]cachedRate, 0, len(rates))
	for _, r := range rates {
		cr := cachedRate{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			RateType:    string(r.RateType()),
			BasePrice:   r.BasePrice().Rat().RatString(),
			Currency:    string(r.Currency()),
			ItemType:    r.ItemType(),
			ItemID:      r.ItemID(),
			MinStay:     r.MinStay(),
			MaxStay:     r.MaxStay(),
			Priority:    r.Priority(),
			Active:      r.IsActive(),
			Version:     r.Version(),
			CreatedAt:   r.CreatedAt(),
			UpdatedAt:   r.UpdatedAt(),
		}
		if d := r.StartDate(); d != nil {
			cr.StartDate = d.String()
		}
		if d := r.EndDate(); d != nil {
			cr.EndDate = d.String()
		}
		for _, day := range r.DaysOfWeek() {
			cr.DaysOfWeek = append(cr.DaysOfWeek, string(day))
		}
		out = append(out, cr)
	}
	return json.Marshal(out)
}

func decodeRates(payload []byte) ([]*domain.Rate, error) {
	var in []cachedRate
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, err
	}

	rates := make([]*domain.Rate, 0, len(in))
	for _, cr := range in {
		price, err := domain.ParseMoney(cr.BasePrice)
		if err != nil {
			return nil, err
		}
		start, err := optionalDate(cr.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := optionalDate(cr.EndDate)
		if err != nil {
			return nil, err
		}
		days := make([]domain.DayOfWeek, 0, len(cr.DaysOfWeek))
		for _, d := range cr.DaysOfWeek {
			days = append(days, domain.DayOfWeek(d))
		}

		terms := domain.RateTerms{
			Name:        cr.Name,
			Description: cr.Description,
			RateType:    domain.RateType(cr.RateType),
			BasePrice:   price,
			Currency:    domain.Currency(cr.Currency),
			ItemType:    cr.ItemType,
			ItemID:      cr.ItemID,
			StartDate:   start,
			EndDate:     end,
			DaysOfWeek:  days,
			MinStay:     cr.MinStay,
			MaxStay:     cr.MaxStay,
			Priority:    cr.Priority,
		}
		rates = append(rates, domain.ReconstructRate(cr.ID, terms, cr.Active, cr.Version, cr.CreatedAt, cr.UpdatedAt))
	}
	return rates, nil
}

func encodeModifiers(modifiers []*domain.RateModifier) ([]byte, error) {
	out := make([]cachedModifier, 0, len(modifiers))
	for _, m := range modifiers {
		out = append(out, cachedModifier{
			ID:        m.ID(),
			RateID:    m.RateID(),
			Name:      m.Name(),
			Type:      string(m.Type()),
			Value:     m.Value().RatString(),
			Condition: m.Condition(),
			CreatedAt: m.CreatedAt(),
		})
	}
	return json.Marshal(out)
}

func decodeModifiers(payload []byte) ([]*domain.RateModifier, error) {
	var in []cachedModifier
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, err
	}

	modifiers := make([]*domain.RateModifier, 0, len(in))
	for _, cm := range in {
		value, ok := new(big.Rat).SetString(cm.Value)
		if !ok {
			return nil, fmt.Errorf("invalid cached modifier value %q", cm.Value)
		}
		modifiers = append(modifiers, domain.ReconstructRateModifier(
			cm.ID, cm.RateID, cm.Name, domain.ModifierType(cm.Type), value, cm.Condition, cm.CreatedAt,
		))
	}
	return modifiers, nil
}

func optionalDate(value string) (*domain.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// NopInvalidator is used when no cache is configured.
type NopInvalidator struct{}

// InvalidateRates implements contracts.RateCacheInvalidator.
func (NopInvalidator) InvalidateRates(context.Context) error { return nil }

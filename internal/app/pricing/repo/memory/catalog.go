// Package memory provides in-process implementations of the pricing store contracts.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// RateCatalog is an in-memory RateStore. Readers never block each other.
type RateCatalog struct {
	mu        sync.RWMutex
	rates     map[string]*domain.Rate
	modifiers map[string][]*domain.RateModifier
}

// NewRateCatalog creates an empty catalog.
func NewRateCatalog() *RateCatalog {
	return &RateCatalog{
		rates:     make(map[string]*domain.Rate),
		modifiers: make(map[string][]*domain.RateModifier),
	}
}

// PutRate stores or replaces a rate.
func (c *RateCatalog) PutRate(rate *domain.Rate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[rate.ID()] = rate
}

// PutModifier attaches a modifier to its rate.
func (c *RateCatalog) PutModifier(m *domain.RateModifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modifiers[m.RateID()] = append(c.modifiers[m.RateID()], m)
}

// ApplicableRates implements contracts.RateStore.
func (c *RateCatalog) ApplicableRates(_ context.Context, itemType, itemID string, date domain.Date) ([]*domain.Rate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	itemType = domain.NormalizeItemType(itemType)
	out := make([]*domain.Rate, 0)
	for _, r := range c.rates {
		if !r.IsActive() || r.ItemType() != itemType {
			continue
		}
		// Exact match, as in the Spanner query; callers pass canonical ids.
		if r.ItemID() != "" && r.ItemID() != itemID {
			continue
		}
		if s := r.StartDate(); s != nil && date.Before(*s) {
			continue
		}
		if e := r.EndDate(); e != nil && date.After(*e) {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority() != b.Priority() {
			return a.Priority() > b.Priority()
		}
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		return a.ID() < b.ID()
	})
	return out, nil
}

// Modifiers implements contracts.RateStore.
func (c *RateCatalog) Modifiers(_ context.Context, rateID string) ([]*domain.RateModifier, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*domain.RateModifier(nil), c.modifiers[rateID]...), nil
}

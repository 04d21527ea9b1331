package memory

import (
	"context"
	"sync"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// DynamicConfigs is an in-memory DynamicConfigStore.
type DynamicConfigs struct {
	mu      sync.RWMutex
	configs map[string]domain.DynamicPricingConfig
}

// NewDynamicConfigs creates a store holding the given configs.
func NewDynamicConfigs(configs ...domain.DynamicPricingConfig) *DynamicConfigs {
	s := &DynamicConfigs{configs: make(map[string]domain.DynamicPricingConfig)}
	for _, c := range configs {
		s.configs[domain.NormalizePricingDomain(c.Domain)] = c.Copy()
	}
	return s
}

// Put replaces the config of cfg.Domain.
func (s *DynamicConfigs) Put(cfg domain.DynamicPricingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[domain.NormalizePricingDomain(cfg.Domain)] = cfg.Copy()
}

// Get implements contracts.DynamicConfigStore.
func (s *DynamicConfigs) Get(_ context.Context, pricingDomain string) (domain.DynamicPricingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[domain.NormalizePricingDomain(pricingDomain)]
	if !ok {
		return domain.DynamicPricingConfig{}, domain.ErrDynamicConfigNotFound
	}
	return cfg.Copy(), nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// SeasonalRules is an in-memory SeasonalRuleStore.
type SeasonalRules struct {
	mu    sync.RWMutex
	rules map[string]*domain.SeasonalRule
}

// NewSeasonalRules creates an empty rule set.
func NewSeasonalRules(rules ...*domain.SeasonalRule) *SeasonalRules {
	s := &SeasonalRules{rules: make(map[string]*domain.SeasonalRule)}
	for _, r := range rules {
		s.rules[r.ID()] = r
	}
	return s
}

// Put stores or replaces a rule.
func (s *SeasonalRules) Put(rule *domain.SeasonalRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.ID()] = rule
}

// ActiveRules implements contracts.SeasonalRuleStore.
func (s *SeasonalRules) ActiveRules(_ context.Context, category string) ([]*domain.SeasonalRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category = domain.NormalizeItemType(category)
	out := make([]*domain.SeasonalRule, 0, len(s.rules))
	for _, r := range s.rules {
		if !r.IsActive() || !coversCategory(r, category) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

// ActiveRulesFor implements contracts.SeasonalRuleStore.
func (s *SeasonalRules) ActiveRulesFor(ctx context.Context, category string, date domain.Date) ([]*domain.SeasonalRule, error) {
	rules, err := s.ActiveRules(ctx, category)
	if err != nil {
		return nil, err
	}
	out := rules[:0]
	for _, r := range rules {
		if r.AppliesTo(category, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func coversCategory(r *domain.SeasonalRule, category string) bool {
	cats := r.Categories()
	if len(cats) == 0 {
		return true
	}
	for _, c := range cats {
		if c == category {
			return true
		}
	}
	return false
}

package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	minMultiplier = big.NewRat(1, 10)
	maxMultiplier = big.NewRat(3, 1)
	one           = big.NewRat(1, 1)
)

// SeasonalRuleParams carries the raw attributes of a seasonal rule.
type SeasonalRuleParams struct {
	Name       string
	Start      string // MM-DD
	End        string // MM-DD
	Multiplier *big.Rat
	Categories []string // empty = all categories
	Priority   int
	Active     bool
}

// SeasonalRule is a calendar-recurring multiplier, independent of the rate catalog.
type SeasonalRule struct {
	id         string
	name       string
	start      MonthDay
	end        MonthDay
	multiplier *big.Rat
	categories []string
	priority   int
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewSeasonalRule validates params and creates a rule.
func NewSeasonalRule(id string, params SeasonalRuleParams, now time.Time) (*SeasonalRule, error) {
	r := &SeasonalRule{id: id, createdAt: now}
	if err := r.apply(params, now); err != nil {
		return nil, err
	}
	return r, nil
}

// ReconstructSeasonalRule rebuilds a rule from storage.
func ReconstructSeasonalRule(id, name string, start, end MonthDay, multiplier *big.Rat, categories []string,
	priority int, active bool, createdAt, updatedAt time.Time) *SeasonalRule {
	return &SeasonalRule{
		id:         id,
		name:       name,
		start:      start,
		end:        end,
		multiplier: new(big.Rat).Set(multiplier),
		categories: append([]string(nil), categories...),
		priority:   priority,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Replace overwrites every attribute of the rule with params.
func (r *SeasonalRule) Replace(params SeasonalRuleParams, now time.Time) error {
	return r.apply(params, now)
}

func (r *SeasonalRule) apply(p SeasonalRuleParams, now time.Time) error {
	name := strings.TrimSpace(p.Name)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return ErrInvalidName
	}
	start, err := ParseMonthDay(p.Start)
	if err != nil {
		return err
	}
	end, err := ParseMonthDay(p.End)
	if err != nil {
		return err
	}
	if err := ValidateMultiplier(p.Multiplier); err != nil {
		return err
	}

	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c = normalizeItemType(c); c != "" {
			categories = append(categories, c)
		}
	}

	r.name = name
	r.start = start
	r.end = end
	r.multiplier = new(big.Rat).Set(p.Multiplier)
	r.categories = categories
	r.priority = p.Priority
	r.active = p.Active
	r.updatedAt = now
	return nil
}

func (r *SeasonalRule) ID() string           { return r.id }
func (r *SeasonalRule) Name() string         { return r.name }
func (r *SeasonalRule) Start() MonthDay      { return r.start }
func (r *SeasonalRule) End() MonthDay        { return r.end }
func (r *SeasonalRule) Multiplier() *big.Rat { return new(big.Rat).Set(r.multiplier) }
func (r *SeasonalRule) Categories() []string { return append([]string(nil), r.categories...) }
func (r *SeasonalRule) Priority() int        { return r.priority }
func (r *SeasonalRule) IsActive() bool       { return r.active }
func (r *SeasonalRule) CreatedAt() time.Time { return r.createdAt }
func (r *SeasonalRule) UpdatedAt() time.Time { return r.updatedAt }

// AppliesTo reports whether the rule is active for the category and its window contains date.
func (r *SeasonalRule) AppliesTo(category string, date Date) bool {
	if !r.active {
		return false
	}
	if len(r.categories) > 0 {
		category = normalizeItemType(category)
		found := false
		for _, c := range r.categories {
			if c == category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return MonthDayWindowContains(r.start, r.end, date)
}

// SavedEvent describes the rule's current state for the outbox.
func (r *SeasonalRule) SavedEvent() *SeasonalRuleSavedEvent {
	return &SeasonalRuleSavedEvent{
		RuleID:     r.id,
		Name:       r.name,
		Start:      r.start.String(),
		End:        r.end.String(),
		Multiplier: r.multiplier.FloatString(2),
		Priority:   r.priority,
		Active:     r.active,
		SavedAt:    r.updatedAt,
	}
}

// ValidateMultiplier checks that a price multiplier is within [0.1, 3.0].
func ValidateMultiplier(m *big.Rat) error {
	if m == nil {
		return fmt.Errorf("%w: multiplier is required", ErrInvalidMultiplier)
	}
	if m.Cmp(minMultiplier) < 0 || m.Cmp(maxMultiplier) > 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidMultiplier, m.FloatString(2))
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

// MaxCalendarDays bounds a pricing calendar request.
const MaxCalendarDays = 366

var unit = big.NewRat(1, 1)

// AdjustmentRequest describes a caller-supplied price to adjust for one date.
type AdjustmentRequest struct {
	Domain      string // dynamic pricing domain, "default" when empty
	Category    string // item category matched against seasonal rules
	Date        domain.Date
	BookingDate *domain.Date // defaults to today
	BasePrice   *domain.Money
	Occupancy   *float64 // percent; occupancy pricing is skipped when nil
}

// CalendarRequest is an AdjustmentRequest over an inclusive date range.
type CalendarRequest struct {
	Domain      string
	Category    string
	From        domain.Date
	To          domain.Date
	BookingDate *domain.Date
	BasePrice   *domain.Money
	Occupancy   *float64
}

// Adjuster applies seasonal, weekend, occupancy and booking-window adjustments
// to a base price. Every contribution is additive against the base price.
type Adjuster struct {
	rules   contracts.SeasonalRuleStore
	configs contracts.DynamicConfigStore
	clock   clock.Clock
}

// NewAdjuster creates a new Adjuster.
func NewAdjuster(rules contracts.SeasonalRuleStore, configs contracts.DynamicConfigStore, clk clock.Clock) *Adjuster {
	return &Adjuster{rules: rules, configs: configs, clock: clk}
}

// Adjust computes the adjusted price for a single date.
func (a *Adjuster) Adjust(ctx context.Context, req AdjustmentRequest) (domain.AdjustedPrice, error) {
	if err := validateAdjustable(req.BasePrice, req.Occupancy); err != nil {
		return domain.AdjustedPrice{}, err
	}

	cfg, err := a.config(ctx, req.Domain)
	if err != nil {
		return domain.AdjustedPrice{}, err
	}
	rules, err := a.rules.ActiveRulesFor(ctx, req.Category, req.Date)
	if err != nil {
		return domain.AdjustedPrice{}, fmt.Errorf("failed to load seasonal rules: %w", err)
	}

	return a.adjust(req.Date, a.bookingDate(req.BookingDate), req.Category, req.BasePrice, req.Occupancy, cfg, rules), nil
}

// PricingCalendar computes the adjusted price for every date in [From, To].
func (a *Adjuster) PricingCalendar(ctx context.Context, req CalendarRequest) ([]domain.AdjustedPrice, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: %s is after %s", domain.ErrInvalidDateRange, req.From, req.To)
	}
	if days := domain.DaysBetween(req.From, req.To) + 1; days > MaxCalendarDays {
		return nil, fmt.Errorf("%w: calendar spans %d days, at most %d allowed", domain.ErrInvalidDateRange, days, MaxCalendarDays)
	}
	if err := validateAdjustable(req.BasePrice, req.Occupancy); err != nil {
		return nil, err
	}

	cfg, err := a.config(ctx, req.Domain)
	if err != nil {
		return nil, err
	}
	rules, err := a.rules.ActiveRules(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasonal rules: %w", err)
	}

	booking := a.bookingDate(req.BookingDate)
	days := make([]domain.AdjustedPrice, 0, domain.DaysBetween(req.From, req.To)+1)
	for d := req.From; !d.After(req.To); d = d.AddDays(1) {
		days = append(days, a.adjust(d, booking, req.Category, req.BasePrice, req.Occupancy, cfg, rules))
	}
	return days, nil
}

func (a *Adjuster) adjust(
	date, booking domain.Date,
	category string,
	base *domain.Money,
	occupancy *float64,
	cfg domain.DynamicPricingConfig,
	rules []*domain.SeasonalRule,
) domain.AdjustedPrice {
	daysUntil := domain.DaysBetween(booking, date)
	adjustments := make([]domain.Adjustment, 0, 4)

	// rules are ordered by priority, the first match wins
	for _, rule := range rules {
		if rule.AppliesTo(category, date) {
			adjustments = append(adjustments, multiplierAdjustment(domain.AdjustmentSeasonal, rule.Name(), base, rule.Multiplier()))
			break
		}
	}

	if cfg.WeekendMultiplier != nil && cfg.WeekendMultiplier.Cmp(unit) != 0 && domain.IsWeekend(date, cfg.WeekendDays) {
		adjustments = append(adjustments, multiplierAdjustment(domain.AdjustmentWeekend, "weekend", base, cfg.WeekendMultiplier))
	}

	if cfg.Enabled && occupancy != nil {
		m := cfg.OccupancyMultiplier(*occupancy)
		adjustments = append(adjustments, multiplierAdjustment(domain.AdjustmentOccupancy, "occupancy", base, m))
	}

	// Arrivals before the booking date get neither booking window.
	if cfg.Enabled && daysUntil >= 0 {
		// Validated configs never satisfy both windows; stored ones that do get both.
		if cfg.AdvanceBookingDays > 0 && daysUntil >= cfg.AdvanceBookingDays && positive(cfg.EarlyBirdDiscount) {
			adjustments = append(adjustments, domain.Adjustment{
				Kind:       domain.AdjustmentEarlyBird,
				Name:       "early bird",
				Multiplier: new(big.Rat).Sub(unit, cfg.EarlyBirdDiscount),
				Amount:     base.MultiplyByRat(cfg.EarlyBirdDiscount).Negate(),
			})
		}
		if daysUntil <= cfg.LastMinuteDays && positive(cfg.LastMinutePremium) {
			adjustments = append(adjustments, domain.Adjustment{
				Kind:       domain.AdjustmentLastMinute,
				Name:       "last minute",
				Multiplier: new(big.Rat).Add(unit, cfg.LastMinutePremium),
				Amount:     base.MultiplyByRat(cfg.LastMinutePremium),
			})
		}
	}

	result := domain.AdjustedPrice{
		Date:             date,
		BasePrice:        base.Copy(),
		Adjustments:      adjustments,
		DaysUntilArrival: daysUntil,
	}
	result.FinalPrice = base.Add(result.TotalAdjustment()).NonNegative()
	return result
}

// config loads the domain's dynamic config, falling back to the default domain
// and then to a neutral config.
func (a *Adjuster) config(ctx context.Context, pricingDomain string) (domain.DynamicPricingConfig, error) {
	pricingDomain = domain.NormalizePricingDomain(pricingDomain)
	candidates := []string{pricingDomain}
	if pricingDomain != domain.DefaultPricingDomain {
		candidates = append(candidates, domain.DefaultPricingDomain)
	}

	for _, key := range candidates {
		cfg, err := a.configs.Get(ctx, key)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, domain.ErrDynamicConfigNotFound) {
			return domain.DynamicPricingConfig{}, fmt.Errorf("failed to load dynamic pricing config %q: %w", key, err)
		}
	}
	return domain.DefaultDynamicConfig(pricingDomain), nil
}

func (a *Adjuster) bookingDate(d *domain.Date) domain.Date {
	if d != nil {
		return *d
	}
	return domain.DateOf(a.clock.Now())
}

func multiplierAdjustment(kind domain.AdjustmentKind, name string, base *domain.Money, m *big.Rat) domain.Adjustment {
	return domain.Adjustment{
		Kind:       kind,
		Name:       name,
		Multiplier: m,
		Amount:     base.MultiplyByRat(new(big.Rat).Sub(m, unit)),
	}
}

func validateAdjustable(base *domain.Money, occupancy *float64) error {
	if base == nil || base.IsNegative() {
		return fmt.Errorf("%w: base price must be zero or greater", domain.ErrInvalidPricingRequest)
	}
	if occupancy != nil {
		return domain.ValidateOccupancy(*occupancy)
	}
	return nil
}

func positive(r *big.Rat) bool {
	return r != nil && r.Sign() > 0
}

package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// DefaultPricingDomain is the process-wide dynamic pricing domain.
const DefaultPricingDomain = "default"

// DynamicPricingConfig drives occupancy, weekend and booking-window adjustments for one pricing domain.
// It is a value object: callers replace it wholesale.
type DynamicPricingConfig struct {
	Domain             string
	Enabled            bool
	MinOccupancy       float64 // percent, 0..100
	MaxOccupancy       float64 // percent, 0..100
	MinMultiplier      *big.Rat
	MaxMultiplier      *big.Rat
	AdvanceBookingDays int
	EarlyBirdDiscount  *big.Rat // fraction of base, 0..1
	LastMinuteDays     int
	LastMinutePremium  *big.Rat // fraction of base, 0..1
	WeekendMultiplier  *big.Rat
	WeekendDays        []DayOfWeek
	UpdatedAt          time.Time
}

// DefaultDynamicConfig is a neutral config: every adjustment it drives contributes zero.
func DefaultDynamicConfig(domain string) DynamicPricingConfig {
	return DynamicPricingConfig{
		Domain:            NormalizePricingDomain(domain),
		Enabled:           false,
		MinOccupancy:      0,
		MaxOccupancy:      100,
		MinMultiplier:     big.NewRat(1, 1),
		MaxMultiplier:     big.NewRat(1, 1),
		EarlyBirdDiscount: new(big.Rat),
		LastMinutePremium: new(big.Rat),
		WeekendMultiplier: big.NewRat(1, 1),
		WeekendDays:       append([]DayOfWeek(nil), DefaultWeekendDays...),
	}
}

// NormalizePricingDomain returns the canonical domain key, "default" when blank.
func NormalizePricingDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return DefaultPricingDomain
	}
	return domain
}

// Validate checks every bound of the config. Overlapping early-bird and last-minute
// windows are rejected so that at most one of them applies to any booking.
func (c DynamicPricingConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidDynamicConfig}, args...)...)
	}

	if c.MinOccupancy < 0 || c.MinOccupancy > 100 || c.MaxOccupancy < 0 || c.MaxOccupancy > 100 {
		return invalid("occupancy thresholds must be between 0 and 100")
	}
	if c.MinOccupancy > c.MaxOccupancy {
		return invalid("minimum occupancy %.2f exceeds maximum %.2f", c.MinOccupancy, c.MaxOccupancy)
	}
	if err := ValidateMultiplier(c.MinMultiplier); err != nil {
		return err
	}
	if err := ValidateMultiplier(c.MaxMultiplier); err != nil {
		return err
	}
	if c.MinMultiplier.Cmp(c.MaxMultiplier) > 0 {
		return invalid("minimum multiplier exceeds maximum multiplier")
	}
	if c.AdvanceBookingDays < 0 || c.LastMinuteDays < 0 {
		return invalid("booking window thresholds must not be negative")
	}
	if !isFraction(c.EarlyBirdDiscount) || !isFraction(c.LastMinutePremium) {
		return invalid("early-bird discount and last-minute premium must be between 0 and 1")
	}
	if c.AdvanceBookingDays > 0 && c.LastMinuteDays > 0 && c.AdvanceBookingDays <= c.LastMinuteDays {
		return invalid("advance booking days (%d) must exceed last-minute days (%d)", c.AdvanceBookingDays, c.LastMinuteDays)
	}
	if err := ValidateMultiplier(c.WeekendMultiplier); err != nil {
		return err
	}
	return nil
}

// Copy returns a deep copy.
func (c DynamicPricingConfig) Copy() DynamicPricingConfig {
	out := c
	out.MinMultiplier = copyRat(c.MinMultiplier)
	out.MaxMultiplier = copyRat(c.MaxMultiplier)
	out.EarlyBirdDiscount = copyRat(c.EarlyBirdDiscount)
	out.LastMinutePremium = copyRat(c.LastMinutePremium)
	out.WeekendMultiplier = copyRat(c.WeekendMultiplier)
	out.WeekendDays = append([]DayOfWeek(nil), c.WeekendDays...)
	return out
}

// OccupancyMultiplier resolves the multiplier for an occupancy percentage: the bound
// multipliers at or beyond the thresholds, linear interpolation between them.
func (c DynamicPricingConfig) OccupancyMultiplier(occupancy float64) *big.Rat {
	if occupancy >= c.MaxOccupancy {
		return copyRat(c.MaxMultiplier)
	}
	if occupancy <= c.MinOccupancy {
		return copyRat(c.MinMultiplier)
	}

	span := new(big.Rat).SetFloat64(c.MaxOccupancy - c.MinOccupancy)
	pos := new(big.Rat).SetFloat64(occupancy - c.MinOccupancy)
	ratio := new(big.Rat).Quo(pos, span)
	delta := new(big.Rat).Sub(c.MaxMultiplier, c.MinMultiplier)
	return new(big.Rat).Add(c.MinMultiplier, ratio.Mul(ratio, delta))
}

// CalculateDynamicPrice returns basePrice scaled by the occupancy multiplier.
func CalculateDynamicPrice(basePrice *Money, occupancy float64, cfg DynamicPricingConfig) *Money {
	return basePrice.MultiplyByRat(cfg.OccupancyMultiplier(occupancy))
}

// ValidateOccupancy checks a caller-supplied occupancy percentage.
func ValidateOccupancy(occupancy float64) error {
	if occupancy < 0 || occupancy > 100 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidOccupancy, occupancy)
	}
	return nil
}

func isFraction(r *big.Rat) bool {
	return r != nil && r.Sign() >= 0 && r.Cmp(one) <= 0
}

func copyRat(r *big.Rat) *big.Rat {
	if r == nil {
		return nil
	}
	return new(big.Rat).Set(r)
}

package domain

import "math/big"

// ModifierContribution is the amount one named modifier added to a stay.
type ModifierContribution struct {
	Name   string
	Amount *Money
}

// PriceBreakdown is the result of pricing an item against the rate catalog.
// A breakdown without an applied rate is a valid, all-zero outcome.
type PriceBreakdown struct {
	BasePrice   *Money
	Modifiers   []ModifierContribution
	TotalPrice  *Money
	Currency    Currency
	Nights      int
	AppliedRate *Rate
}

// NoRateBreakdown is the breakdown returned when no rate matched.
func NoRateBreakdown(nights int) PriceBreakdown {
	return PriceBreakdown{
		BasePrice:  Zero(),
		Modifiers:  []ModifierContribution{},
		TotalPrice: Zero(),
		Currency:   DefaultCurrency,
		Nights:     nights,
	}
}

// HasRate reports whether a rate was applied.
func (b PriceBreakdown) HasRate() bool {
	return b.AppliedRate != nil
}

// AdjustmentKind names the source of a price adjustment.
type AdjustmentKind string

const (
	AdjustmentSeasonal   AdjustmentKind = "seasonal"
	AdjustmentWeekend    AdjustmentKind = "weekend"
	AdjustmentOccupancy  AdjustmentKind = "occupancy"
	AdjustmentEarlyBird  AdjustmentKind = "early_bird"
	AdjustmentLastMinute AdjustmentKind = "last_minute"
)

// Adjustment is one additive contribution and the multiplier it was derived from.
type Adjustment struct {
	Kind       AdjustmentKind
	Name       string
	Multiplier *big.Rat
	Amount     *Money
}

// AdjustedPrice is the seasonal/dynamic breakdown for a single date.
type AdjustedPrice struct {
	Date             Date
	BasePrice        *Money
	Adjustments      []Adjustment
	FinalPrice       *Money
	DaysUntilArrival int
}

// TotalAdjustment is the sum of all contributions, before clamping.
func (p AdjustedPrice) TotalAdjustment() *Money {
	sum := Zero()
	for _, a := range p.Adjustments {
		sum = sum.Add(a.Amount)
	}
	return sum
}

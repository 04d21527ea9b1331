package m_dynamic_config

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the dynamic_pricing_configs table.
const (
	TableName = "dynamic_pricing_configs"

	PricingDomain      = "pricing_domain"
	Enabled            = "enabled"
	MinOccupancy       = "min_occupancy"
	MaxOccupancy       = "max_occupancy"
	MinMultiplier      = "min_multiplier"
	MaxMultiplier      = "max_multiplier"
	AdvanceBookingDays = "advance_booking_days"
	EarlyBirdDiscount  = "early_bird_discount"
	LastMinuteDays     = "last_minute_days"
	LastMinutePremium  = "last_minute_premium"
	WeekendMultiplier  = "weekend_multiplier"
	WeekendDays        = "weekend_days"
	UpdatedAt          = "updated_at"
)

// Data represents the database model for the dynamic_pricing_configs table.
type Data struct {
	PricingDomain      string    `spanner:"pricing_domain"`
	Enabled            bool      `spanner:"enabled"`
	MinOccupancy       float64   `spanner:"min_occupancy"`
	MaxOccupancy       float64   `spanner:"max_occupancy"`
	MinMultiplier      big.Rat   `spanner:"min_multiplier"`
	MaxMultiplier      big.Rat   `spanner:"max_multiplier"`
	AdvanceBookingDays int64     `spanner:"advance_booking_days"`
	EarlyBirdDiscount  big.Rat   `spanner:"early_bird_discount"`
	LastMinuteDays     int64     `spanner:"last_minute_days"`
	LastMinutePremium  big.Rat   `spanner:"last_minute_premium"`
	WeekendMultiplier  big.Rat   `spanner:"weekend_multiplier"`
	WeekendDays        []string  `spanner:"weekend_days"`
	UpdatedAt          time.Time `spanner:"updated_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{
		PricingDomain, Enabled, MinOccupancy, MaxOccupancy, MinMultiplier, MaxMultiplier,
		AdvanceBookingDays, EarlyBirdDiscount, LastMinuteDays, LastMinutePremium,
		WeekendMultiplier, WeekendDays, UpdatedAt,
	}
}

// Model provides type-safe operations on the dynamic_pricing_configs table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReplaceMut overwrites the whole row of a pricing domain.
func (m *Model) ReplaceMut(data *Data) *spanner.Mutation {
	return spanner.Replace(TableName, Columns(), []interface{}{
		data.PricingDomain,
		data.Enabled,
		data.MinOccupancy,
		data.MaxOccupancy,
		data.MinMultiplier,
		data.MaxMultiplier,
		data.AdvanceBookingDays,
		data.EarlyBirdDiscount,
		data.LastMinuteDays,
		data.LastMinutePremium,
		data.WeekendMultiplier,
		data.WeekendDays,
		spanner.CommitTimestamp,
	})
}

package m_rate

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rates table.
type Data struct {
	RateID               string             `spanner:"rate_id"`
	Name                 string             `spanner:"name"`
	Description          string             `spanner:"description"`
	RateType             string             `spanner:"rate_type"`
	BasePriceNumerator   int64              `spanner:"base_price_numerator"`
	BasePriceDenominator int64              `spanner:"base_price_denominator"`
	Currency             string             `spanner:"currency"`
	ItemType             string             `spanner:"item_type"`
	ItemID               spanner.NullString `spanner:"item_id"`
	StartDate            spanner.NullDate   `spanner:"start_date"`
	EndDate              spanner.NullDate   `spanner:"end_date"`
	DaysOfWeek           []string           `spanner:"days_of_week"`
	MinStay              spanner.NullInt64  `spanner:"min_stay"`
	MaxStay              spanner.NullInt64  `spanner:"max_stay"`
	Priority             int64              `spanner:"priority"`
	IsActive             bool               `spanner:"is_active"`
	Version              int64              `spanner:"version"`
	CreatedAt            time.Time          `spanner:"created_at"`
	UpdatedAt            time.Time          `spanner:"updated_at"`
}

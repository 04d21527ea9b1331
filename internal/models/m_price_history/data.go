package m_price_history

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one base price change of a rate. The old price is null on the row written at creation.
type Data struct {
	HistoryID           string             `spanner:"history_id"`
	RateID              string             `spanner:"rate_id"`
	OldPriceNumerator   spanner.NullInt64  `spanner:"old_price_numerator"`
	OldPriceDenominator spanner.NullInt64  `spanner:"old_price_denominator"`
	NewPriceNumerator   int64              `spanner:"new_price_numerator"`
	NewPriceDenominator int64              `spanner:"new_price_denominator"`
	ChangedBy           spanner.NullString `spanner:"changed_by"`
	ChangedAt           time.Time          `spanner:"changed_at"`
}

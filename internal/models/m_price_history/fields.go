package m_price_history

// TableName is the base price audit table of rates.
const TableName = "rate_price_history"

// Field name constants for type-safe database access
const (
	HistoryID           = "history_id"
	RateID              = "rate_id"
	OldPriceNumerator   = "old_price_numerator"
	OldPriceDenominator = "old_price_denominator"
	NewPriceNumerator   = "new_price_numerator"
	NewPriceDenominator = "new_price_denominator"
	ChangedBy           = "changed_by"
	ChangedAt           = "changed_at"
)

// Columns lists every column in Data order.
func Columns() []string {
	return []string{
		HistoryID, RateID,
		OldPriceNumerator, OldPriceDenominator,
		NewPriceNumerator, NewPriceDenominator,
		ChangedBy, ChangedAt,
	}
}

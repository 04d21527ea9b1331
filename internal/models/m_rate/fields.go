package m_rate

// Field name constants for the rates table.
const (
	TableName = "rates"

	RateID               = "rate_id"
	Name                 = "name"
	Description          = "description"
	RateType             = "rate_type"
	BasePriceNumerator   = "base_price_numerator"
	BasePriceDenominator = "base_price_denominator"
	Currency             = "currency"
	ItemType             = "item_type"
	ItemID               = "item_id"
	StartDate            = "start_date"
	EndDate              = "end_date"
	DaysOfWeek           = "days_of_week"
	MinStay              = "min_stay"
	MaxStay              = "max_stay"
	Priority             = "priority"
	IsActive             = "is_active"
	Version              = "version"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)

// Columns lists every column in Data order.
func Columns() []string {
	return []string{
		RateID, Name, Description, RateType, BasePriceNumerator, BasePriceDenominator,
		Currency, ItemType, ItemID, StartDate, EndDate, DaysOfWeek, MinStay, MaxStay,
		Priority, IsActive, Version, CreatedAt, UpdatedAt,
	}
}

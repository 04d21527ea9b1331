package m_rate

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rates table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a rate.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.RateID,
			data.Name,
			data.Description,
			data.RateType,
			data.BasePriceNumerator,
			data.BasePriceDenominator,
			data.Currency,
			data.ItemType,
			data.ItemID,
			data.StartDate,
			data.EndDate,
			data.DaysOfWeek,
			data.MinStay,
			data.MaxStay,
			data.Priority,
			data.IsActive,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific rate columns.
// updated_at is always set to the commit timestamp.
func (m *Model) UpdateMut(rateID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, RateID)
	values = append(values, rateID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

package m_price_history

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the price history table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut appends a history row. Rows are never updated.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		data.HistoryID,
		data.RateID,
		data.OldPriceNumerator,
		data.OldPriceDenominator,
		data.NewPriceNumerator,
		data.NewPriceDenominator,
		data.ChangedBy,
		data.ChangedAt,
	})
}

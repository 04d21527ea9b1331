package m_rate_modifier

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the rate_modifiers table, interleaved in rates.
const (
	TableName = "rate_modifiers"

	RateID        = "rate_id"
	ModifierID    = "modifier_id"
	Name          = "name"
	ModifierType  = "modifier_type"
	Value         = "value"
	ConditionText = "condition_text"
	CreatedAt     = "created_at"
)

// Data represents the database model for the rate_modifiers table.
type Data struct {
	RateID        string             `spanner:"rate_id"`
	ModifierID    string             `spanner:"modifier_id"`
	Name          string             `spanner:"name"`
	ModifierType  string             `spanner:"modifier_type"`
	Value         big.Rat            `spanner:"value"`
	ConditionText spanner.NullString `spanner:"condition_text"`
	CreatedAt     time.Time          `spanner:"created_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{RateID, ModifierID, Name, ModifierType, Value, ConditionText, CreatedAt}
}

// Model provides type-safe operations on the rate_modifiers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a modifier.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		data.RateID,
		data.ModifierID,
		data.Name,
		data.ModifierType,
		data.Value,
		data.ConditionText,
		data.CreatedAt,
	})
}

// DeleteMut creates a mutation for deleting a modifier.
func (m *Model) DeleteMut(rateID, modifierID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{rateID, modifierID})
}

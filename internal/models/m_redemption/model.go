package m_redemption

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the redemptions ledger. The primary key is (kind, reference, order_id).
const (
	TableName = "redemptions"

	Kind      = "kind"
	Reference = "reference"
	OrderID   = "order_id"
	TargetID  = "target_id"
	Amount    = "amount"
	Points    = "points"
	CreatedAt = "created_at"
)

// Data represents one ledger row.
type Data struct {
	Kind      string    `spanner:"kind"`
	Reference string    `spanner:"reference"`
	OrderID   string    `spanner:"order_id"`
	TargetID  string    `spanner:"target_id"`
	Amount    big.Rat   `spanner:"amount"`
	Points    int64     `spanner:"points"`
	CreatedAt time.Time `spanner:"created_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{Kind, Reference, OrderID, TargetID, Amount, Points, CreatedAt}
}

// Key returns the primary key of a ledger row.
func Key(kind, reference, orderID string) spanner.Key {
	return spanner.Key{kind, reference, orderID}
}

// Model provides type-safe operations on the redemptions table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for a new ledger row. A duplicate key aborts the transaction.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		data.Kind,
		data.Reference,
		data.OrderID,
		data.TargetID,
		data.Amount,
		data.Points,
		spanner.CommitTimestamp,
	})
}

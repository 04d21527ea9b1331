package m_loyalty_account

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the loyalty_accounts table.
const (
	TableName = "loyalty_accounts"

	UserID         = "user_id"
	Points         = "points"
	LifetimePoints = "lifetime_points"
	UpdatedAt      = "updated_at"
)

// Data represents the database model for the loyalty_accounts table.
type Data struct {
	UserID         string    `spanner:"user_id"`
	Points         int64     `spanner:"points"`
	LifetimePoints int64     `spanner:"lifetime_points"`
	UpdatedAt      time.Time `spanner:"updated_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{UserID, Points, LifetimePoints, UpdatedAt}
}

// Model provides type-safe operations on the loyalty_accounts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// SaveMut writes the account balances, creating the account on first accrual.
func (m *Model) SaveMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns(), []interface{}{
		data.UserID,
		data.Points,
		data.LifetimePoints,
		spanner.CommitTimestamp,
	})
}

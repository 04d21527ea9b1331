package m_seasonal_rule

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the seasonal_rules table.
const (
	TableName = "seasonal_rules"

	RuleID     = "rule_id"
	Name       = "name"
	StartDay   = "start_month_day"
	EndDay     = "end_month_day"
	Multiplier = "multiplier"
	Categories = "categories"
	Priority   = "priority"
	IsActive   = "is_active"
	CreatedAt  = "created_at"
	UpdatedAt  = "updated_at"
)

// Data represents the database model for the seasonal_rules table.
type Data struct {
	RuleID     string    `spanner:"rule_id"`
	Name       string    `spanner:"name"`
	StartDay   string    `spanner:"start_month_day"`
	EndDay     string    `spanner:"end_month_day"`
	Multiplier big.Rat   `spanner:"multiplier"`
	Categories []string  `spanner:"categories"`
	Priority   int64     `spanner:"priority"`
	IsActive   bool      `spanner:"is_active"`
	CreatedAt  time.Time `spanner:"created_at"`
	UpdatedAt  time.Time `spanner:"updated_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{RuleID, Name, StartDay, EndDay, Multiplier, Categories, Priority, IsActive, CreatedAt, UpdatedAt}
}

// Model provides type-safe operations on the seasonal_rules table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// SaveMut creates an insert-or-update mutation for a rule.
func (m *Model) SaveMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns(), []interface{}{
		data.RuleID,
		data.Name,
		data.StartDay,
		data.EndDay,
		data.Multiplier,
		data.Categories,
		data.Priority,
		data.IsActive,
		data.CreatedAt,
		spanner.CommitTimestamp,
	})
}

// DeleteMut creates a mutation for deleting a rule.
func (m *Model) DeleteMut(ruleID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{ruleID})
}

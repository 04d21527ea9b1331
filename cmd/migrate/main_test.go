package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `
-- leading comment
CREATE TABLE a (
  id STRING(36) NOT NULL,
) PRIMARY KEY (id);

   -- indented comment
CREATE INDEX idx_a ON a(id);
`
	stmts := splitDDLStatements(content)

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (\nid STRING(36) NOT NULL,\n) PRIMARY KEY (id)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a(id)", stmts[1])
}

func TestSplitDDLStatements_Empty(t *testing.T) {
	assert.Empty(t, splitDDLStatements("-- nothing here\n\n"))
}

func TestInitialSchemaCoversEveryTable(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)

	stmts := splitDDLStatements(string(content))
	tables := map[string]bool{}
	for _, stmt := range stmts {
		var name string
		if n, _ := fmt.Sscanf(stmt, "CREATE TABLE %s", &name); n == 1 {
			tables[name] = true
		}
	}

	for _, want := range []string{
		"rates", "rate_modifiers", "rate_price_history", "seasonal_rules",
		"dynamic_pricing_configs", "coupons", "gift_cards", "loyalty_accounts",
		"redemptions", "outbox_events",
	} {
		assert.True(t, tables[want], "missing table %s", want)
	}
}

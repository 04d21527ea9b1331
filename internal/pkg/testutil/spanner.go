// Package testutil holds helpers for tests that run against the Spanner emulator.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
)

const defaultTestDB = "projects/test-project/instances/test-instance/databases/resort-pricing-test"

// Tables lists every table in dependency order. Children come before parents.
var Tables = []string{
	"rate_modifiers",
	"rate_price_history",
	"rates",
	"seasonal_rules",
	"dynamic_pricing_configs",
	"redemptions",
	"coupons",
	"gift_cards",
	"loyalty_accounts",
	"outbox_events",
}

// SetupSpannerTest creates a client on a clean database and returns a cleanup function.
// The test is skipped when no emulator is configured.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	client, err := spanner.NewClient(context.Background(), GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	return client, func() {
		CleanDatabase(t, client)
		client.Close()
	}
}

// GetTestSpannerDB returns the test database path, overridable with SPANNER_TEST_DATABASE.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return defaultTestDB
}

// CleanDatabase deletes every row from every table.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	muts := make([]*spanner.Mutation, 0, len(Tables))
	for _, table := range Tables {
		muts = append(muts, spanner.Delete(table, spanner.AllKeys()))
	}

	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expected int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expected), count, "unexpected row count in table %s", table)
}

package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents one row of the outbox_events table.
type Data struct {
	EventID       string             `spanner:"event_id"`
	EventType     string             `spanner:"event_type"`
	AggregateType string             `spanner:"aggregate_type"`
	AggregateID   string             `spanner:"aggregate_id"`
	Payload       spanner.NullJSON   `spanner:"payload"`
	Status        string             `spanner:"status"`
	CreatedAt     time.Time          `spanner:"created_at"`
	ProcessedAt   spanner.NullTime   `spanner:"processed_at"`
	RetryCount    int64              `spanner:"retry_count"`
	ErrorMessage  spanner.NullString `spanner:"error_message"`
}

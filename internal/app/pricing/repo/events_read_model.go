package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/query"
)

// EventsReadModel implements list_events.EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves outbox events, newest first, and the total count matching the filters.
func (r *EventsReadModel) ListEvents(ctx context.Context, req *list_events.Request) ([]*m_outbox.Data, int64, error) {
	base := query.From(m_outbox.TableName).
		Select(m_outbox.Columns()...).
		WhereIf(req.EventType != "", query.Eq(m_outbox.EventType, req.EventType)).
		WhereIf(req.AggregateType != "", query.Eq(m_outbox.AggregateType, req.AggregateType)).
		WhereIf(req.AggregateID != "", query.Eq(m_outbox.AggregateID, req.AggregateID)).
		WhereIf(req.Status != "", query.Eq(m_outbox.Status, req.Status))

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	countIter := txn.Query(ctx, base.Count().Build())
	err := countIter.Do(func(row *spanner.Row) error {
		return row.Columns(&total)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	stmt := base.OrderBy(m_outbox.CreatedAt, query.Desc).
		ThenBy(m_outbox.EventID, query.Asc).
		Limit(int64(req.Limit)).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*m_outbox.Data, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, total, nil
}

package repo

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() contracts.OutboxRepository {
	return &OutboxRepo{
		model: m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	payload := spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""}

	return r.model.InsertMut(&m_outbox.Data{
		EventID:       event.EventID,
		EventType:     event.EventType,
		AggregateType: aggregateType(event.EventType),
		AggregateID:   event.AggregateID,
		Payload:       payload,
		Status:        event.Status,
	})
}

// EventMuts serializes domain events and returns one insert mutation per event.
func (r *OutboxRepo) EventMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
		}
		muts = append(muts, r.InsertMut(&contracts.OutboxEvent{
			EventID:     uuid.New().String(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     string(data),
			Status:      m_outbox.StatusPending,
		}))
	}
	return muts, nil
}

// aggregateType is the event type prefix, e.g. "rate" for "rate.modifier.added".
func aggregateType(eventType string) string {
	if i := strings.IndexByte(eventType, '.'); i > 0 {
		return eventType[:i]
	}
	return eventType
}

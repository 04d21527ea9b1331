package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EventMuts serializes domain events and returns one insert mutation per event.
	EventMuts(events []domain.DomainEvent) ([]*spanner.Mutation, error)
}

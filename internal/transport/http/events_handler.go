package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_events"
)

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID       string  `json:"event_id"`
	EventType     string  `json:"event_type"`
	AggregateType string  `json:"aggregate_type"`
	AggregateID   string  `json:"aggregate_id"`
	Payload       any     `json:"payload"`
	Status        string  `json:"status"`
	RetryCount    int64   `json:"retry_count"`
	CreatedAt     string  `json:"created_at"`
	ProcessedAt   *string `json:"processed_at,omitempty"`
	ErrorMessage  *string `json:"error_message,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count"`
}

// listEvents handles GET /api/v1/events requests.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	if h.deps.ListEvents == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	query := r.URL.Query()
	req := &list_events.Request{
		EventType:     strings.TrimSpace(query.Get("event_type")),
		AggregateType: strings.TrimSpace(query.Get("aggregate_type")),
		AggregateID:   strings.TrimSpace(query.Get("aggregate_id")),
		Status:        strings.TrimSpace(query.Get("status")),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(ctx, w, errBadRequest("limit must be a positive integer"))
			return
		}
		req.Limit = limit
	}

	rows, total, err := h.deps.ListEvents.Execute(ctx, req)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		event := Event{
			EventID:       row.EventID,
			EventType:     row.EventType,
			AggregateType: row.AggregateType,
			AggregateID:   row.AggregateID,
			Status:        row.Status,
			RetryCount:    row.RetryCount,
			CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if row.Payload.Valid {
			event.Payload = row.Payload.Value
		}
		if row.ProcessedAt.Valid {
			processedAt := row.ProcessedAt.Time.UTC().Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		if row.ErrorMessage.Valid {
			msg := row.ErrorMessage.StringVal
			event.ErrorMessage = &msg
		}
		events = append(events, event)
	}

	writeJSON(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		TotalCount: total,
	})
}

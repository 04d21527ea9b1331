package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/models/m_outbox"
)

func TestPrintEvents(t *testing.T) {
	var buf bytes.Buffer
	events := []*m_outbox.Data{{
		EventID:       "evt-1",
		EventType:     "rate.created",
		AggregateType: "rate",
		AggregateID:   "rate-1",
		Status:        m_outbox.StatusPending,
		CreatedAt:     time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, printEvents(&buf, events, 3))

	out := buf.String()
	assert.Contains(t, out, "rate.created")
	assert.Contains(t, out, "rate/rate-1")
	assert.Contains(t, out, "2026-07-01T10:00:00Z")
	assert.Contains(t, out, "showing 1 of 3 events")
}

func TestPrintEvents_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printEvents(&buf, nil, 0))
	assert.Equal(t, "no events found\n", buf.String())
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{SpannerDB: "projects/p/instances/i/databases/d", CompletedRetentionDays: 30, FailedRetentionDays: 90}, false},
		{"missing database", Config{CompletedRetentionDays: 30, FailedRetentionDays: 90}, true},
		{"zero retention", Config{SpannerDB: "db", CompletedRetentionDays: 0, FailedRetentionDays: 90}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigCutoffs(t *testing.T) {
	cfg := Config{CompletedRetentionDays: 30, FailedRetentionDays: 90}
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	completed, failed := cfg.cutoffs(now)

	assert.Equal(t, time.Date(2026, 9, 19, 12, 0, 0, 0, time.UTC), completed)
	assert.Equal(t, time.Date(2026, 7, 21, 12, 0, 0, 0, time.UTC), failed)
}

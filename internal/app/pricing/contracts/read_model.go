package contracts

import (
	"context"
	"time"
)

// RateDTO is a flattened rate for catalog queries.
type RateDTO struct {
	RateID      string
	Name        string
	Description string
	RateType    string
	BasePrice   string // decimal, two places
	Currency    string
	ItemType    string
	ItemID      string
	StartDate   string
	EndDate     string
	DaysOfWeek  []string
	MinStay     *int64
	MaxStay     *int64
	Priority    int64
	Active      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RateFilter defines filtering options for listing rates. Empty fields do not filter.
type RateFilter struct {
	ItemType string
	ItemID   string
	RateType string
	Currency string
	Active   *bool
	PageSize int
}

// ReadModel defines the interface for rate catalog queries.
// Read models bypass the domain layer.
type ReadModel interface {
	GetRateByID(ctx context.Context, rateID string) (*RateDTO, error)

	// ListRates returns rates ordered by priority descending.
	ListRates(ctx context.Context, filter *RateFilter) ([]*RateDTO, error)
}

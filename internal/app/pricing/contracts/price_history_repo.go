package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// PriceHistoryRepository records base price changes of rates.
type PriceHistoryRepository interface {
	// InsertMut creates a mutation for a base price change.
	// oldPrice is nil when the rate is created.
	InsertMut(
		historyID string,
		rateID string,
		oldPrice *domain.Money,
		newPrice *domain.Money,
		changedBy string,
		changedAt time.Time,
	) (*spanner.Mutation, error)

	// GetByRateID retrieves price history for a rate, most recent first.
	GetByRateID(ctx context.Context, rateID string, limit int) ([]PriceHistoryRecord, error)
}

// PriceHistoryRecord represents a base price change.
type PriceHistoryRecord struct {
	HistoryID string
	RateID    string
	OldPrice  *domain.Money // nil for the initial price
	NewPrice  *domain.Money
	ChangedBy string
	ChangedAt time.Time
}

package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_price_history"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/query"
)

// PriceHistoryRepo implements PriceHistoryRepository for Spanner.
type PriceHistoryRepo struct {
	client *spanner.Client
	model  *m_price_history.Model
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo(client *spanner.Client) contracts.PriceHistoryRepository {
	return &PriceHistoryRepo{
		client: client,
		model:  m_price_history.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a price change record.
func (r *PriceHistoryRepo) InsertMut(
	historyID string,
	rateID string,
	oldPrice *domain.Money,
	newPrice *domain.Money,
	changedBy string,
	changedAt time.Time,
) (*spanner.Mutation, error) {
	newNum, newDen, err := newPrice.Fraction()
	if err != nil {
		return nil, err
	}

	data := &m_price_history.Data{
		HistoryID:           historyID,
		RateID:              rateID,
		NewPriceNumerator:   newNum,
		NewPriceDenominator: newDen,
		ChangedBy:           nullString(changedBy),
		ChangedAt:           changedAt,
	}

	// oldPrice is nil for initial rate creation
	if oldPrice != nil {
		oldNum, oldDen, err := oldPrice.Fraction()
		if err != nil {
			return nil, err
		}
		data.OldPriceNumerator = spanner.NullInt64{Int64: oldNum, Valid: true}
		data.OldPriceDenominator = spanner.NullInt64{Int64: oldDen, Valid: true}
	}

	return r.model.InsertMut(data), nil
}

// GetByRateID retrieves price history for a rate, ordered by time (most recent first).
func (r *PriceHistoryRepo) GetByRateID(ctx context.Context, rateID string, limit int) ([]contracts.PriceHistoryRecord, error) {
	stmt := query.From(m_price_history.TableName).
		Select(m_price_history.Columns()...).
		Where(query.Eq(m_price_history.RateID, rateID)).
		OrderBy(m_price_history.ChangedAt, query.Desc).
		ThenBy(m_price_history.HistoryID, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	records := make([]contracts.PriceHistoryRecord, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate price history: %w", err)
		}

		var data m_price_history.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price history: %w", err)
		}

		record, err := dataToRecord(&data)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

func dataToRecord(data *m_price_history.Data) (*contracts.PriceHistoryRecord, error) {
	newPrice, err := domain.NewMoney(data.NewPriceNumerator, data.NewPriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid new price: %w", err)
	}

	record := &contracts.PriceHistoryRecord{
		HistoryID: data.HistoryID,
		RateID:    data.RateID,
		NewPrice:  newPrice,
		ChangedBy: data.ChangedBy.StringVal,
		ChangedAt: data.ChangedAt,
	}

	if data.OldPriceNumerator.Valid && data.OldPriceDenominator.Valid {
		oldPrice, err := domain.NewMoney(data.OldPriceNumerator.Int64, data.OldPriceDenominator.Int64)
		if err != nil {
			return nil, fmt.Errorf("invalid old price: %w", err)
		}
		record.OldPrice = oldPrice
	}

	return record, nil
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_rate"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// GetRateByID retrieves a rate DTO by ID.
func (rm *ReadModelImpl) GetRateByID(ctx context.Context, rateID string) (*contracts.RateDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_rate.TableName, spanner.Key{rateID}, m_rate.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to read rate: %w", err)
	}

	var data m_rate.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rate: %w", err)
	}
	return dataToDTO(&data)
}

// ListRates retrieves rates matching filter, highest priority first.
func (rm *ReadModelImpl) ListRates(ctx context.Context, filter *contracts.RateFilter) ([]*contracts.RateDTO, error) {
	if filter == nil {
		filter = &contracts.RateFilter{}
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	b := query.From(m_rate.TableName).
		Select(m_rate.Columns()...).
		WhereIf(filter.ItemType != "", query.Eq(m_rate.ItemType, domain.NormalizeItemType(filter.ItemType))).
		WhereIf(filter.ItemID != "", query.Eq(m_rate.ItemID, filter.ItemID)).
		WhereIf(filter.RateType != "", query.Eq(m_rate.RateType, filter.RateType)).
		WhereIf(filter.Currency != "", query.Eq(m_rate.Currency, filter.Currency))
	if filter.Active != nil {
		b = b.Where(query.Eq(m_rate.IsActive, *filter.Active))
	}
	stmt := b.OrderBy(m_rate.Priority, query.Desc).
		ThenBy(m_rate.CreatedAt, query.Asc).
		ThenBy(m_rate.RateID, query.Asc).
		Limit(int64(pageSize)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rates := make([]*contracts.RateDTO, 0, pageSize)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate rates: %w", err)
		}

		var data m_rate.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate: %w", err)
		}

		dto, err := dataToDTO(&data)
		if err != nil {
			return nil, err
		}
		rates = append(rates, dto)
	}

	return rates, nil
}

func dataToDTO(data *m_rate.Data) (*contracts.RateDTO, error) {
	basePrice, err := domain.NewMoney(data.BasePriceNumerator, data.BasePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid base price for rate %s: %w", data.RateID, err)
	}

	dto := &contracts.RateDTO{
		RateID:      data.RateID,
		Name:        data.Name,
		Description: data.Description,
		RateType:    data.RateType,
		BasePrice:   basePrice.String(),
		Currency:    data.Currency,
		ItemType:    data.ItemType,
		ItemID:      data.ItemID.StringVal,
		DaysOfWeek:  data.DaysOfWeek,
		Priority:    data.Priority,
		Active:      data.IsActive,
		Version:     data.Version,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if d := datePtr(data.StartDate); d != nil {
		dto.StartDate = d.String()
	}
	if d := datePtr(data.EndDate); d != nil {
		dto.EndDate = d.String()
	}
	if data.MinStay.Valid {
		dto.MinStay = &data.MinStay.Int64
	}
	if data.MaxStay.Valid {
		dto.MaxStay = &data.MaxStay.Int64
	}
	return dto, nil
}

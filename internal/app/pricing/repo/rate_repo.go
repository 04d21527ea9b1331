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

// RateRepo implements RateRepository and RateStore for Spanner.
type RateRepo struct {
	client *spanner.Client
	model  *m_rate.Model
}

// NewRateRepo creates a new RateRepo.
func NewRateRepo(client *spanner.Client) *RateRepo {
	return &RateRepo{
		client: client,
		model:  m_rate.NewModel(),
	}
}

var (
	_ contracts.RateRepository = (*RateRepo)(nil)
	_ contracts.RateStore      = (*RateRepo)(nil)
)

// InsertMut creates a mutation for inserting a new rate.
func (r *RateRepo) InsertMut(rate *domain.Rate) (*spanner.Mutation, error) {
	data, err := r.domainToData(rate)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a rate (only dirty fields).
// The version column is bumped so concurrent writers fail their version check.
func (r *RateRepo) UpdateMut(rate *domain.Rate) (*spanner.Mutation, error) {
	changes := rate.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_rate.Name] = rate.Name()
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_rate.Description] = rate.Description()
	}
	if changes.Dirty(domain.FieldRateType) {
		updates[m_rate.RateType] = string(rate.RateType())
	}
	if changes.Dirty(domain.FieldBasePrice) {
		num, den, err := rate.BasePrice().Fraction()
		if err != nil {
			return nil, fmt.Errorf("base price exceeds storage capacity: %w", err)
		}
		updates[m_rate.BasePriceNumerator] = num
		updates[m_rate.BasePriceDenominator] = den
	}
	if changes.Dirty(domain.FieldCurrency) {
		updates[m_rate.Currency] = string(rate.Currency())
	}
	if changes.Dirty(domain.FieldItemType) {
		updates[m_rate.ItemType] = rate.ItemType()
	}
	if changes.Dirty(domain.FieldItemID) {
		updates[m_rate.ItemID] = nullString(rate.ItemID())
	}
	if changes.Dirty(domain.FieldStartDate) {
		updates[m_rate.StartDate] = nullDate(rate.StartDate())
	}
	if changes.Dirty(domain.FieldEndDate) {
		updates[m_rate.EndDate] = nullDate(rate.EndDate())
	}
	if changes.Dirty(domain.FieldDaysOfWeek) {
		updates[m_rate.DaysOfWeek] = dayNames(rate.DaysOfWeek())
	}
	if changes.Dirty(domain.FieldMinStay) {
		updates[m_rate.MinStay] = nullInt(rate.MinStay())
	}
	if changes.Dirty(domain.FieldMaxStay) {
		updates[m_rate.MaxStay] = nullInt(rate.MaxStay())
	}
	if changes.Dirty(domain.FieldPriority) {
		updates[m_rate.Priority] = int64(rate.Priority())
	}
	if changes.Dirty(domain.FieldActive) {
		updates[m_rate.IsActive] = rate.IsActive()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	updates[m_rate.Version] = rate.Version() + 1

	return r.model.UpdateMut(rate.ID(), updates), nil
}

// GetByID retrieves a rate by ID, reconstructing the domain aggregate.
func (r *RateRepo) GetByID(ctx context.Context, rateID string) (*domain.Rate, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate.TableName, spanner.Key{rateID}, m_rate.Columns())
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
	return dataToRate(&data)
}

// Exists checks if a rate exists.
func (r *RateRepo) Exists(ctx context.Context, rateID string) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_rate.TableName, spanner.Key{rateID}, []string{m_rate.RateID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check rate existence: %w", err)
	}
	return true, nil
}

// ApplicableRates implements contracts.RateStore.
func (r *RateRepo) ApplicableRates(ctx context.Context, itemType, itemID string, date domain.Date) ([]*domain.Rate, error) {
	day := toCivil(date)
	stmt := query.From(m_rate.TableName).
		Select(m_rate.Columns()...).
		Where(query.Eq(m_rate.IsActive, true)).
		Where(query.Eq(m_rate.ItemType, domain.NormalizeItemType(itemType))).
		Where(query.OrNull(query.Eq(m_rate.ItemID, itemID))).
		Where(query.OrNull(query.Lte(m_rate.StartDate, day))).
		Where(query.OrNull(query.Gte(m_rate.EndDate, day))).
		OrderBy(m_rate.Priority, query.Desc).
		ThenBy(m_rate.CreatedAt, query.Asc).
		ThenBy(m_rate.RateID, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rates := make([]*domain.Rate, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query applicable rates: %w", err)
		}

		var data m_rate.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate: %w", err)
		}
		rate, err := dataToRate(&data)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// Modifiers implements contracts.RateStore.
func (r *RateRepo) Modifiers(ctx context.Context, rateID string) ([]*domain.RateModifier, error) {
	return listModifiers(ctx, r.client.Single(), rateID)
}

func (r *RateRepo) domainToData(rate *domain.Rate) (*m_rate.Data, error) {
	num, den, err := rate.BasePrice().Fraction()
	if err != nil {
		return nil, fmt.Errorf("price exceeds storage capacity: %w", err)
	}

	return &m_rate.Data{
		RateID:               rate.ID(),
		Name:                 rate.Name(),
		Description:          rate.Description(),
		RateType:             string(rate.RateType()),
		BasePriceNumerator:   num,
		BasePriceDenominator: den,
		Currency:             string(rate.Currency()),
		ItemType:             rate.ItemType(),
		ItemID:               nullString(rate.ItemID()),
		StartDate:            nullDate(rate.StartDate()),
		EndDate:              nullDate(rate.EndDate()),
		DaysOfWeek:           dayNames(rate.DaysOfWeek()),
		MinStay:              nullInt(rate.MinStay()),
		MaxStay:              nullInt(rate.MaxStay()),
		Priority:             int64(rate.Priority()),
		IsActive:             rate.IsActive(),
		Version:              rate.Version(),
		CreatedAt:            rate.CreatedAt(),
		UpdatedAt:            rate.UpdatedAt(),
	}, nil
}

func dataToRate(data *m_rate.Data) (*domain.Rate, error) {
	basePrice, err := domain.NewMoney(data.BasePriceNumerator, data.BasePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid base price for rate %s: %w", data.RateID, err)
	}

	terms := domain.RateTerms{
		Name:        data.Name,
		Description: data.Description,
		RateType:    domain.RateType(data.RateType),
		BasePrice:   basePrice,
		Currency:    domain.Currency(data.Currency),
		ItemType:    data.ItemType,
		ItemID:      data.ItemID.StringVal,
		StartDate:   datePtr(data.StartDate),
		EndDate:     datePtr(data.EndDate),
		DaysOfWeek:  parseDays(data.DaysOfWeek),
		MinStay:     intPtr(data.MinStay),
		MaxStay:     intPtr(data.MaxStay),
		Priority:    int(data.Priority),
	}
	return domain.ReconstructRate(data.RateID, terms, data.IsActive, data.Version, data.CreatedAt, data.UpdatedAt), nil
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_rate_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/query"
)

// querier is satisfied by single-use and read-write transactions.
type querier interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

// ModifierRepo implements RateModifierRepository for Spanner.
type ModifierRepo struct {
	client *spanner.Client
	model  *m_rate_modifier.Model
}

// NewModifierRepo creates a new ModifierRepo.
func NewModifierRepo(client *spanner.Client) contracts.RateModifierRepository {
	return &ModifierRepo{
		client: client,
		model:  m_rate_modifier.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a modifier under its rate.
func (r *ModifierRepo) InsertMut(m *domain.RateModifier) *spanner.Mutation {
	return r.model.InsertMut(&m_rate_modifier.Data{
		RateID:        m.RateID(),
		ModifierID:    m.ID(),
		Name:          m.Name(),
		ModifierType:  string(m.Type()),
		Value:         numeric(m.Value()),
		ConditionText: nullString(m.Condition()),
		CreatedAt:     m.CreatedAt(),
	})
}

// DeleteMut creates a mutation for deleting a modifier.
func (r *ModifierRepo) DeleteMut(rateID, modifierID string) *spanner.Mutation {
	return r.model.DeleteMut(rateID, modifierID)
}

// GetByID retrieves a modifier of a rate.
func (r *ModifierRepo) GetByID(ctx context.Context, rateID, modifierID string) (*domain.RateModifier, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate_modifier.TableName, spanner.Key{rateID, modifierID}, m_rate_modifier.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrModifierNotFound
		}
		return nil, fmt.Errorf("failed to read rate modifier: %w", err)
	}

	var data m_rate_modifier.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rate modifier: %w", err)
	}
	return dataToModifier(&data), nil
}

// ListByRate returns the modifiers of a rate in creation order.
func (r *ModifierRepo) ListByRate(ctx context.Context, rateID string) ([]*domain.RateModifier, error) {
	return listModifiers(ctx, r.client.Single(), rateID)
}

func listModifiers(ctx context.Context, q querier, rateID string) ([]*domain.RateModifier, error) {
	stmt := query.From(m_rate_modifier.TableName).
		Select(m_rate_modifier.Columns()...).
		Where(query.Eq(m_rate_modifier.RateID, rateID)).
		OrderBy(m_rate_modifier.CreatedAt, query.Asc).
		ThenBy(m_rate_modifier.ModifierID, query.Asc).
		Build()

	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	modifiers := make([]*domain.RateModifier, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query rate modifiers: %w", err)
		}

		var data m_rate_modifier.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate modifier: %w", err)
		}
		modifiers = append(modifiers, dataToModifier(&data))
	}
	return modifiers, nil
}

func dataToModifier(data *m_rate_modifier.Data) *domain.RateModifier {
	return domain.ReconstructRateModifier(
		data.ModifierID,
		data.RateID,
		data.Name,
		domain.ModifierType(data.ModifierType),
		&data.Value,
		data.ConditionText.StringVal,
		data.CreatedAt,
	)
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/query"
)

// SeasonalRuleRepo implements SeasonalRuleRepository and SeasonalRuleStore for Spanner.
type SeasonalRuleRepo struct {
	client *spanner.Client
	model  *m_seasonal_rule.Model
}

// NewSeasonalRuleRepo creates a new SeasonalRuleRepo.
func NewSeasonalRuleRepo(client *spanner.Client) *SeasonalRuleRepo {
	return &SeasonalRuleRepo{
		client: client,
		model:  m_seasonal_rule.NewModel(),
	}
}

var (
	_ contracts.SeasonalRuleRepository = (*SeasonalRuleRepo)(nil)
	_ contracts.SeasonalRuleStore      = (*SeasonalRuleRepo)(nil)
)

// SaveMut creates an insert-or-update mutation for the rule.
func (r *SeasonalRuleRepo) SaveMut(rule *domain.SeasonalRule) *spanner.Mutation {
	return r.model.SaveMut(&m_seasonal_rule.Data{
		RuleID:     rule.ID(),
		Name:       rule.Name(),
		StartDay:   rule.Start().String(),
		EndDay:     rule.End().String(),
		Multiplier: numeric(rule.Multiplier()),
		Categories: rule.Categories(),
		Priority:   int64(rule.Priority()),
		IsActive:   rule.IsActive(),
		CreatedAt:  rule.CreatedAt(),
	})
}

// DeleteMut creates a mutation for deleting a rule.
func (r *SeasonalRuleRepo) DeleteMut(ruleID string) *spanner.Mutation {
	return r.model.DeleteMut(ruleID)
}

// GetByID retrieves a rule by ID.
func (r *SeasonalRuleRepo) GetByID(ctx context.Context, ruleID string) (*domain.SeasonalRule, error) {
	row, err := r.client.Single().ReadRow(ctx, m_seasonal_rule.TableName, spanner.Key{ruleID}, m_seasonal_rule.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrSeasonalRuleNotFound
		}
		return nil, fmt.Errorf("failed to read seasonal rule: %w", err)
	}

	var data m_seasonal_rule.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seasonal rule: %w", err)
	}
	return dataToSeasonalRule(&data)
}

// List returns rules ordered by priority descending.
func (r *SeasonalRuleRepo) List(ctx context.Context, activeOnly bool) ([]*domain.SeasonalRule, error) {
	stmt := query.From(m_seasonal_rule.TableName).
		Select(m_seasonal_rule.Columns()...).
		WhereIf(activeOnly, query.Eq(m_seasonal_rule.IsActive, true)).
		OrderBy(m_seasonal_rule.Priority, query.Desc).
		ThenBy(m_seasonal_rule.RuleID, query.Asc).
		Build()
	return r.query(ctx, stmt)
}

// ActiveRules implements contracts.SeasonalRuleStore.
func (r *SeasonalRuleRepo) ActiveRules(ctx context.Context, category string) ([]*domain.SeasonalRule, error) {
	category = domain.NormalizeItemType(category)
	stmt := query.From(m_seasonal_rule.TableName).
		Select(m_seasonal_rule.Columns()...).
		Where(query.Eq(m_seasonal_rule.IsActive, true)).
		OrderBy(m_seasonal_rule.Priority, query.Desc).
		ThenBy(m_seasonal_rule.RuleID, query.Asc).
		Build()

	rules, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	// Category arrays are small; filtering here keeps empty-means-all in one place.
	out := rules[:0]
	for _, rule := range rules {
		if coversCategory(rule.Categories(), category) {
			out = append(out, rule)
		}
	}
	return out, nil
}

// ActiveRulesFor implements contracts.SeasonalRuleStore.
func (r *SeasonalRuleRepo) ActiveRulesFor(ctx context.Context, category string, date domain.Date) ([]*domain.SeasonalRule, error) {
	rules, err := r.ActiveRules(ctx, category)
	if err != nil {
		return nil, err
	}
	out := rules[:0]
	for _, rule := range rules {
		if rule.AppliesTo(category, date) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *SeasonalRuleRepo) query(ctx context.Context, stmt spanner.Statement) ([]*domain.SeasonalRule, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rules := make([]*domain.SeasonalRule, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query seasonal rules: %w", err)
		}

		var data m_seasonal_rule.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse seasonal rule: %w", err)
		}
		rule, err := dataToSeasonalRule(&data)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func coversCategory(categories []string, category string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

func dataToSeasonalRule(data *m_seasonal_rule.Data) (*domain.SeasonalRule, error) {
	start, err := domain.ParseMonthDay(data.StartDay)
	if err != nil {
		return nil, fmt.Errorf("invalid start of seasonal rule %s: %w", data.RuleID, err)
	}
	end, err := domain.ParseMonthDay(data.EndDay)
	if err != nil {
		return nil, fmt.Errorf("invalid end of seasonal rule %s: %w", data.RuleID, err)
	}
	return domain.ReconstructSeasonalRule(
		data.RuleID,
		data.Name,
		start,
		end,
		&data.Multiplier,
		data.Categories,
		int(data.Priority),
		data.IsActive,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

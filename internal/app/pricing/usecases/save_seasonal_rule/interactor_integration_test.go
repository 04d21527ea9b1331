//go:build integration

package save_seasonal_rule_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/replace_dynamic_config"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/save_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/testutil"
)

func TestSeasonalRuleLifecycle(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	rules := repo.NewSeasonalRuleRepo(client)
	outbox := repo.NewOutboxRepo()
	comm := committer.NewCommitter(client)

	save := save_seasonal_rule.NewInteractor(rules, outbox, comm, clk)
	del := delete_seasonal_rule.NewInteractor(rules, outbox, comm, clk)

	params := domain.SeasonalRuleParams{
		Name:       "Winter holidays",
		Start:      "12-20",
		End:        "01-05",
		Multiplier: big.NewRat(3, 2),
		Categories: []string{"chalet"},
		Active:     true,
	}
	ruleID, err := save.Execute(ctx, &save_seasonal_rule.Request{SeasonalRuleParams: params})
	require.NoError(t, err)

	newYear, err := domain.ParseDate("2027-01-02")
	require.NoError(t, err)
	active, err := rules.ActiveRulesFor(ctx, "chalet", newYear)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 0, active[0].Multiplier().Cmp(big.NewRat(3, 2)))

	params.Multiplier = big.NewRat(2, 1)
	_, err = save.Execute(ctx, &save_seasonal_rule.Request{RuleID: ruleID, SeasonalRuleParams: params})
	require.NoError(t, err)

	stored, err := rules.GetByID(ctx, ruleID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Multiplier().Cmp(big.NewRat(2, 1)))

	require.NoError(t, del.Execute(ctx, &delete_seasonal_rule.Request{RuleID: ruleID}))
	_, err = rules.GetByID(ctx, ruleID)
	assert.ErrorIs(t, err, domain.ErrSeasonalRuleNotFound)

	testutil.AssertOutboxEvent(t, client, "seasonal_rule.saved", ruleID)
	testutil.AssertOutboxEvent(t, client, "seasonal_rule.deleted", ruleID)
}

func TestReplaceDynamicConfig_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	configs := repo.NewDynamicConfigRepo(client)
	replace := replace_dynamic_config.NewInteractor(configs, repo.NewOutboxRepo(),
		committer.NewCommitter(client), clock.NewMockClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	_, err := configs.Get(ctx, "rooms")
	assert.ErrorIs(t, err, domain.ErrDynamicConfigNotFound)

	cfg := domain.DefaultDynamicConfig("Rooms")
	cfg.Enabled = true
	cfg.WeekendMultiplier = big.NewRat(6, 5)

	saved, err := replace.Execute(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "rooms", saved.Domain)

	loaded, err := configs.Get(ctx, "rooms")
	require.NoError(t, err)
	assert.True(t, loaded.Enabled)
	assert.Equal(t, 0, loaded.WeekendMultiplier.Cmp(big.NewRat(6, 5)))
	assert.NotEmpty(t, loaded.WeekendDays)
}

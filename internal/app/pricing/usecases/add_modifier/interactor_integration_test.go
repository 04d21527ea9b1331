//go:build integration

package add_modifier_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/cache"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/add_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/remove_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/testutil"
)

func TestAddModifier_RequiresParentRate(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	add := add_modifier.NewInteractor(repo.NewRateRepo(client), repo.NewModifierRepo(client), repo.NewOutboxRepo(),
		cache.NopInvalidator{}, committer.NewCommitter(client), clock.NewRealClock())

	_, err := add.Execute(context.Background(), &add_modifier.Request{
		RateID: uuid.New().String(),
		ModifierParams: domain.ModifierParams{
			Name:  "Ski pass",
			Type:  "fixed",
			Value: big.NewRat(40, 1),
		},
	})
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestAddModifier_AddThenRemove(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	rateID := testutil.CreateTestRate(t, client, "chalet", 30000)
	rates := repo.NewRateRepo(client)
	modifiers := repo.NewModifierRepo(client)
	outbox := repo.NewOutboxRepo()
	comm := committer.NewCommitter(client)
	clk := clock.NewRealClock()

	add := add_modifier.NewInteractor(rates, modifiers, outbox, cache.NopInvalidator{}, comm, clk)
	remove := remove_modifier.NewInteractor(rates, modifiers, outbox, cache.NopInvalidator{}, comm, clk)

	modifierID, err := add.Execute(ctx, &add_modifier.Request{
		RateID: rateID,
		ModifierParams: domain.ModifierParams{
			Name:  "Holiday surcharge",
			Type:  "percentage",
			Value: big.NewRat(15, 1),
		},
	})
	require.NoError(t, err)

	listed, err := modifiers.ListByRate(ctx, rateID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, modifierID, listed[0].ID())
	testutil.AssertOutboxEvent(t, client, "rate.modifier.added", rateID)

	require.NoError(t, remove.Execute(ctx, &remove_modifier.Request{RateID: rateID, ModifierID: modifierID}))
	testutil.AssertOutboxEvent(t, client, "rate.modifier.removed", rateID)

	listed, err = modifiers.ListByRate(ctx, rateID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	err = remove.Execute(ctx, &remove_modifier.Request{RateID: rateID, ModifierID: modifierID})
	assert.ErrorIs(t, err, domain.ErrModifierNotFound)
}

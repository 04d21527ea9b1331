//go:build integration

package delete_rate_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/cache"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/activate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/deactivate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_rate"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/testutil"
)

func TestRateLifecycle(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	rateID := testutil.CreateTestRate(t, client, "chalet", 30000)
	rates := repo.NewRateRepo(client)
	outbox := repo.NewOutboxRepo()
	comm := committer.NewCommitter(client)
	clk := clock.NewRealClock()

	activate := activate_rate.NewInteractor(rates, outbox, cache.NopInvalidator{}, comm, clk)
	deactivate := deactivate_rate.NewInteractor(rates, outbox, cache.NopInvalidator{}, comm, clk)
	del := delete_rate.NewInteractor(deactivate)

	err := activate.Execute(ctx, &activate_rate.Request{RateID: rateID})
	assert.ErrorIs(t, err, domain.ErrRateAlreadyActive)

	require.NoError(t, del.Execute(ctx, &delete_rate.Request{RateID: rateID}))
	testutil.AssertOutboxEvent(t, client, "rate.deactivated", rateID)

	rate, err := rates.GetByID(ctx, rateID)
	require.NoError(t, err)
	assert.False(t, rate.IsActive())
	version := rate.Version()

	// A second delete is a no-op.
	require.NoError(t, del.Execute(ctx, &delete_rate.Request{RateID: rateID}))
	rate, err = rates.GetByID(ctx, rateID)
	require.NoError(t, err)
	assert.Equal(t, version, rate.Version())

	err = deactivate.Execute(ctx, &deactivate_rate.Request{RateID: rateID})
	assert.ErrorIs(t, err, domain.ErrRateInactive)

	require.NoError(t, activate.Execute(ctx, &activate_rate.Request{RateID: rateID}))
	testutil.AssertOutboxEvent(t, client, "rate.activated", rateID)

	rate, err = rates.GetByID(ctx, rateID)
	require.NoError(t, err)
	assert.True(t, rate.IsActive())
}

func TestDeleteRate_Missing(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	deactivate := deactivate_rate.NewInteractor(repo.NewRateRepo(client), repo.NewOutboxRepo(),
		cache.NopInvalidator{}, committer.NewCommitter(client), clock.NewRealClock())

	err := delete_rate.NewInteractor(deactivate).Execute(context.Background(), &delete_rate.Request{RateID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestActivateRate_StaleVersion(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	rateID := testutil.CreateTestRate(t, client, "room", 12000)
	rates := repo.NewRateRepo(client)
	comm := committer.NewCommitter(client)
	clk := clock.NewRealClock()

	deactivate := deactivate_rate.NewInteractor(rates, repo.NewOutboxRepo(), cache.NopInvalidator{}, comm, clk)
	activate := activate_rate.NewInteractor(rates, repo.NewOutboxRepo(), cache.NopInvalidator{}, comm, clk)

	require.NoError(t, deactivate.Execute(ctx, &deactivate_rate.Request{RateID: rateID, Version: 1}))

	err := activate.Execute(ctx, &activate_rate.Request{RateID: rateID, Version: 1})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

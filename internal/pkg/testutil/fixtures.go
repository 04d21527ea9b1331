package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/models/m_coupon"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_gift_card"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_loyalty_account"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_rate"
)

// CreateTestRate inserts an active standard rate for itemType at the given price in cents.
func CreateTestRate(t *testing.T, client *spanner.Client, itemType string, cents int64) string {
	t.Helper()

	rateID := uuid.New().String()
	data := &m_rate.Data{
		RateID:               rateID,
		Name:                 "Test rate",
		Description:          "Rate created by a test fixture",
		RateType:             "standard",
		BasePriceNumerator:   cents,
		BasePriceDenominator: 100,
		Currency:             "USD",
		ItemType:             itemType,
		Priority:             0,
		IsActive:             true,
		Version:              1,
	}

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_rate.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to create test rate")

	return rateID
}

// CreateTestCoupon inserts an active coupon with no window or scope.
func CreateTestCoupon(t *testing.T, client *spanner.Client, code, discountType string, value *big.Rat, usageLimit int64) {
	t.Helper()

	insertStruct(t, client, m_coupon.TableName, &m_coupon.Data{
		Code:         code,
		CouponID:     uuid.New().String(),
		DiscountType: discountType,
		Value:        *value,
		UsageLimit:   usageLimit,
		IsActive:     true,
	})
}

// CreateTestGiftCard inserts an active, non-expiring gift card.
func CreateTestGiftCard(t *testing.T, client *spanner.Client, code string, balance *big.Rat) {
	t.Helper()

	insertStruct(t, client, m_gift_card.TableName, &m_gift_card.Data{
		Code:       code,
		GiftCardID: uuid.New().String(),
		Balance:    *balance,
		Currency:   "USD",
		IsActive:   true,
	})
}

// CreateTestLoyaltyAccount inserts an account holding points.
func CreateTestLoyaltyAccount(t *testing.T, client *spanner.Client, userID string, points int64) {
	t.Helper()

	insertStruct(t, client, m_loyalty_account.TableName, &m_loyalty_account.Data{
		UserID:         userID,
		Points:         points,
		LifetimePoints: points,
		UpdatedAt:      time.Now().UTC(),
	})
}

// AssertOutboxEvent verifies an outbox event of eventType exists for aggregateID.
func AssertOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID string) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: "SELECT event_id FROM outbox_events WHERE event_type = @eventType AND aggregate_id = @aggregateID",
		Params: map[string]interface{}{
			"eventType":   eventType,
			"aggregateID": aggregateID,
		},
	})
	defer iter.Stop()

	_, err := iter.Next()
	require.NoError(t, err, "outbox event %s not found for %s", eventType, aggregateID)
}

func insertStruct(t *testing.T, client *spanner.Client, table string, data interface{}) {
	t.Helper()

	mut, err := spanner.InsertStruct(table, data)
	require.NoError(t, err)
	_, err = client.Apply(context.Background(), []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to insert into %s", table)
}

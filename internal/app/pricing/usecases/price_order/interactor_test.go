package price_order

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/discount"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

func setup(t *testing.T) (*Interactor, *memory.Redemptions) {
	t.Helper()
	store := memory.NewRedemptions(clock.NewMockClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)))
	store.AddCoupon(domain.Coupon{ID: "cpn-1", Code: "SAVE20", DiscountType: domain.ModifierFixed, Value: big.NewRat(20, 1), Active: true})
	store.AddGiftCard(domain.GiftCard{ID: "gc-1", Code: "GIFT30", Balance: domain.MustMoney(30, 1), Currency: "USD", Active: true})
	store.AddLoyaltyAccount(domain.LoyaltyAccount{UserID: "user-1", Points: 5000})

	cfg := discount.Config{StepTimeout: time.Second}
	pipeline := discount.NewPipeline(store, cfg, zap.NewNop())
	accrual := discount.NewAccrual(store, big.NewRat(1, 1), cfg, zap.NewNop())
	return NewInteractor(pipeline, accrual, big.NewRat(11, 100)), store
}

func TestPriceOrder_StackedDiscounts(t *testing.T) {
	interactor, store := setup(t)

	total, err := interactor.Execute(context.Background(), &Request{
		OrderID:    "order-1",
		CustomerID: "user-1",
		Module:     "restaurant",
		Lines: []Line{
			{UnitPrice: domain.MustMoney(25, 1), Quantity: 2},
			{UnitPrice: domain.MustMoney(50, 1), Quantity: 1},
		},
		CouponCode:    "save20",
		GiftCards:     []discount.GiftCardRequest{{Code: "GIFT30"}},
		LoyaltyPoints: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", total.OrderID)
	assert.Equal(t, "100.00", total.Subtotal.String())
	assert.Equal(t, "8.80", total.TaxAmount.String())
	assert.Equal(t, "60.00", total.DiscountAmount.String())
	assert.Equal(t, "48.80", total.FinalTotal.String())
	assert.Equal(t, int64(48), total.LoyaltyPointsEarned)

	account, ok := store.LoyaltyAccount("user-1")
	require.True(t, ok)
	assert.Equal(t, int64(4048), account.Points)
}

func TestPriceOrder_TaxAndServiceRounding(t *testing.T) {
	interactor, _ := setup(t)

	total, err := interactor.Execute(context.Background(), &Request{
		Lines:             []Line{{UnitPrice: domain.MustMoney(3333, 100), Quantity: 1}},
		TaxRate:           big.NewRat(7, 100),
		ServiceChargeRate: big.NewRat(10, 100),
		DeliveryFee:       domain.MustMoney(5, 1),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(total.OrderID)
	assert.NoError(t, err, "missing order id is generated")
	assert.Equal(t, "2.33", total.TaxAmount.String())
	assert.Equal(t, "3.33", total.ServiceCharge.String())
	assert.Equal(t, "43.99", total.PreDiscountTotal.String())
	assert.Equal(t, "43.99", total.FinalTotal.String())
	assert.Empty(t, total.Steps)
}

func TestPriceOrder_FailedRedemptionIsNotFatal(t *testing.T) {
	interactor, _ := setup(t)

	total, err := interactor.Execute(context.Background(), &Request{
		OrderID:    "order-2",
		Lines:      []Line{{UnitPrice: domain.MustMoney(100, 1), Quantity: 1}},
		CouponCode: "NOPE",
	})
	require.NoError(t, err)

	require.Len(t, total.Steps, 1)
	assert.Equal(t, domain.StepFailed, total.Steps[0].Status)
	assert.Equal(t, "111.00", total.FinalTotal.String())
}

func TestPriceOrder_Validation(t *testing.T) {
	interactor, _ := setup(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{"no lines", &Request{}},
		{"zero quantity", &Request{Lines: []Line{{UnitPrice: domain.MustMoney(1, 1), Quantity: 0}}}},
		{"negative price", &Request{Lines: []Line{{UnitPrice: domain.MustMoney(-1, 1), Quantity: 1}}}},
		{"missing price", &Request{Lines: []Line{{Quantity: 1}}}},
		{"negative tax", &Request{Lines: []Line{{UnitPrice: domain.MustMoney(1, 1), Quantity: 1}}, TaxRate: big.NewRat(-1, 10)}},
		{"negative delivery", &Request{Lines: []Line{{UnitPrice: domain.MustMoney(1, 1), Quantity: 1}}, DeliveryFee: domain.MustMoney(-2, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interactor.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidOrder)
		})
	}
}

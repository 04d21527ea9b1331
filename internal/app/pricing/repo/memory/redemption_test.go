package memory

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

func newRedemptions(t *testing.T) (*Redemptions, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	s := NewRedemptions(clk)
	until := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	s.AddCoupon(domain.Coupon{
		ID: "cpn-1", Code: " summer10 ", DiscountType: domain.ModifierPercentage,
		Value: big.NewRat(10, 1), UsageLimit: 2, ValidUntil: &until, Active: true,
	})
	s.AddGiftCard(domain.GiftCard{ID: "gc-1", Code: "gift50", Balance: domain.MustMoney(50, 1), Active: true})
	s.AddLoyaltyAccount(domain.LoyaltyAccount{UserID: "user-1", Points: 500})
	return s, clk
}

func TestRedemptions_ApplyCoupon(t *testing.T) {
	ctx := context.Background()
	s, clk := newRedemptions(t)
	req := contracts.CouponRequest{Code: "SUMMER10", PreTaxTotal: domain.MustMoney(120, 1), OrderID: "o-1"}

	res, err := s.ApplyCoupon(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "12.00", res.Discount.String())
	assert.Equal(t, "cpn-1", res.CouponID)

	// replaying the same order does not count another use
	again, err := s.ApplyCoupon(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.Discount.Equals(again.Discount))
	c, _ := s.Coupon("summer10")
	assert.Equal(t, int64(1), c.TimesUsed)

	req.OrderID = "o-2"
	_, err = s.ApplyCoupon(ctx, req)
	require.NoError(t, err)

	req.OrderID = "o-3"
	_, err = s.ApplyCoupon(ctx, req)
	assert.ErrorIs(t, err, domain.ErrRedemptionDeclined, "usage limit reached")

	s.AddCoupon(domain.Coupon{ID: "cpn-2", Code: "LATE", DiscountType: domain.ModifierFixed, Value: big.NewRat(5, 1), Active: true,
		ValidUntil: func() *time.Time { v := clk.Now().Add(time.Hour); return &v }()})
	clk.Advance(2 * time.Hour)
	_, err = s.ApplyCoupon(ctx, contracts.CouponRequest{Code: "late", PreTaxTotal: domain.MustMoney(10, 1), OrderID: "o-4"})
	assert.ErrorIs(t, err, domain.ErrRedemptionDeclined, "expired")

	_, err = s.ApplyCoupon(ctx, contracts.CouponRequest{Code: "missing", PreTaxTotal: domain.MustMoney(10, 1), OrderID: "o-5"})
	assert.ErrorIs(t, err, domain.ErrRedemptionDeclined)
}

func TestRedemptions_RedeemGiftCard(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedemptions(t)

	res, err := s.RedeemGiftCard(ctx, "GIFT50", domain.MustMoney(80, 1), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "50.00", res.AmountRedeemed.String(), "capped at the balance")

	replay, err := s.RedeemGiftCard(ctx, "gift50", domain.MustMoney(80, 1), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "50.00", replay.AmountRedeemed.String())

	_, err = s.RedeemGiftCard(ctx, "gift50", domain.MustMoney(1, 1), "o-2")
	assert.ErrorIs(t, err, domain.ErrRedemptionDeclined)

	card, _ := s.GiftCard("GIFT50")
	assert.True(t, card.Balance.IsZero())
}

func TestRedemptions_Loyalty(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedemptions(t)
	pointValue := big.NewRat(1, 100)

	res, err := s.RedeemLoyaltyPoints(ctx, "user-1", 300, "o-1", pointValue)
	require.NoError(t, err)
	assert.Equal(t, "3.00", res.Discount.String())

	_, err = s.RedeemLoyaltyPoints(ctx, "user-1", 300, "o-2", pointValue)
	assert.ErrorIs(t, err, domain.ErrRedemptionDeclined, "only 200 points left")

	earned, err := s.EarnLoyaltyPoints(ctx, "user-1", domain.MustMoney(4899, 100), "o-1", big.NewRat(2, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(97), earned.PointsEarned)

	replay, err := s.EarnLoyaltyPoints(ctx, "user-1", domain.MustMoney(4899, 100), "o-1", big.NewRat(2, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(97), replay.PointsEarned)

	account, _ := s.LoyaltyAccount("user-1")
	assert.Equal(t, int64(297), account.Points)
	assert.Equal(t, int64(97), account.LifetimePoints)
}

func TestRedemptions_ConcurrentOrdersConsumeOnce(t *testing.T) {
	s, _ := newRedemptions(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	total := domain.Zero()

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.RedeemGiftCard(context.Background(), "GIFT50", domain.MustMoney(10, 1), "o-"+string(rune('a'+i)))
			if err != nil {
				return
			}
			mu.Lock()
			total = total.Add(res.AmountRedeemed)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "50.00", total.String())
	card, _ := s.GiftCard("GIFT50")
	assert.True(t, card.Balance.IsZero())
	assert.Len(t, s.Ledger(), 5)
}

func TestRedemptions_CanceledContext(t *testing.T) {
	s, _ := newRedemptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RedeemGiftCard(ctx, "GIFT50", domain.MustMoney(10, 1), "o-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Ledger())
}

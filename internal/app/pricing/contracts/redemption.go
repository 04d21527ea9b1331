package contracts

import (
	"context"
	"math/big"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// CouponRequest asks for a coupon to be applied to an order.
type CouponRequest struct {
	Code        string
	UserID      string
	PreTaxTotal *domain.Money
	OrderID     string
	Module      string
}

// CouponResult is the outcome of an applied coupon.
type CouponResult struct {
	CouponID string
	Code     string
	Discount *domain.Money
}

// GiftCardResult is the outcome of a gift card redemption.
type GiftCardResult struct {
	GiftCardID     string
	Code           string
	AmountRedeemed *domain.Money
}

// LoyaltyRedeemResult is the outcome of a loyalty points redemption.
type LoyaltyRedeemResult struct {
	PointsRedeemed int64
	Discount       *domain.Money
}

// LoyaltyEarnResult is the outcome of a loyalty accrual.
type LoyaltyEarnResult struct {
	PointsEarned int64
}

// RedemptionService consumes coupon, gift card and loyalty balances.
//
// Every call is atomic and keyed by orderID: repeating a call with the same
// reference and order id returns the originally recorded outcome and consumes
// nothing further. Declines wrap domain.ErrRedemptionDeclined.
type RedemptionService interface {
	ApplyCoupon(ctx context.Context, req CouponRequest) (CouponResult, error)
	RedeemGiftCard(ctx context.Context, code string, amount *domain.Money, orderID string) (GiftCardResult, error)
	RedeemLoyaltyPoints(ctx context.Context, userID string, points int64, orderID string, pointValue *big.Rat) (LoyaltyRedeemResult, error)
	EarnLoyaltyPoints(ctx context.Context, userID string, orderTotal *domain.Money, orderID string, pointsPerDollar *big.Rat) (LoyaltyEarnResult, error)
}

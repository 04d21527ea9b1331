package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// RedemptionKind identifies the balance a ledger entry consumed or credited.
type RedemptionKind string

const (
	RedemptionCoupon        RedemptionKind = "coupon"
	RedemptionGiftCard      RedemptionKind = "gift_card"
	RedemptionLoyaltyRedeem RedemptionKind = "loyalty_redeem"
	RedemptionLoyaltyEarn   RedemptionKind = "loyalty_earn"
)

// Redemption is a ledger entry. At most one exists per (Kind, Reference, OrderID).
type Redemption struct {
	Kind      RedemptionKind
	Reference string // coupon code, gift card code or user id
	OrderID   string
	TargetID  string // coupon id, gift card id or user id
	Amount    *Money
	Points    int64
	CreatedAt time.Time
}

// Coupon is a pre-tax discount code.
type Coupon struct {
	ID             string
	Code           string
	DiscountType   ModifierType
	Value          *big.Rat // percent for percentage coupons, amount for fixed
	MinOrderAmount *Money
	MaxDiscount    *Money
	UsageLimit     int64 // 0 = unlimited
	TimesUsed      int64
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	ModuleScope    string // empty = every module
	Active         bool
}

// NormalizeCode is the canonical form redemption codes are stored and matched in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountFor returns the discount the coupon grants on a pre-tax total, or a declined error.
// The discount never exceeds the pre-tax total.
func (c Coupon) DiscountFor(preTaxTotal *Money, module string, now time.Time) (*Money, error) {
	switch {
	case !c.Active:
		return nil, fmt.Errorf("%w: coupon %s is inactive", ErrRedemptionDeclined, c.Code)
	case c.ValidFrom != nil && now.Before(*c.ValidFrom):
		return nil, fmt.Errorf("%w: coupon %s is not yet valid", ErrRedemptionDeclined, c.Code)
	case c.ValidUntil != nil && now.After(*c.ValidUntil):
		return nil, fmt.Errorf("%w: coupon %s has expired", ErrRedemptionDeclined, c.Code)
	case c.UsageLimit > 0 && c.TimesUsed >= c.UsageLimit:
		return nil, fmt.Errorf("%w: coupon %s usage limit reached", ErrRedemptionDeclined, c.Code)
	case c.ModuleScope != "" && !strings.EqualFold(c.ModuleScope, strings.TrimSpace(module)):
		return nil, fmt.Errorf("%w: coupon %s is not valid for module %q", ErrRedemptionDeclined, c.Code, module)
	case c.MinOrderAmount != nil && preTaxTotal.LessThan(c.MinOrderAmount):
		return nil, fmt.Errorf("%w: order total below coupon minimum %s", ErrRedemptionDeclined, c.MinOrderAmount)
	}

	var discount *Money
	switch c.DiscountType {
	case ModifierPercentage:
		discount = preTaxTotal.MultiplyByRat(new(big.Rat).Quo(c.Value, hundred)).Round(2)
	case ModifierFixed:
		discount = NewMoneyFromRat(c.Value)
	default:
		return nil, fmt.Errorf("%w: coupon %s has unknown type %q", ErrRedemptionDeclined, c.Code, c.DiscountType)
	}

	if c.MaxDiscount != nil {
		discount = discount.Min(c.MaxDiscount)
	}
	return discount.Min(preTaxTotal).NonNegative(), nil
}

// GiftCard is a stored-value card redeemed post-tax.
type GiftCard struct {
	ID        string
	Code      string
	Balance   *Money
	Currency  Currency
	Active    bool
	ExpiresAt *time.Time
}

// RedeemableAmount returns min(requested, balance), or a declined error.
func (g GiftCard) RedeemableAmount(requested *Money, now time.Time) (*Money, error) {
	switch {
	case !g.Active:
		return nil, fmt.Errorf("%w: gift card %s is inactive", ErrRedemptionDeclined, g.Code)
	case g.ExpiresAt != nil && now.After(*g.ExpiresAt):
		return nil, fmt.Errorf("%w: gift card %s has expired", ErrRedemptionDeclined, g.Code)
	case !g.Balance.IsPositive():
		return nil, fmt.Errorf("%w: gift card %s has no remaining balance", ErrRedemptionDeclined, g.Code)
	case !requested.IsPositive():
		return nil, fmt.Errorf("%w: requested amount must be positive", ErrRedemptionDeclined)
	}
	return requested.Min(g.Balance), nil
}

// LoyaltyAccount is a customer's points balance.
type LoyaltyAccount struct {
	UserID         string
	Points         int64
	LifetimePoints int64
}

// CheckRedeem verifies the account can cover points.
func (a LoyaltyAccount) CheckRedeem(points int64) error {
	if points <= 0 {
		return fmt.Errorf("%w: points to redeem must be positive", ErrRedemptionDeclined)
	}
	if a.Points < points {
		return fmt.Errorf("%w: insufficient points (have %d, need %d)", ErrRedemptionDeclined, a.Points, points)
	}
	return nil
}

// PointsFor returns floor(amount × pointsPerDollar).
func PointsFor(amount *Money, pointsPerDollar *big.Rat) int64 {
	if !amount.IsPositive() || pointsPerDollar == nil || pointsPerDollar.Sign() <= 0 {
		return 0
	}
	r := new(big.Rat).Mul(amount.rat, pointsPerDollar)
	return new(big.Int).Quo(r.Num(), r.Denom()).Int64()
}

// PointsValue returns the dollar value of points at pointValue per point.
func PointsValue(points int64, pointValue *big.Rat) *Money {
	return NewMoneyFromRat(new(big.Rat).Mul(big.NewRat(points, 1), pointValue))
}

// PointsCoveredBy returns the largest point count whose value does not exceed amount.
func PointsCoveredBy(amount *Money, pointValue *big.Rat) int64 {
	if !amount.IsPositive() || pointValue == nil || pointValue.Sign() <= 0 {
		return 0
	}
	r := new(big.Rat).Quo(amount.rat, pointValue)
	return new(big.Int).Quo(r.Num(), r.Denom()).Int64()
}

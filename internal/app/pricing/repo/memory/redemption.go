package memory

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

// Redemptions is an in-memory RedemptionService for tests and local development.
// A single mutex makes every balance check-and-consume atomic, and the ledger
// makes each (kind, reference, order) pair consume at most once.
type Redemptions struct {
	mu        sync.Mutex
	clock     clock.Clock
	coupons   map[string]domain.Coupon
	giftCards map[string]domain.GiftCard
	accounts  map[string]domain.LoyaltyAccount
	ledger    map[string]domain.Redemption
}

// NewRedemptions creates an empty redemption store.
func NewRedemptions(clk clock.Clock) *Redemptions {
	return &Redemptions{
		clock:     clk,
		coupons:   make(map[string]domain.Coupon),
		giftCards: make(map[string]domain.GiftCard),
		accounts:  make(map[string]domain.LoyaltyAccount),
		ledger:    make(map[string]domain.Redemption),
	}
}

// AddCoupon registers a coupon.
func (s *Redemptions) AddCoupon(c domain.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Code = domain.NormalizeCode(c.Code)
	s.coupons[c.Code] = c
}

// AddGiftCard registers a gift card.
func (s *Redemptions) AddGiftCard(g domain.GiftCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.Code = domain.NormalizeCode(g.Code)
	s.giftCards[g.Code] = g
}

// AddLoyaltyAccount registers a loyalty account.
func (s *Redemptions) AddLoyaltyAccount(a domain.LoyaltyAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.UserID] = a
}

// Coupon returns the current state of a coupon.
func (s *Redemptions) Coupon(code string) (domain.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[domain.NormalizeCode(code)]
	return c, ok
}

// GiftCard returns the current state of a gift card.
func (s *Redemptions) GiftCard(code string) (domain.GiftCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.giftCards[domain.NormalizeCode(code)]
	return g, ok
}

// LoyaltyAccount returns the current state of a loyalty account.
func (s *Redemptions) LoyaltyAccount(userID string) (domain.LoyaltyAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[userID]
	return a, ok
}

// ApplyCoupon implements contracts.RedemptionService.
func (s *Redemptions) ApplyCoupon(ctx context.Context, req contracts.CouponRequest) (contracts.CouponResult, error) {
	if err := ctx.Err(); err != nil {
		return contracts.CouponResult{}, err
	}
	code := domain.NormalizeCode(req.Code)
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(domain.RedemptionCoupon, code, req.OrderID)
	if prior, ok := s.ledger[key]; ok {
		return contracts.CouponResult{CouponID: prior.TargetID, Code: code, Discount: prior.Amount.Copy()}, nil
	}

	coupon, ok := s.coupons[code]
	if !ok {
		return contracts.CouponResult{}, fmt.Errorf("%w: coupon %s not found", domain.ErrRedemptionDeclined, code)
	}
	now := s.clock.Now()
	discount, err := coupon.DiscountFor(req.PreTaxTotal, req.Module, now)
	if err != nil {
		return contracts.CouponResult{}, err
	}

	coupon.TimesUsed++
	s.coupons[code] = coupon
	s.ledger[key] = domain.Redemption{
		Kind: domain.RedemptionCoupon, Reference: code, OrderID: req.OrderID,
		TargetID: coupon.ID, Amount: discount, CreatedAt: now,
	}
	return contracts.CouponResult{CouponID: coupon.ID, Code: code, Discount: discount.Copy()}, nil
}

// RedeemGiftCard implements contracts.RedemptionService.
func (s *Redemptions) RedeemGiftCard(ctx context.Context, code string, amount *domain.Money, orderID string) (contracts.GiftCardResult, error) {
	if err := ctx.Err(); err != nil {
		return contracts.GiftCardResult{}, err
	}
	code = domain.NormalizeCode(code)
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(domain.RedemptionGiftCard, code, orderID)
	if prior, ok := s.ledger[key]; ok {
		return contracts.GiftCardResult{GiftCardID: prior.TargetID, Code: code, AmountRedeemed: prior.Amount.Copy()}, nil
	}

	card, ok := s.giftCards[code]
	if !ok {
		return contracts.GiftCardResult{}, fmt.Errorf("%w: gift card %s not found", domain.ErrRedemptionDeclined, code)
	}
	now := s.clock.Now()
	redeemed, err := card.RedeemableAmount(amount, now)
	if err != nil {
		return contracts.GiftCardResult{}, err
	}

	card.Balance = card.Balance.Subtract(redeemed)
	s.giftCards[code] = card
	s.ledger[key] = domain.Redemption{
		Kind: domain.RedemptionGiftCard, Reference: code, OrderID: orderID,
		TargetID: card.ID, Amount: redeemed, CreatedAt: now,
	}
	return contracts.GiftCardResult{GiftCardID: card.ID, Code: code, AmountRedeemed: redeemed.Copy()}, nil
}

// RedeemLoyaltyPoints implements contracts.RedemptionService.
func (s *Redemptions) RedeemLoyaltyPoints(ctx context.Context, userID string, points int64, orderID string, pointValue *big.Rat) (contracts.LoyaltyRedeemResult, error) {
	if err := ctx.Err(); err != nil {
		return contracts.LoyaltyRedeemResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(domain.RedemptionLoyaltyRedeem, userID, orderID)
	if prior, ok := s.ledger[key]; ok {
		return contracts.LoyaltyRedeemResult{PointsRedeemed: prior.Points, Discount: prior.Amount.Copy()}, nil
	}

	account, ok := s.accounts[userID]
	if !ok {
		return contracts.LoyaltyRedeemResult{}, fmt.Errorf("%w: no loyalty account for user %s", domain.ErrRedemptionDeclined, userID)
	}
	if err := account.CheckRedeem(points); err != nil {
		return contracts.LoyaltyRedeemResult{}, err
	}

	discount := domain.PointsValue(points, pointValue)
	account.Points -= points
	s.accounts[userID] = account
	s.ledger[key] = domain.Redemption{
		Kind: domain.RedemptionLoyaltyRedeem, Reference: userID, OrderID: orderID,
		TargetID: userID, Amount: discount, Points: points, CreatedAt: s.clock.Now(),
	}
	return contracts.LoyaltyRedeemResult{PointsRedeemed: points, Discount: discount.Copy()}, nil
}

// EarnLoyaltyPoints implements contracts.RedemptionService.
func (s *Redemptions) EarnLoyaltyPoints(ctx context.Context, userID string, orderTotal *domain.Money, orderID string, pointsPerDollar *big.Rat) (contracts.LoyaltyEarnResult, error) {
	if err := ctx.Err(); err != nil {
		return contracts.LoyaltyEarnResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(domain.RedemptionLoyaltyEarn, userID, orderID)
	if prior, ok := s.ledger[key]; ok {
		return contracts.LoyaltyEarnResult{PointsEarned: prior.Points}, nil
	}

	points := domain.PointsFor(orderTotal, pointsPerDollar)
	account := s.accounts[userID]
	account.UserID = userID
	account.Points += points
	account.LifetimePoints += points
	s.accounts[userID] = account
	s.ledger[key] = domain.Redemption{
		Kind: domain.RedemptionLoyaltyEarn, Reference: userID, OrderID: orderID,
		TargetID: userID, Amount: orderTotal.Copy(), Points: points, CreatedAt: s.clock.Now(),
	}
	return contracts.LoyaltyEarnResult{PointsEarned: points}, nil
}

// Ledger returns a copy of every recorded redemption.
func (s *Redemptions) Ledger() []domain.Redemption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Redemption, 0, len(s.ledger))
	for _, r := range s.ledger {
		out = append(out, r)
	}
	return out
}

func ledgerKey(kind domain.RedemptionKind, reference, orderID string) string {
	return strings.Join([]string{string(kind), reference, orderID}, "|")
}

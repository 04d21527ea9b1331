package repo

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_coupon"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_gift_card"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_loyalty_account"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_redemption"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

// RedemptionRepo implements RedemptionService on Spanner.
//
// Each call runs in one read-write transaction that reads the ledger row for
// (kind, reference, order) first. A hit returns the recorded outcome; a miss
// reads the balance, consumes it and buffers the balance update together with
// the new ledger row, so the check and the consumption commit atomically.
type RedemptionRepo struct {
	client   *spanner.Client
	clock    clock.Clock
	coupons  *m_coupon.Model
	cards    *m_gift_card.Model
	accounts *m_loyalty_account.Model
	ledger   *m_redemption.Model
}

// NewRedemptionRepo creates a new RedemptionRepo.
func NewRedemptionRepo(client *spanner.Client, clk clock.Clock) contracts.RedemptionService {
	return &RedemptionRepo{
		client:   client,
		clock:    clk,
		coupons:  m_coupon.NewModel(),
		cards:    m_gift_card.NewModel(),
		accounts: m_loyalty_account.NewModel(),
		ledger:   m_redemption.NewModel(),
	}
}

// ApplyCoupon implements contracts.RedemptionService.
func (r *RedemptionRepo) ApplyCoupon(ctx context.Context, req contracts.CouponRequest) (contracts.CouponResult, error) {
	code := domain.NormalizeCode(req.Code)
	var result contracts.CouponResult

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		prior, found, err := readLedger(ctx, txn, domain.RedemptionCoupon, code, req.OrderID)
		if err != nil {
			return err
		}
		if found {
			result = contracts.CouponResult{CouponID: prior.TargetID, Code: code, Discount: domain.NewMoneyFromRat(&prior.Amount)}
			return nil
		}

		coupon, err := readCoupon(ctx, txn, code)
		if err != nil {
			return err
		}
		discount, err := coupon.DiscountFor(req.PreTaxTotal, req.Module, r.clock.Now())
		if err != nil {
			return err
		}

		if err := txn.BufferWrite([]*spanner.Mutation{
			r.coupons.UseMut(code, coupon.TimesUsed+1),
			r.ledger.InsertMut(&m_redemption.Data{
				Kind:      string(domain.RedemptionCoupon),
				Reference: code,
				OrderID:   req.OrderID,
				TargetID:  coupon.ID,
				Amount:    *discount.Rat(),
			}),
		}); err != nil {
			return err
		}
		result = contracts.CouponResult{CouponID: coupon.ID, Code: code, Discount: discount}
		return nil
	})
	if err != nil {
		return contracts.CouponResult{}, fmt.Errorf("failed to apply coupon %s: %w", code, err)
	}
	return result, nil
}

// RedeemGiftCard implements contracts.RedemptionService.
func (r *RedemptionRepo) RedeemGiftCard(ctx context.Context, code string, amount *domain.Money, orderID string) (contracts.GiftCardResult, error) {
	code = domain.NormalizeCode(code)
	var result contracts.GiftCardResult

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		prior, found, err := readLedger(ctx, txn, domain.RedemptionGiftCard, code, orderID)
		if err != nil {
			return err
		}
		if found {
			result = contracts.GiftCardResult{GiftCardID: prior.TargetID, Code: code, AmountRedeemed: domain.NewMoneyFromRat(&prior.Amount)}
			return nil
		}

		card, err := readGiftCard(ctx, txn, code)
		if err != nil {
			return err
		}
		redeemed, err := card.RedeemableAmount(amount, r.clock.Now())
		if err != nil {
			return err
		}

		if err := txn.BufferWrite([]*spanner.Mutation{
			r.cards.BalanceMut(code, card.Balance.Subtract(redeemed).Rat()),
			r.ledger.InsertMut(&m_redemption.Data{
				Kind:      string(domain.RedemptionGiftCard),
				Reference: code,
				OrderID:   orderID,
				TargetID:  card.ID,
				Amount:    *redeemed.Rat(),
			}),
		}); err != nil {
			return err
		}
		result = contracts.GiftCardResult{GiftCardID: card.ID, Code: code, AmountRedeemed: redeemed}
		return nil
	})
	if err != nil {
		return contracts.GiftCardResult{}, fmt.Errorf("failed to redeem gift card %s: %w", code, err)
	}
	return result, nil
}

// RedeemLoyaltyPoints implements contracts.RedemptionService.
func (r *RedemptionRepo) RedeemLoyaltyPoints(ctx context.Context, userID string, points int64, orderID string, pointValue *big.Rat) (contracts.LoyaltyRedeemResult, error) {
	var result contracts.LoyaltyRedeemResult

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		prior, found, err := readLedger(ctx, txn, domain.RedemptionLoyaltyRedeem, userID, orderID)
		if err != nil {
			return err
		}
		if found {
			result = contracts.LoyaltyRedeemResult{PointsRedeemed: prior.Points, Discount: domain.NewMoneyFromRat(&prior.Amount)}
			return nil
		}

		account, found, err := readLoyaltyAccount(ctx, txn, userID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: no loyalty account for user %s", domain.ErrRedemptionDeclined, userID)
		}
		if err := account.CheckRedeem(points); err != nil {
			return err
		}

		discount := domain.PointsValue(points, pointValue)
		if err := txn.BufferWrite([]*spanner.Mutation{
			r.accounts.SaveMut(&m_loyalty_account.Data{
				UserID:         userID,
				Points:         account.Points - points,
				LifetimePoints: account.LifetimePoints,
			}),
			r.ledger.InsertMut(&m_redemption.Data{
				Kind:      string(domain.RedemptionLoyaltyRedeem),
				Reference: userID,
				OrderID:   orderID,
				TargetID:  userID,
				Amount:    *discount.Rat(),
				Points:    points,
			}),
		}); err != nil {
			return err
		}
		result = contracts.LoyaltyRedeemResult{PointsRedeemed: points, Discount: discount}
		return nil
	})
	if err != nil {
		return contracts.LoyaltyRedeemResult{}, fmt.Errorf("failed to redeem loyalty points for %s: %w", userID, err)
	}
	return result, nil
}

// EarnLoyaltyPoints implements contracts.RedemptionService.
func (r *RedemptionRepo) EarnLoyaltyPoints(ctx context.Context, userID string, orderTotal *domain.Money, orderID string, pointsPerDollar *big.Rat) (contracts.LoyaltyEarnResult, error) {
	var result contracts.LoyaltyEarnResult

	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		prior, found, err := readLedger(ctx, txn, domain.RedemptionLoyaltyEarn, userID, orderID)
		if err != nil {
			return err
		}
		if found {
			result = contracts.LoyaltyEarnResult{PointsEarned: prior.Points}
			return nil
		}

		account, _, err := readLoyaltyAccount(ctx, txn, userID)
		if err != nil {
			return err
		}

		points := domain.PointsFor(orderTotal, pointsPerDollar)
		if err := txn.BufferWrite([]*spanner.Mutation{
			r.accounts.SaveMut(&m_loyalty_account.Data{
				UserID:         userID,
				Points:         account.Points + points,
				LifetimePoints: account.LifetimePoints + points,
			}),
			r.ledger.InsertMut(&m_redemption.Data{
				Kind:      string(domain.RedemptionLoyaltyEarn),
				Reference: userID,
				OrderID:   orderID,
				TargetID:  userID,
				Amount:    *orderTotal.Rat(),
				Points:    points,
			}),
		}); err != nil {
			return err
		}
		result = contracts.LoyaltyEarnResult{PointsEarned: points}
		return nil
	})
	if err != nil {
		return contracts.LoyaltyEarnResult{}, fmt.Errorf("failed to earn loyalty points for %s: %w", userID, err)
	}
	return result, nil
}

func readLedger(ctx context.Context, txn *spanner.ReadWriteTransaction, kind domain.RedemptionKind, reference, orderID string) (*m_redemption.Data, bool, error) {
	row, err := txn.ReadRow(ctx, m_redemption.TableName, m_redemption.Key(string(kind), reference, orderID), m_redemption.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read redemption ledger: %w", err)
	}
	var data m_redemption.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, false, fmt.Errorf("failed to parse redemption: %w", err)
	}
	return &data, true, nil
}

func readCoupon(ctx context.Context, txn *spanner.ReadWriteTransaction, code string) (domain.Coupon, error) {
	row, err := txn.ReadRow(ctx, m_coupon.TableName, spanner.Key{code}, m_coupon.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.Coupon{}, fmt.Errorf("%w: coupon %s not found", domain.ErrRedemptionDeclined, code)
		}
		return domain.Coupon{}, fmt.Errorf("failed to read coupon: %w", err)
	}
	var data m_coupon.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.Coupon{}, fmt.Errorf("failed to parse coupon: %w", err)
	}
	return domain.Coupon{
		ID:             data.CouponID,
		Code:           data.Code,
		DiscountType:   domain.ModifierType(data.DiscountType),
		Value:          &data.Value,
		MinOrderAmount: moneyPtr(data.MinOrderAmount),
		MaxDiscount:    moneyPtr(data.MaxDiscount),
		UsageLimit:     data.UsageLimit,
		TimesUsed:      data.TimesUsed,
		ValidFrom:      timePtr(data.ValidFrom),
		ValidUntil:     timePtr(data.ValidUntil),
		ModuleScope:    data.ModuleScope.StringVal,
		Active:         data.IsActive,
	}, nil
}

func readGiftCard(ctx context.Context, txn *spanner.ReadWriteTransaction, code string) (domain.GiftCard, error) {
	row, err := txn.ReadRow(ctx, m_gift_card.TableName, spanner.Key{code}, m_gift_card.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.GiftCard{}, fmt.Errorf("%w: gift card %s not found", domain.ErrRedemptionDeclined, code)
		}
		return domain.GiftCard{}, fmt.Errorf("failed to read gift card: %w", err)
	}
	var data m_gift_card.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.GiftCard{}, fmt.Errorf("failed to parse gift card: %w", err)
	}
	return domain.GiftCard{
		ID:        data.GiftCardID,
		Code:      data.Code,
		Balance:   domain.NewMoneyFromRat(&data.Balance),
		Currency:  domain.Currency(data.Currency),
		Active:    data.IsActive,
		ExpiresAt: timePtr(data.ExpiresAt),
	}, nil
}

func readLoyaltyAccount(ctx context.Context, txn *spanner.ReadWriteTransaction, userID string) (domain.LoyaltyAccount, bool, error) {
	row, err := txn.ReadRow(ctx, m_loyalty_account.TableName, spanner.Key{userID}, m_loyalty_account.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.LoyaltyAccount{UserID: userID}, false, nil
		}
		return domain.LoyaltyAccount{}, false, fmt.Errorf("failed to read loyalty account: %w", err)
	}
	var data m_loyalty_account.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.LoyaltyAccount{}, false, fmt.Errorf("failed to parse loyalty account: %w", err)
	}
	return domain.LoyaltyAccount{UserID: data.UserID, Points: data.Points, LifetimePoints: data.LifetimePoints}, true, nil
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Package discount applies coupon, gift card and loyalty redemptions to an order total.
package discount

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// DefaultStepTimeout bounds a single redemption call.
const DefaultStepTimeout = 3 * time.Second

// DefaultPointValue is the dollar value of one loyalty point.
var DefaultPointValue = big.NewRat(1, 100)

// StepKind names a pipeline step.
type StepKind string

const (
	StepCoupon   StepKind = "coupon"
	StepGiftCard StepKind = "gift_card"
	StepLoyalty  StepKind = "loyalty"
	StepAccrual  StepKind = "loyalty_accrual"
)

// ErrorKind classifies a step failure.
type ErrorKind string

const (
	// ErrorDeclined means the redemption was refused (invalid code, no balance).
	ErrorDeclined ErrorKind = "declined"
	// ErrorUnavailable means the redemption could not be attempted (timeout, store failure).
	ErrorUnavailable ErrorKind = "unavailable"
)

// StepError is a failed step. It never aborts the pipeline.
type StepError struct {
	Step      StepKind
	Reference string
	Kind      ErrorKind
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Step, e.Reference, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func newStepError(step StepKind, ref string, err error) *StepError {
	kind := ErrorUnavailable
	if errors.Is(err, domain.ErrRedemptionDeclined) {
		kind = ErrorDeclined
	}
	return &StepError{Step: step, Reference: ref, Kind: kind, Err: err}
}

// GiftCardRequest names a gift card and, optionally, how much of it to use.
type GiftCardRequest struct {
	Code   string
	Amount *domain.Money // nil = as much as the order needs
}

// Request lists the redemptions a customer asked for.
type Request struct {
	OrderID       string
	CustomerID    string
	Module        string
	TaxRate       *big.Rat // nil = derived from the order's tax and subtotal
	CouponCode    string
	GiftCards     []GiftCardRequest
	LoyaltyPoints int64
}

// Outcome is what a successful step removed from the order.
type Outcome struct {
	Amount     *domain.Money
	TaxSavings *domain.Money
	TargetID   string
	Points     int64
}

// Step is one entry of the ordered redemption list.
type Step struct {
	Kind      StepKind
	Reference string
	run       func(ctx context.Context, st *state) (Outcome, error)
}

type state struct {
	order     *domain.OrderTotal
	req       Request
	taxRate   *big.Rat
	remaining *domain.Money
}

// Config tunes the pipeline.
type Config struct {
	StepTimeout time.Duration
	PointValue  *big.Rat
}

// Pipeline applies redemptions in fixed order: coupon, gift cards, loyalty points.
// Steps run sequentially since each one consumes the previous step's remaining total.
type Pipeline struct {
	redemptions contracts.RedemptionService
	cfg         Config
	logger      *zap.Logger
}

// NewPipeline creates a new Pipeline.
func NewPipeline(redemptions contracts.RedemptionService, cfg Config, logger *zap.Logger) *Pipeline {
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultStepTimeout
	}
	if cfg.PointValue == nil || cfg.PointValue.Sign() <= 0 {
		cfg.PointValue = DefaultPointValue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{redemptions: redemptions, cfg: cfg, logger: logger}
}

// Steps builds the ordered step list for a request. Unrequested redemptions are omitted.
func (p *Pipeline) Steps(req Request) []Step {
	steps := make([]Step, 0, 2+len(req.GiftCards))
	if code := domain.NormalizeCode(req.CouponCode); code != "" {
		steps = append(steps, Step{Kind: StepCoupon, Reference: code, run: p.applyCoupon})
	}
	for _, gc := range req.GiftCards {
		code := domain.NormalizeCode(gc.Code)
		if code == "" {
			continue
		}
		steps = append(steps, Step{
			Kind:      StepGiftCard,
			Reference: code,
			run: func(ctx context.Context, st *state) (Outcome, error) {
				return p.redeemGiftCard(ctx, st, code, gc.Amount)
			},
		})
	}
	if req.LoyaltyPoints > 0 {
		steps = append(steps, Step{Kind: StepLoyalty, Reference: req.CustomerID, run: p.redeemLoyalty})
	}
	return steps
}

// Apply runs every requested redemption against order and records the results on it.
// Failed steps are logged and contribute nothing; Apply itself never fails.
func (p *Pipeline) Apply(ctx context.Context, order *domain.OrderTotal, req Request) *domain.OrderTotal {
	logger := logging.FromContext(ctx, p.logger).With(zap.String("order_id", order.OrderID))

	st := &state{
		order:     order,
		req:       req,
		taxRate:   effectiveTaxRate(req.TaxRate, order),
		remaining: order.PreDiscountTotal.NonNegative(),
	}

	seenCards := make(map[string]bool)
	for _, step := range p.Steps(req) {
		if step.Kind == StepGiftCard {
			if seenCards[step.Reference] {
				order.Steps = append(order.Steps, skipped(step, "duplicate gift card in request"))
				continue
			}
			seenCards[step.Reference] = true
			if !st.remaining.IsPositive() {
				order.Steps = append(order.Steps, skipped(step, "order total already covered"))
				continue
			}
		}

		outcome, err := p.runStep(ctx, step, st)
		if err != nil {
			stepErr := newStepError(step.Kind, step.Reference, err)
			logger.Warn("discount step failed",
				zap.String("step", string(step.Kind)),
				zap.String("reference", step.Reference),
				zap.String("kind", string(stepErr.Kind)),
				zap.Error(err),
			)
			order.Steps = append(order.Steps, domain.StepOutcome{
				Step:      string(step.Kind),
				Reference: step.Reference,
				Status:    domain.StepFailed,
				Amount:    domain.Zero(),
				Reason:    stepErr.Error(),
			})
			continue
		}
		if !outcome.Amount.IsPositive() {
			order.Steps = append(order.Steps, skipped(step, "nothing to redeem"))
			continue
		}

		p.record(st, step, outcome)
		order.Steps = append(order.Steps, domain.StepOutcome{
			Step:      string(step.Kind),
			Reference: step.Reference,
			Status:    domain.StepApplied,
			Amount:    outcome.Amount.Copy(),
		})
	}

	order.Recompute()
	return order
}

// runStep bounds a step with the configured timeout. A timeout surfaces as a step error.
func (p *Pipeline) runStep(ctx context.Context, step Step, st *state) (Outcome, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.cfg.StepTimeout)
	defer cancel()
	return step.run(stepCtx, st)
}

func (p *Pipeline) record(st *state, step Step, outcome Outcome) {
	order := st.order
	switch step.Kind {
	case StepCoupon:
		order.CouponID = outcome.TargetID
		order.CouponCode = step.Reference
		order.CouponDiscount = outcome.Amount
		order.TaxSavings = outcome.TaxSavings
		order.TaxAmount = order.TaxAmount.Subtract(outcome.TaxSavings)
	case StepGiftCard:
		order.GiftCardAmount = order.GiftCardAmount.Add(outcome.Amount)
		order.GiftCards = append(order.GiftCards, domain.GiftCardRedemption{
			Code:       step.Reference,
			GiftCardID: outcome.TargetID,
			Amount:     outcome.Amount,
		})
	case StepLoyalty:
		order.LoyaltyPointsUsed = outcome.Points
		order.LoyaltyDiscount = outcome.Amount
	}

	taken := outcome.Amount
	if outcome.TaxSavings != nil {
		taken = taken.Add(outcome.TaxSavings)
	}
	st.remaining = st.remaining.Subtract(taken).NonNegative()
}

// applyCoupon redeems the coupon against the pre-tax subtotal. The coupon also
// removes its share of tax: round(D × taxRate, 2), never more than the recorded tax.
func (p *Pipeline) applyCoupon(ctx context.Context, st *state) (Outcome, error) {
	res, err := p.redemptions.ApplyCoupon(ctx, contracts.CouponRequest{
		Code:        st.req.CouponCode,
		UserID:      st.req.CustomerID,
		PreTaxTotal: st.order.Subtotal,
		OrderID:     st.req.OrderID,
		Module:      st.req.Module,
	})
	if err != nil {
		return Outcome{}, err
	}

	discount := res.Discount.Min(st.order.Subtotal).Min(st.remaining).NonNegative()
	savings := discount.MultiplyByRat(st.taxRate).Round(2).Min(st.order.TaxAmount).NonNegative()
	return Outcome{Amount: discount, TaxSavings: savings, TargetID: res.CouponID}, nil
}

// redeemGiftCard takes min(requested, remaining) from the card; the card itself caps it at its balance.
func (p *Pipeline) redeemGiftCard(ctx context.Context, st *state, code string, requested *domain.Money) (Outcome, error) {
	amount := st.remaining
	if requested != nil {
		amount = requested.Min(st.remaining)
	}
	if !amount.IsPositive() {
		return Outcome{Amount: domain.Zero()}, nil
	}

	res, err := p.redemptions.RedeemGiftCard(ctx, code, amount, st.req.OrderID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Amount: res.AmountRedeemed.Min(amount), TargetID: res.GiftCardID}, nil
}

// redeemLoyalty converts points to dollars, using no more points than the remaining total covers.
func (p *Pipeline) redeemLoyalty(ctx context.Context, st *state) (Outcome, error) {
	if strings.TrimSpace(st.req.CustomerID) == "" {
		return Outcome{}, fmt.Errorf("%w: loyalty redemption requires a customer", domain.ErrRedemptionDeclined)
	}

	points := st.req.LoyaltyPoints
	if covered := domain.PointsCoveredBy(st.remaining, p.cfg.PointValue); covered < points {
		points = covered
	}
	if points <= 0 {
		return Outcome{Amount: domain.Zero()}, nil
	}

	res, err := p.redemptions.RedeemLoyaltyPoints(ctx, st.req.CustomerID, points, st.req.OrderID, p.cfg.PointValue)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Amount: res.Discount.Min(st.remaining), Points: res.PointsRedeemed, TargetID: st.req.CustomerID}, nil
}

func effectiveTaxRate(rate *big.Rat, order *domain.OrderTotal) *big.Rat {
	if rate != nil {
		return rate
	}
	if !order.Subtotal.IsPositive() {
		return new(big.Rat)
	}
	return new(big.Rat).Quo(order.TaxAmount.Rat(), order.Subtotal.Rat())
}

func skipped(step Step, reason string) domain.StepOutcome {
	return domain.StepOutcome{
		Step:      string(step.Kind),
		Reference: step.Reference,
		Status:    domain.StepSkipped,
		Amount:    domain.Zero(),
		Reason:    reason,
	}
}

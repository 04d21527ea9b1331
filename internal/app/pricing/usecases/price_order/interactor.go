package price_order

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/discount"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// Line is one priced item of an order.
type Line struct {
	UnitPrice *domain.Money
	Quantity  int64
}

// Request is an order to price. Nil rates fall back to the interactor defaults.
type Request struct {
	OrderID           string
	CustomerID        string
	Module            string
	Lines             []Line
	TaxRate           *big.Rat
	ServiceChargeRate *big.Rat
	DeliveryFee       *domain.Money
	CouponCode        string
	GiftCards         []discount.GiftCardRequest
	LoyaltyPoints     int64
}

// Interactor prices an order and runs the discount pipeline and loyalty accrual against it.
type Interactor struct {
	pipeline       *discount.Pipeline
	accrual        *discount.Accrual
	defaultTaxRate *big.Rat
}

// NewInteractor creates a new price order interactor.
func NewInteractor(pipeline *discount.Pipeline, accrual *discount.Accrual, defaultTaxRate *big.Rat) *Interactor {
	if defaultTaxRate == nil {
		defaultTaxRate = new(big.Rat)
	}
	return &Interactor{pipeline: pipeline, accrual: accrual, defaultTaxRate: defaultTaxRate}
}

// Execute computes the order total. Redemption failures never fail the order;
// they are reported in the returned total's steps.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.OrderTotal, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", domain.ErrInvalidOrder)
	}

	subtotal := domain.Zero()
	for n, line := range req.Lines {
		if line.UnitPrice == nil || line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has an invalid unit price", domain.ErrInvalidOrder, n)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", domain.ErrInvalidOrder, n)
		}
		subtotal = subtotal.Add(line.UnitPrice.MultiplyInt(line.Quantity))
	}

	taxRate := req.TaxRate
	if taxRate == nil {
		taxRate = i.defaultTaxRate
	}
	serviceRate := req.ServiceChargeRate
	if serviceRate == nil {
		serviceRate = new(big.Rat)
	}
	if taxRate.Sign() < 0 || serviceRate.Sign() < 0 {
		return nil, fmt.Errorf("%w: rates must not be negative", domain.ErrInvalidOrder)
	}
	delivery := domain.Zero()
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			return nil, fmt.Errorf("%w: delivery fee must not be negative", domain.ErrInvalidOrder)
		}
		delivery = req.DeliveryFee
	}
	if req.LoyaltyPoints < 0 {
		return nil, fmt.Errorf("%w: loyalty points must not be negative", domain.ErrInvalidOrder)
	}

	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		orderID = uuid.New().String()
	}

	tax := subtotal.MultiplyByRat(taxRate).Round(2)
	service := subtotal.MultiplyByRat(serviceRate).Round(2)
	order := domain.NewOrderTotal(orderID, subtotal, tax, service, delivery)

	i.pipeline.Apply(ctx, order, discount.Request{
		OrderID:       orderID,
		CustomerID:    req.CustomerID,
		Module:        req.Module,
		TaxRate:       taxRate,
		CouponCode:    req.CouponCode,
		GiftCards:     req.GiftCards,
		LoyaltyPoints: req.LoyaltyPoints,
	})
	i.accrual.Earn(ctx, order, req.CustomerID)

	return order, nil
}

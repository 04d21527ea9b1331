package http

import (
	"math/big"
	"net/http"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/discount"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/price_order"
)

type orderLineRequest struct {
	UnitPrice *domain.Money `json:"unit_price" validate:"required"`
	Quantity  int64         `json:"quantity" validate:"gte=1"`
}

type giftCardRequest struct {
	Code   string        `json:"code" validate:"required"`
	Amount *domain.Money `json:"amount"`
}

type priceOrderRequest struct {
	OrderID           string             `json:"order_id"`
	CustomerID        string             `json:"customer_id"`
	Module            string             `json:"module"`
	Lines             []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	TaxRate           *string            `json:"tax_rate"`
	ServiceChargeRate *string            `json:"service_charge_rate"`
	DeliveryFee       *domain.Money      `json:"delivery_fee"`
	CouponCode        string             `json:"coupon_code"`
	GiftCards         []giftCardRequest  `json:"gift_cards" validate:"omitempty,dive"`
	LoyaltyPoints     int64              `json:"loyalty_points" validate:"gte=0"`
}

type stepResponse struct {
	Step      string        `json:"step"`
	Reference string        `json:"reference,omitempty"`
	Status    string        `json:"status"`
	Amount    *domain.Money `json:"amount"`
	Reason    string        `json:"reason,omitempty"`
}

type giftCardResponse struct {
	Code   string        `json:"code"`
	Amount *domain.Money `json:"amount"`
}

type orderTotalResponse struct {
	OrderID             string             `json:"order_id"`
	Subtotal            *domain.Money      `json:"subtotal"`
	TaxAmount           *domain.Money      `json:"tax_amount"`
	ServiceCharge       *domain.Money      `json:"service_charge"`
	DeliveryFee         *domain.Money      `json:"delivery_fee"`
	PreDiscountTotal    *domain.Money      `json:"pre_discount_total"`
	CouponCode          string             `json:"coupon_code,omitempty"`
	CouponDiscount      *domain.Money      `json:"coupon_discount"`
	TaxSavings          *domain.Money      `json:"tax_savings"`
	GiftCardAmount      *domain.Money      `json:"gift_card_amount"`
	GiftCards           []giftCardResponse `json:"gift_cards"`
	LoyaltyPointsUsed   int64              `json:"loyalty_points_used"`
	LoyaltyDiscount     *domain.Money      `json:"loyalty_discount"`
	LoyaltyPointsEarned int64              `json:"loyalty_points_earned"`
	DiscountAmount      *domain.Money      `json:"discount_amount"`
	FinalTotal          *domain.Money      `json:"final_total"`
	Steps               []stepResponse     `json:"steps"`
}

func (h *Handler) priceOrder(w http.ResponseWriter, r *http.Request) {
	if h.deps.PriceOrder == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req priceOrderRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	var taxRate, serviceRate *big.Rat
	var err error
	if req.TaxRate != nil {
		if taxRate, err = parseRatField("tax_rate", *req.TaxRate); err != nil {
			respondError(ctx, w, err)
			return
		}
	}
	if req.ServiceChargeRate != nil {
		if serviceRate, err = parseRatField("service_charge_rate", *req.ServiceChargeRate); err != nil {
			respondError(ctx, w, err)
			return
		}
	}

	lines := make([]price_order.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, price_order.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	cards := make([]discount.GiftCardRequest, 0, len(req.GiftCards))
	for _, gc := range req.GiftCards {
		cards = append(cards, discount.GiftCardRequest{Code: gc.Code, Amount: gc.Amount})
	}

	total, err := h.deps.PriceOrder.Execute(ctx, &price_order.Request{
		OrderID:           req.OrderID,
		CustomerID:        req.CustomerID,
		Module:            req.Module,
		Lines:             lines,
		TaxRate:           taxRate,
		ServiceChargeRate: serviceRate,
		DeliveryFee:       req.DeliveryFee,
		CouponCode:        req.CouponCode,
		GiftCards:         cards,
		LoyaltyPoints:     req.LoyaltyPoints,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderTotalFromDomain(total))
}

func orderTotalFromDomain(o *domain.OrderTotal) orderTotalResponse {
	cards := make([]giftCardResponse, 0, len(o.GiftCards))
	for _, gc := range o.GiftCards {
		cards = append(cards, giftCardResponse{Code: gc.Code, Amount: gc.Amount})
	}
	steps := make([]stepResponse, 0, len(o.Steps))
	for _, s := range o.Steps {
		steps = append(steps, stepResponse{
			Step:      s.Step,
			Reference: s.Reference,
			Status:    string(s.Status),
			Amount:    s.Amount,
			Reason:    s.Reason,
		})
	}
	return orderTotalResponse{
		OrderID:             o.OrderID,
		Subtotal:            o.Subtotal,
		TaxAmount:           o.TaxAmount,
		ServiceCharge:       o.ServiceCharge,
		DeliveryFee:         o.DeliveryFee,
		PreDiscountTotal:    o.PreDiscountTotal,
		CouponCode:          o.CouponCode,
		CouponDiscount:      o.CouponDiscount,
		TaxSavings:          o.TaxSavings,
		GiftCardAmount:      o.GiftCardAmount,
		GiftCards:           cards,
		LoyaltyPointsUsed:   o.LoyaltyPointsUsed,
		LoyaltyDiscount:     o.LoyaltyDiscount,
		LoyaltyPointsEarned: o.LoyaltyPointsEarned,
		DiscountAmount:      o.DiscountAmount,
		FinalTotal:          o.FinalTotal,
		Steps:               steps,
	}
}

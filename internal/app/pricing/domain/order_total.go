package domain

// StepStatus is the outcome of one discount pipeline step.
type StepStatus string

const (
	StepApplied StepStatus = "applied"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// StepOutcome is the audit record of one discount step.
type StepOutcome struct {
	Step      string
	Reference string
	Status    StepStatus
	Amount    *Money
	Reason    string
}

// GiftCardRedemption is the amount taken from one gift card.
type GiftCardRedemption struct {
	Code       string
	GiftCardID string
	Amount     *Money
}

// OrderTotal is the computed price of an order, owned by the order aggregate.
// Invariants:
//
//	DiscountAmount = CouponDiscount + GiftCardAmount + LoyaltyDiscount
//	FinalTotal     = max(0, PreDiscountTotal - DiscountAmount - TaxSavings)
//	TaxAmount      = pre-discount tax - TaxSavings
type OrderTotal struct {
	OrderID          string
	Subtotal         *Money
	TaxAmount        *Money
	ServiceCharge    *Money
	DeliveryFee      *Money
	PreDiscountTotal *Money

	CouponID       string
	CouponCode     string
	CouponDiscount *Money
	TaxSavings     *Money

	GiftCardAmount *Money
	GiftCards      []GiftCardRedemption

	LoyaltyPointsUsed   int64
	LoyaltyDiscount     *Money
	LoyaltyPointsEarned int64

	DiscountAmount *Money
	FinalTotal     *Money
	Steps          []StepOutcome
}

// NewOrderTotal starts a total with no discounts applied.
func NewOrderTotal(orderID string, subtotal, tax, service, delivery *Money) *OrderTotal {
	pre := subtotal.Add(tax).Add(service).Add(delivery)
	return &OrderTotal{
		OrderID:          orderID,
		Subtotal:         subtotal.Copy(),
		TaxAmount:        tax.Copy(),
		ServiceCharge:    service.Copy(),
		DeliveryFee:      delivery.Copy(),
		PreDiscountTotal: pre,
		CouponDiscount:   Zero(),
		TaxSavings:       Zero(),
		GiftCardAmount:   Zero(),
		GiftCards:        []GiftCardRedemption{},
		LoyaltyDiscount:  Zero(),
		DiscountAmount:   Zero(),
		FinalTotal:       pre.NonNegative(),
		Steps:            []StepOutcome{},
	}
}

// Recompute derives DiscountAmount and FinalTotal from the component discounts.
func (o *OrderTotal) Recompute() {
	o.DiscountAmount = o.CouponDiscount.Add(o.GiftCardAmount).Add(o.LoyaltyDiscount)
	o.FinalTotal = o.PreDiscountTotal.Subtract(o.DiscountAmount).Subtract(o.TaxSavings).NonNegative()
}

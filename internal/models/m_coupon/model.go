package m_coupon

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Field name constants for the coupons table.
const (
	TableName = "coupons"

	Code           = "code"
	CouponID       = "coupon_id"
	DiscountType   = "discount_type"
	Value          = "value"
	MinOrderAmount = "min_order_amount"
	MaxDiscount    = "max_discount"
	UsageLimit     = "usage_limit"
	TimesUsed      = "times_used"
	ValidFrom      = "valid_from"
	ValidUntil     = "valid_until"
	ModuleScope    = "module_scope"
	IsActive       = "is_active"
)

// Data represents the database model for the coupons table.
type Data struct {
	Code           string              `spanner:"code"`
	CouponID       string              `spanner:"coupon_id"`
	DiscountType   string              `spanner:"discount_type"`
	Value          big.Rat             `spanner:"value"`
	MinOrderAmount spanner.NullNumeric `spanner:"min_order_amount"`
	MaxDiscount    spanner.NullNumeric `spanner:"max_discount"`
	UsageLimit     int64               `spanner:"usage_limit"`
	TimesUsed      int64               `spanner:"times_used"`
	ValidFrom      spanner.NullTime    `spanner:"valid_from"`
	ValidUntil     spanner.NullTime    `spanner:"valid_until"`
	ModuleScope    spanner.NullString  `spanner:"module_scope"`
	IsActive       bool                `spanner:"is_active"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{
		Code, CouponID, DiscountType, Value, MinOrderAmount, MaxDiscount,
		UsageLimit, TimesUsed, ValidFrom, ValidUntil, ModuleScope, IsActive,
	}
}

// Model provides type-safe operations on the coupons table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UseMut records one more use of the coupon.
func (m *Model) UseMut(code string, timesUsed int64) *spanner.Mutation {
	return spanner.Update(TableName, []string{Code, TimesUsed}, []interface{}{code, timesUsed})
}

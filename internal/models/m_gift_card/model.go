package m_gift_card

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Field name constants for the gift_cards table.
const (
	TableName = "gift_cards"

	Code       = "code"
	GiftCardID = "gift_card_id"
	Balance    = "balance"
	Currency   = "currency"
	IsActive   = "is_active"
	ExpiresAt  = "expires_at"
)

// Data represents the database model for the gift_cards table.
type Data struct {
	Code       string           `spanner:"code"`
	GiftCardID string           `spanner:"gift_card_id"`
	Balance    big.Rat          `spanner:"balance"`
	Currency   string           `spanner:"currency"`
	IsActive   bool             `spanner:"is_active"`
	ExpiresAt  spanner.NullTime `spanner:"expires_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{Code, GiftCardID, Balance, Currency, IsActive, ExpiresAt}
}

// Model provides type-safe operations on the gift_cards table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// BalanceMut sets the remaining balance of a card.
func (m *Model) BalanceMut(code string, balance *big.Rat) *spanner.Mutation {
	return spanner.Update(TableName, []string{Code, Balance}, []interface{}{code, *balance})
}

package list_rates

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
)

// Request contains filtering parameters. Empty fields do not filter.
type Request struct {
	ItemType string
	ItemID   string
	RateType string
	Currency string
	Active   *bool
	PageSize int
}

// Query handles the list rates query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list rates query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves rates matching the filters, highest priority first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.RateDTO, error) {
	filter := &contracts.RateFilter{
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		RateType: req.RateType,
		Currency: req.Currency,
		Active:   req.Active,
		PageSize: req.PageSize,
	}

	return q.readModel.ListRates(ctx, filter)
}

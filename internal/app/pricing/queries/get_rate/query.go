package get_rate

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
)

// Request contains the rate ID to retrieve.
type Request struct {
	RateID string
}

// Query handles the get rate query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get rate query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a rate by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.RateDTO, error) {
	return q.readModel.GetRateByID(ctx, req.RateID)
}

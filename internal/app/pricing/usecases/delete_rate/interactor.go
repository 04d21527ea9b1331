package delete_rate

import (
	"context"
	"errors"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/deactivate_rate"
)

// Request contains the rate ID to delete.
type Request struct {
	RateID  string
	Version int64 // 0 uses the stored version
}

// Interactor soft-deletes rates. The row is kept so historical orders can still reference it.
type Interactor struct {
	deactivate *deactivate_rate.Interactor
}

// NewInteractor creates a new delete rate interactor.
func NewInteractor(deactivate *deactivate_rate.Interactor) *Interactor {
	return &Interactor{deactivate: deactivate}
}

// Execute deactivates the rate. Deleting an already inactive rate succeeds without writing.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.deactivate.Execute(ctx, &deactivate_rate.Request{RateID: req.RateID, Version: req.Version})
	if errors.Is(err, domain.ErrRateInactive) {
		return nil
	}
	return err
}

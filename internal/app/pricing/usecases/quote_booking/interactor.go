package quote_booking

import (
	"context"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
)

// Request describes a stay to quote. Category defaults to ItemType.
type Request struct {
	ItemType    string
	ItemID      string
	Category    string
	Domain      string
	Arrival     domain.Date
	Nights      int
	BookingDate *domain.Date
	Occupancy   *float64
}

// Quote is the catalog price of the stay and the seasonal/dynamic adjustment applied on top of it.
type Quote struct {
	Breakdown  domain.PriceBreakdown
	Adjustment domain.AdjustedPrice
	Total      *domain.Money
	Currency   domain.Currency
}

// Interactor combines the price calculator and the adjuster into one booking quote.
type Interactor struct {
	calculator *services.PriceCalculator
	adjuster   *services.Adjuster
}

// NewInteractor creates a new quote booking interactor.
func NewInteractor(calculator *services.PriceCalculator, adjuster *services.Adjuster) *Interactor {
	return &Interactor{calculator: calculator, adjuster: adjuster}
}

// Execute prices the stay, then adjusts the stay total for the arrival date.
// A stay with no matching rate quotes zero.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Quote, error) {
	breakdown, err := i.calculator.CalculatePrice(ctx, req.ItemType, req.ItemID, req.Arrival, req.Nights)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = req.ItemType
	}
	adjusted, err := i.adjuster.Adjust(ctx, services.AdjustmentRequest{
		Domain:      req.Domain,
		Category:    category,
		Date:        req.Arrival,
		BookingDate: req.BookingDate,
		BasePrice:   breakdown.TotalPrice,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		return nil, err
	}

	return &Quote{
		Breakdown:  breakdown,
		Adjustment: adjusted,
		Total:      adjusted.FinalPrice,
		Currency:   breakdown.Currency,
	}, nil
}

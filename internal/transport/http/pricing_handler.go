package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/best_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/calculate_price"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/quote_booking"
)

type adjustRequest struct {
	Domain      string        `json:"domain"`
	Category    string        `json:"category"`
	Date        domain.Date   `json:"date"`
	BookingDate *domain.Date  `json:"booking_date"`
	BasePrice   *domain.Money `json:"base_price" validate:"required"`
	Occupancy   *float64      `json:"occupancy"`
}

type calendarRequest struct {
	Domain      string        `json:"domain"`
	Category    string        `json:"category"`
	From        domain.Date   `json:"from"`
	To          domain.Date   `json:"to"`
	BookingDate *domain.Date  `json:"booking_date"`
	BasePrice   *domain.Money `json:"base_price" validate:"required"`
	Occupancy   *float64      `json:"occupancy"`
}

type quoteRequest struct {
	ItemType    string       `json:"item_type" validate:"required"`
	ItemID      string       `json:"item_id"`
	Category    string       `json:"category"`
	Domain      string       `json:"domain"`
	Arrival     domain.Date  `json:"arrival"`
	Nights      int          `json:"nights" validate:"gte=1"`
	BookingDate *domain.Date `json:"booking_date"`
	Occupancy   *float64     `json:"occupancy"`
}

func (h *Handler) pricingRoutes(r chi.Router) {
	r.Get("/best-rate", h.bestRate)
	r.Get("/calculate", h.calculatePrice)
	r.Post("/adjust", h.adjustPrice)
	r.Post("/calendar", h.pricingCalendar)
	r.Post("/quote", h.quoteBooking)
}

// itemQuery reads item_type, item_id and date from the query string.
func itemQuery(r *http.Request) (itemType, itemID string, date domain.Date, err error) {
	q := r.URL.Query()
	itemType = strings.TrimSpace(q.Get("item_type"))
	if itemType == "" {
		return "", "", domain.Date{}, errBadRequest("item_type is required")
	}
	rawDate := strings.TrimSpace(q.Get("date"))
	if rawDate == "" {
		return "", "", domain.Date{}, errBadRequest("date is required")
	}
	date, err = domain.ParseDate(rawDate)
	if err != nil {
		return "", "", domain.Date{}, err
	}
	return itemType, strings.TrimSpace(q.Get("item_id")), date, nil
}

func (h *Handler) bestRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.BestRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	itemType, itemID, date, err := itemQuery(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	rate, err := h.deps.BestRate.Execute(ctx, &best_rate.Request{ItemType: itemType, ItemID: itemID, Date: date})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var out *RateResponse
	if rate != nil {
		resp := rateFromDomain(rate)
		out = &resp
	}
	writeJSON(w, http.StatusOK, map[string]any{"rate": out})
}

func (h *Handler) calculatePrice(w http.ResponseWriter, r *http.Request) {
	if h.deps.CalculatePrice == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	itemType, itemID, date, err := itemQuery(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	nights := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("nights")); raw != "" {
		nights, err = strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, w, errBadRequest("nights must be an integer"))
			return
		}
	}

	breakdown, err := h.deps.CalculatePrice.Execute(ctx, &calculate_price.Request{
		ItemType: itemType,
		ItemID:   itemID,
		Date:     date,
		Nights:   nights,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdownFromDomain(breakdown))
}

func (h *Handler) adjustPrice(w http.ResponseWriter, r *http.Request) {
	if h.deps.AdjustPrice == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req adjustRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	if req.Date.IsZero() {
		respondError(ctx, w, errBadRequest("date is required"))
		return
	}

	adjusted, err := h.deps.AdjustPrice.Execute(ctx, services.AdjustmentRequest{
		Domain:      req.Domain,
		Category:    req.Category,
		Date:        req.Date,
		BookingDate: req.BookingDate,
		BasePrice:   req.BasePrice,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, adjustedFromDomain(adjusted))
}

func (h *Handler) pricingCalendar(w http.ResponseWriter, r *http.Request) {
	if h.deps.PricingCalendar == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req calendarRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	if req.From.IsZero() || req.To.IsZero() {
		respondError(ctx, w, errBadRequest("from and to are required"))
		return
	}

	days, err := h.deps.PricingCalendar.Execute(ctx, services.CalendarRequest{
		Domain:      req.Domain,
		Category:    req.Category,
		From:        req.From,
		To:          req.To,
		BookingDate: req.BookingDate,
		BasePrice:   req.BasePrice,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	out := make([]AdjustedPriceResponse, 0, len(days))
	for _, d := range days {
		out = append(out, adjustedFromDomain(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": out})
}

func (h *Handler) quoteBooking(w http.ResponseWriter, r *http.Request) {
	if h.deps.QuoteBooking == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req quoteRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	if req.Arrival.IsZero() {
		respondError(ctx, w, errBadRequest("arrival is required"))
		return
	}

	quote, err := h.deps.QuoteBooking.Execute(ctx, &quote_booking.Request{
		ItemType:    req.ItemType,
		ItemID:      req.ItemID,
		Category:    req.Category,
		Domain:      req.Domain,
		Arrival:     req.Arrival,
		Nights:      req.Nights,
		BookingDate: req.BookingDate,
		Occupancy:   req.Occupancy,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"breakdown":  breakdownFromDomain(quote.Breakdown),
		"adjustment": adjustedFromDomain(quote.Adjustment),
		"total":      quote.Total,
		"currency":   string(quote.Currency),
	})
}

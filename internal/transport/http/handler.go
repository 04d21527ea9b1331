// Package http exposes the pricing service over a chi JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/adjust_price"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/best_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/calculate_price"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/get_dynamic_config"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/get_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_modifiers"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_rates"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_seasonal_rules"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/pricing_calendar"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/activate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/add_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/create_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/deactivate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/price_order"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/quote_booking"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/remove_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/replace_dynamic_config"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/save_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/update_rate"
)

const maxBodySize = 1 << 20

// Dependencies are the use cases and queries served by the API.
// A nil dependency makes its routes answer 503.
type Dependencies struct {
	CreateRate     *create_rate.Interactor
	UpdateRate     *update_rate.Interactor
	ActivateRate   *activate_rate.Interactor
	DeactivateRate *deactivate_rate.Interactor
	DeleteRate     *delete_rate.Interactor
	AddModifier    *add_modifier.Interactor
	RemoveModifier *remove_modifier.Interactor

	SaveSeasonalRule     *save_seasonal_rule.Interactor
	DeleteSeasonalRule   *delete_seasonal_rule.Interactor
	ReplaceDynamicConfig *replace_dynamic_config.Interactor

	PriceOrder   *price_order.Interactor
	QuoteBooking *quote_booking.Interactor

	GetRate           *get_rate.Query
	ListRates         *list_rates.Query
	ListModifiers     *list_modifiers.Query
	PriceHistory      *price_history.Query
	BestRate          *best_rate.Query
	CalculatePrice    *calculate_price.Query
	AdjustPrice       *adjust_price.Query
	PricingCalendar   *pricing_calendar.Query
	ListSeasonalRules *list_seasonal_rules.Query
	GetDynamicConfig  *get_dynamic_config.Query
	ListEvents        *list_events.Query
}

// Handler serves the pricing API.
type Handler struct {
	deps     Dependencies
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(deps Dependencies, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Router builds the chi router with the request middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rates", h.rateRoutes)
		r.Route("/pricing", h.pricingRoutes)
		r.Route("/seasonal-rules", h.seasonalRuleRoutes)
		r.Route("/dynamic-config", h.dynamicConfigRoutes)
		r.Post("/orders/price", h.priceOrder)
		r.Get("/events", h.listEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newAPIError("not_found", "route not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, newAPIError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	})
	return r
}

// decode reads a JSON body into dst and runs struct validation on it.
func (h *Handler) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errBadRequest("request body is required")
		}
		if _, ok := domain.AsError(err); ok {
			return err
		}
		return errBadRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return h.validate.Struct(dst)
}

func unavailable(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, newAPIError("service_unavailable", "endpoint not configured", http.StatusServiceUnavailable))
}

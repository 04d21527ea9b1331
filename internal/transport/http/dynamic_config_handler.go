package http

import (
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// dynamicConfigRequest replaces a config. Omitted fields take the neutral defaults.
type dynamicConfigRequest struct {
	Enabled            bool     `json:"enabled"`
	MinOccupancy       *float64 `json:"min_occupancy"`
	MaxOccupancy       *float64 `json:"max_occupancy"`
	MinMultiplier      *string  `json:"min_multiplier"`
	MaxMultiplier      *string  `json:"max_multiplier"`
	AdvanceBookingDays int      `json:"advance_booking_days" validate:"gte=0"`
	EarlyBirdDiscount  *string  `json:"early_bird_discount"`
	LastMinuteDays     int      `json:"last_minute_days" validate:"gte=0"`
	LastMinutePremium  *string  `json:"last_minute_premium"`
	WeekendMultiplier  *string  `json:"weekend_multiplier"`
	WeekendDays        []string `json:"weekend_days"`
}

func (h *Handler) dynamicConfigRoutes(r chi.Router) {
	r.Get("/{domain}", h.getDynamicConfig)
	r.Put("/{domain}", h.replaceDynamicConfig)
}

func (h *Handler) getDynamicConfig(w http.ResponseWriter, r *http.Request) {
	if h.deps.GetDynamicConfig == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	cfg, err := h.deps.GetDynamicConfig.Execute(ctx, chi.URLParam(r, "domain"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, dynamicConfigFromDomain(cfg))
}

func (h *Handler) replaceDynamicConfig(w http.ResponseWriter, r *http.Request) {
	if h.deps.ReplaceDynamicConfig == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req dynamicConfigRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	cfg, err := req.toDomain(chi.URLParam(r, "domain"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	saved, err := h.deps.ReplaceDynamicConfig.Execute(ctx, cfg)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, dynamicConfigFromDomain(saved))
}

func (req dynamicConfigRequest) toDomain(pricingDomain string) (domain.DynamicPricingConfig, error) {
	cfg := domain.DefaultDynamicConfig(pricingDomain)
	cfg.Enabled = req.Enabled
	cfg.AdvanceBookingDays = req.AdvanceBookingDays
	cfg.LastMinuteDays = req.LastMinuteDays
	if req.MinOccupancy != nil {
		cfg.MinOccupancy = *req.MinOccupancy
	}
	if req.MaxOccupancy != nil {
		cfg.MaxOccupancy = *req.MaxOccupancy
	}

	rats := []struct {
		field string
		value *string
		dst   **big.Rat
	}{
		{"min_multiplier", req.MinMultiplier, &cfg.MinMultiplier},
		{"max_multiplier", req.MaxMultiplier, &cfg.MaxMultiplier},
		{"early_bird_discount", req.EarlyBirdDiscount, &cfg.EarlyBirdDiscount},
		{"last_minute_premium", req.LastMinutePremium, &cfg.LastMinutePremium},
		{"weekend_multiplier", req.WeekendMultiplier, &cfg.WeekendMultiplier},
	}
	for _, r := range rats {
		if r.value == nil {
			continue
		}
		v, err := parseRatField(r.field, *r.value)
		if err != nil {
			return domain.DynamicPricingConfig{}, err
		}
		*r.dst = v
	}

	if req.WeekendDays != nil {
		days := make([]domain.DayOfWeek, 0, len(req.WeekendDays))
		for _, raw := range req.WeekendDays {
			d, err := domain.ParseDayOfWeek(raw)
			if err != nil {
				return domain.DynamicPricingConfig{}, err
			}
			days = append(days, d)
		}
		cfg.WeekendDays = days
	}
	return cfg, nil
}

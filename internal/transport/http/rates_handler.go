package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/get_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_rates"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/activate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/add_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/create_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/deactivate_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/remove_modifier"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/update_rate"
)

type createRateRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"required"`
	RateType    string        `json:"rate_type" validate:"required"`
	BasePrice   *domain.Money `json:"base_price" validate:"required"`
	Currency    string        `json:"currency" validate:"required,len=3"`
	ItemType    string        `json:"item_type" validate:"required"`
	ItemID      string        `json:"item_id"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	DaysOfWeek  []string      `json:"days_of_week" validate:"omitempty,dive,required"`
	MinStay     *int          `json:"min_stay" validate:"omitempty,gte=1"`
	MaxStay     *int          `json:"max_stay" validate:"omitempty,gte=1"`
	Priority    int           `json:"priority"`
	CreatedBy   string        `json:"created_by"`
}

type updateRateRequest struct {
	Version     int64         `json:"version" validate:"required,gte=1"`
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	RateType    *string       `json:"rate_type"`
	BasePrice   *domain.Money `json:"base_price"`
	Currency    *string       `json:"currency"`
	ItemType    *string       `json:"item_type"`
	ItemID      *string       `json:"item_id"`
	StartDate   *string       `json:"start_date"`
	EndDate     *string       `json:"end_date"`
	DaysOfWeek  *[]string     `json:"days_of_week"`
	MinStay     *int          `json:"min_stay" validate:"omitempty,gte=0"`
	MaxStay     *int          `json:"max_stay" validate:"omitempty,gte=0"`
	Priority    *int          `json:"priority"`
	ChangedBy   string        `json:"changed_by"`
}

type versionRequest struct {
	Version int64 `json:"version" validate:"gte=0"`
}

type addModifierRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=percentage fixed"`
	Value     string `json:"value" validate:"required"`
	Condition string `json:"condition"`
}

func (h *Handler) rateRoutes(r chi.Router) {
	r.Post("/", h.createRate)
	r.Get("/", h.listRates)
	r.Get("/{rateID}", h.getRate)
	r.Patch("/{rateID}", h.updateRate)
	r.Delete("/{rateID}", h.deleteRate)
	r.Post("/{rateID}/activate", h.activateRate)
	r.Post("/{rateID}/deactivate", h.deactivateRate)
	r.Get("/{rateID}/history", h.priceHistory)
	r.Get("/{rateID}/modifiers", h.listModifiers)
	r.Post("/{rateID}/modifiers", h.addModifier)
	r.Delete("/{rateID}/modifiers/{modifierID}", h.removeModifier)
}

func (h *Handler) createRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.CreateRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req createRateRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	rateID, err := h.deps.CreateRate.Execute(ctx, &create_rate.Request{
		RateParams: domain.RateParams{
			Name:        req.Name,
			Description: req.Description,
			RateType:    req.RateType,
			BasePrice:   req.BasePrice,
			Currency:    req.Currency,
			ItemType:    req.ItemType,
			ItemID:      req.ItemID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			DaysOfWeek:  req.DaysOfWeek,
			MinStay:     req.MinStay,
			MaxStay:     req.MaxStay,
			Priority:    req.Priority,
		},
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"rate_id": rateID})
}

func (h *Handler) listRates(w http.ResponseWriter, r *http.Request) {
	if h.deps.ListRates == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	req := &list_rates.Request{
		ItemType: strings.TrimSpace(q.Get("item_type")),
		ItemID:   strings.TrimSpace(q.Get("item_id")),
		RateType: strings.TrimSpace(q.Get("rate_type")),
		Currency: strings.TrimSpace(q.Get("currency")),
	}
	if raw := strings.TrimSpace(q.Get("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(ctx, w, errBadRequest("active must be a boolean"))
			return
		}
		req.Active = &active
	}
	if raw := strings.TrimSpace(q.Get("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, w, errBadRequest("page_size must be an integer"))
			return
		}
		req.PageSize = size
	}

	rates, err := h.deps.ListRates.Execute(ctx, req)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	out := make([]RateResponse, 0, len(rates))
	for _, dto := range rates {
		out = append(out, rateFromDTO(dto))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": out})
}

func (h *Handler) getRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.GetRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	dto, err := h.deps.GetRate.Execute(ctx, &get_rate.Request{RateID: chi.URLParam(r, "rateID")})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, rateFromDTO(dto))
}

func (h *Handler) updateRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.UpdateRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req updateRateRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	update := domain.RateUpdate{
		Name:        req.Name,
		Description: req.Description,
		RateType:    req.RateType,
		BasePrice:   req.BasePrice,
		Currency:    req.Currency,
		ItemType:    req.ItemType,
		ItemID:      req.ItemID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DaysOfWeek:  req.DaysOfWeek,
		MinStay:     req.MinStay,
		MaxStay:     req.MaxStay,
		Priority:    req.Priority,
	}
	if update.IsEmpty() {
		respondError(ctx, w, errBadRequest("at least one field must be provided for update"))
		return
	}

	err := h.deps.UpdateRate.Execute(ctx, &update_rate.Request{
		RateID:    chi.URLParam(r, "rateID"),
		Version:   req.Version,
		Update:    update,
		ChangedBy: req.ChangedBy,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.DeleteRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	if err := h.deps.DeleteRate.Execute(ctx, &delete_rate.Request{RateID: chi.URLParam(r, "rateID")}); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optionalVersion reads {"version": n} from an optional body. Zero means unchecked.
func (h *Handler) optionalVersion(r *http.Request) (int64, error) {
	if r.ContentLength == 0 {
		return 0, nil
	}
	var req versionRequest
	if err := h.decode(r, &req); err != nil {
		return 0, err
	}
	return req.Version, nil
}

func (h *Handler) activateRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.ActivateRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	version, err := h.optionalVersion(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if err := h.deps.ActivateRate.Execute(ctx, &activate_rate.Request{RateID: chi.URLParam(r, "rateID"), Version: version}); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivateRate(w http.ResponseWriter, r *http.Request) {
	if h.deps.DeactivateRate == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	version, err := h.optionalVersion(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	if err := h.deps.DeactivateRate.Execute(ctx, &deactivate_rate.Request{RateID: chi.URLParam(r, "rateID"), Version: version}); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	if h.deps.PriceHistory == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	req := &price_history.Request{RateID: chi.URLParam(r, "rateID")}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, w, errBadRequest("limit must be an integer"))
			return
		}
		req.Limit = limit
	}

	records, err := h.deps.PriceHistory.Execute(ctx, req)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	type entry struct {
		HistoryID string        `json:"history_id"`
		OldPrice  *domain.Money `json:"old_price"`
		NewPrice  *domain.Money `json:"new_price"`
		ChangedBy string        `json:"changed_by,omitempty"`
		ChangedAt string        `json:"changed_at"`
	}
	out := make([]entry, 0, len(records))
	for _, rec := range records {
		out = append(out, entry{
			HistoryID: rec.HistoryID,
			OldPrice:  rec.OldPrice,
			NewPrice:  rec.NewPrice,
			ChangedBy: rec.ChangedBy,
			ChangedAt: formatTime(rec.ChangedAt),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": out})
}

func (h *Handler) listModifiers(w http.ResponseWriter, r *http.Request) {
	if h.deps.ListModifiers == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	mods, err := h.deps.ListModifiers.Execute(ctx, chi.URLParam(r, "rateID"))
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	out := make([]ModifierResponse, 0, len(mods))
	for _, m := range mods {
		out = append(out, modifierFromDomain(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"modifiers": out})
}

func (h *Handler) addModifier(w http.ResponseWriter, r *http.Request) {
	if h.deps.AddModifier == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req addModifierRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	value, err := parseRatField("value", req.Value)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	modifierID, err := h.deps.AddModifier.Execute(ctx, &add_modifier.Request{
		RateID: chi.URLParam(r, "rateID"),
		ModifierParams: domain.ModifierParams{
			Name:      req.Name,
			Type:      req.Type,
			Value:     value,
			Condition: req.Condition,
		},
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"modifier_id": modifierID})
}

func (h *Handler) removeModifier(w http.ResponseWriter, r *http.Request) {
	if h.deps.RemoveModifier == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	err := h.deps.RemoveModifier.Execute(ctx, &remove_modifier.Request{
		RateID:     chi.URLParam(r, "rateID"),
		ModifierID: chi.URLParam(r, "modifierID"),
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

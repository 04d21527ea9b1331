package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_seasonal_rules"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/delete_seasonal_rule"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/save_seasonal_rule"
)

type seasonalRuleRequest struct {
	Name       string   `json:"name" validate:"required"`
	StartDate  string   `json:"start_date" validate:"required"`
	EndDate    string   `json:"end_date" validate:"required"`
	Multiplier string   `json:"multiplier" validate:"required"`
	Categories []string `json:"categories" validate:"omitempty,dive,required"`
	Priority   int      `json:"priority"`
	Active     *bool    `json:"active"`
}

func (h *Handler) seasonalRuleRoutes(r chi.Router) {
	r.Get("/", h.listSeasonalRules)
	r.Post("/", h.saveSeasonalRule)
	r.Put("/{ruleID}", h.saveSeasonalRule)
	r.Delete("/{ruleID}", h.deleteSeasonalRule)
}

func (h *Handler) listSeasonalRules(w http.ResponseWriter, r *http.Request) {
	if h.deps.ListSeasonalRules == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	req := &list_seasonal_rules.Request{}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(ctx, w, errBadRequest("active must be a boolean"))
			return
		}
		req.ActiveOnly = active
	}

	rules, err := h.deps.ListSeasonalRules.Execute(ctx, req)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	out := make([]SeasonalRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, seasonalRuleFromDomain(rule))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": out})
}

// saveSeasonalRule creates a rule on POST and replaces the addressed rule on PUT.
func (h *Handler) saveSeasonalRule(w http.ResponseWriter, r *http.Request) {
	if h.deps.SaveSeasonalRule == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	var req seasonalRuleRequest
	if err := h.decode(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}
	multiplier, err := parseRatField("multiplier", req.Multiplier)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	ruleID := chi.URLParam(r, "ruleID")
	id, err := h.deps.SaveSeasonalRule.Execute(ctx, &save_seasonal_rule.Request{
		RuleID: ruleID,
		SeasonalRuleParams: domain.SeasonalRuleParams{
			Name:       req.Name,
			Start:      req.StartDate,
			End:        req.EndDate,
			Multiplier: multiplier,
			Categories: req.Categories,
			Priority:   req.Priority,
			Active:     active,
		},
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if ruleID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]string{"rule_id": id})
}

func (h *Handler) deleteSeasonalRule(w http.ResponseWriter, r *http.Request) {
	if h.deps.DeleteSeasonalRule == nil {
		unavailable(w, r)
		return
	}
	ctx := r.Context()

	if err := h.deps.DeleteSeasonalRule.Execute(ctx, &delete_seasonal_rule.Request{RuleID: chi.URLParam(r, "ruleID")}); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

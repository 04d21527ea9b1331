package http

import (
	"math/big"
	"strings"
	"time"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
)

// RateResponse is a rate in API responses.
type RateResponse struct {
	RateID      string   `json:"rate_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RateType    string   `json:"rate_type"`
	BasePrice   string   `json:"base_price"`
	Currency    string   `json:"currency"`
	ItemType    string   `json:"item_type"`
	ItemID      string   `json:"item_id,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	DaysOfWeek  []string `json:"days_of_week"`
	MinStay     *int64   `json:"min_stay,omitempty"`
	MaxStay     *int64   `json:"max_stay,omitempty"`
	Priority    int64    `json:"priority"`
	Active      bool     `json:"active"`
	Version     int64    `json:"version"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func rateFromDTO(dto *contracts.RateDTO) RateResponse {
	days := dto.DaysOfWeek
	if days == nil {
		days = []string{}
	}
	return RateResponse{
		RateID:      dto.RateID,
		Name:        dto.Name,
		Description: dto.Description,
		RateType:    dto.RateType,
		BasePrice:   dto.BasePrice,
		Currency:    dto.Currency,
		ItemType:    dto.ItemType,
		ItemID:      dto.ItemID,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		DaysOfWeek:  days,
		MinStay:     dto.MinStay,
		MaxStay:     dto.MaxStay,
		Priority:    dto.Priority,
		Active:      dto.Active,
		Version:     dto.Version,
		CreatedAt:   formatTime(dto.CreatedAt),
		UpdatedAt:   formatTime(dto.UpdatedAt),
	}
}

func rateFromDomain(r *domain.Rate) RateResponse {
	days := make([]string, 0, len(r.DaysOfWeek()))
	for _, d := range r.DaysOfWeek() {
		days = append(days, string(d))
	}
	resp := RateResponse{
		RateID:      r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		RateType:    string(r.RateType()),
		BasePrice:   r.BasePrice().String(),
		Currency:    string(r.Currency()),
		ItemType:    r.ItemType(),
		ItemID:      r.ItemID(),
		DaysOfWeek:  days,
		MinStay:     int64Ptr(r.MinStay()),
		MaxStay:     int64Ptr(r.MaxStay()),
		Priority:    int64(r.Priority()),
		Active:      r.IsActive(),
		Version:     r.Version(),
		CreatedAt:   formatTime(r.CreatedAt()),
		UpdatedAt:   formatTime(r.UpdatedAt()),
	}
	if d := r.StartDate(); d != nil {
		resp.StartDate = d.String()
	}
	if d := r.EndDate(); d != nil {
		resp.EndDate = d.String()
	}
	return resp
}

// ModifierResponse is a rate modifier in API responses.
type ModifierResponse struct {
	ModifierID string `json:"modifier_id"`
	RateID     string `json:"rate_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Value      string `json:"value"`
	Condition  string `json:"condition,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func modifierFromDomain(m *domain.RateModifier) ModifierResponse {
	return ModifierResponse{
		ModifierID: m.ID(),
		RateID:     m.RateID(),
		Name:       m.Name(),
		Type:       string(m.Type()),
		Value:      ratString(m.Value()),
		Condition:  m.Condition(),
		CreatedAt:  formatTime(m.CreatedAt()),
	}
}

// ContributionResponse is one modifier's share of a price breakdown.
type ContributionResponse struct {
	Name   string        `json:"name"`
	Amount *domain.Money `json:"amount"`
}

// BreakdownResponse is a catalog price breakdown.
type BreakdownResponse struct {
	BasePrice   *domain.Money          `json:"base_price"`
	Modifiers   []ContributionResponse `json:"modifiers"`
	TotalPrice  *domain.Money          `json:"total_price"`
	Currency    string                 `json:"currency"`
	Nights      int                    `json:"nights"`
	AppliedRate *RateResponse          `json:"applied_rate"`
}

func breakdownFromDomain(b domain.PriceBreakdown) BreakdownResponse {
	mods := make([]ContributionResponse, 0, len(b.Modifiers))
	for _, m := range b.Modifiers {
		mods = append(mods, ContributionResponse{Name: m.Name, Amount: m.Amount})
	}
	resp := BreakdownResponse{
		BasePrice:  b.BasePrice,
		Modifiers:  mods,
		TotalPrice: b.TotalPrice,
		Currency:   string(b.Currency),
		Nights:     b.Nights,
	}
	if b.HasRate() {
		rate := rateFromDomain(b.AppliedRate)
		resp.AppliedRate = &rate
	}
	return resp
}

// AdjustmentResponse is one seasonal or dynamic contribution.
type AdjustmentResponse struct {
	Kind       string        `json:"kind"`
	Name       string        `json:"name"`
	Multiplier string        `json:"multiplier"`
	Amount     *domain.Money `json:"amount"`
}

// AdjustedPriceResponse is the adjusted price of one date.
type AdjustedPriceResponse struct {
	Date             domain.Date          `json:"date"`
	BasePrice        *domain.Money        `json:"base_price"`
	Adjustments      []AdjustmentResponse `json:"adjustments"`
	FinalPrice       *domain.Money        `json:"final_price"`
	DaysUntilArrival int                  `json:"days_until_arrival"`
}

func adjustedFromDomain(p domain.AdjustedPrice) AdjustedPriceResponse {
	adj := make([]AdjustmentResponse, 0, len(p.Adjustments))
	for _, a := range p.Adjustments {
		adj = append(adj, AdjustmentResponse{
			Kind:       string(a.Kind),
			Name:       a.Name,
			Multiplier: ratString(a.Multiplier),
			Amount:     a.Amount,
		})
	}
	return AdjustedPriceResponse{
		Date:             p.Date,
		BasePrice:        p.BasePrice,
		Adjustments:      adj,
		FinalPrice:       p.FinalPrice,
		DaysUntilArrival: p.DaysUntilArrival,
	}
}

// SeasonalRuleResponse is a seasonal rule in API responses.
type SeasonalRuleResponse struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Multiplier string   `json:"multiplier"`
	Categories []string `json:"categories"`
	Priority   int      `json:"priority"`
	Active     bool     `json:"active"`
	UpdatedAt  string   `json:"updated_at"`
}

func seasonalRuleFromDomain(r *domain.SeasonalRule) SeasonalRuleResponse {
	cats := r.Categories()
	if cats == nil {
		cats = []string{}
	}
	return SeasonalRuleResponse{
		RuleID:     r.ID(),
		Name:       r.Name(),
		StartDate:  r.Start().String(),
		EndDate:    r.End().String(),
		Multiplier: ratString(r.Multiplier()),
		Categories: cats,
		Priority:   r.Priority(),
		Active:     r.IsActive(),
		UpdatedAt:  formatTime(r.UpdatedAt()),
	}
}

// DynamicConfigResponse is a dynamic pricing config in API responses.
type DynamicConfigResponse struct {
	Domain             string   `json:"domain"`
	Enabled            bool     `json:"enabled"`
	MinOccupancy       float64  `json:"min_occupancy"`
	MaxOccupancy       float64  `json:"max_occupancy"`
	MinMultiplier      string   `json:"min_multiplier"`
	MaxMultiplier      string   `json:"max_multiplier"`
	AdvanceBookingDays int      `json:"advance_booking_days"`
	EarlyBirdDiscount  string   `json:"early_bird_discount"`
	LastMinuteDays     int      `json:"last_minute_days"`
	LastMinutePremium  string   `json:"last_minute_premium"`
	WeekendMultiplier  string   `json:"weekend_multiplier"`
	WeekendDays        []string `json:"weekend_days"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

func dynamicConfigFromDomain(c domain.DynamicPricingConfig) DynamicConfigResponse {
	days := make([]string, 0, len(c.WeekendDays))
	for _, d := range c.WeekendDays {
		days = append(days, string(d))
	}
	resp := DynamicConfigResponse{
		Domain:             c.Domain,
		Enabled:            c.Enabled,
		MinOccupancy:       c.MinOccupancy,
		MaxOccupancy:       c.MaxOccupancy,
		MinMultiplier:      ratString(c.MinMultiplier),
		MaxMultiplier:      ratString(c.MaxMultiplier),
		AdvanceBookingDays: c.AdvanceBookingDays,
		EarlyBirdDiscount:  ratString(c.EarlyBirdDiscount),
		LastMinuteDays:     c.LastMinuteDays,
		LastMinutePremium:  ratString(c.LastMinutePremium),
		WeekendMultiplier:  ratString(c.WeekendMultiplier),
		WeekendDays:        days,
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = formatTime(c.UpdatedAt)
	}
	return resp
}

// ratString renders a rational as a decimal with at most six places and no trailing zeros.
func ratString(r *big.Rat) string {
	if r == nil {
		return "0"
	}
	s := r.FloatString(6)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func parseRatField(field, value string) (*big.Rat, error) {
	r, err := domain.ParseRat(value)
	if err != nil {
		return nil, errBadRequest(field + " must be a decimal number")
	}
	return r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func int64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

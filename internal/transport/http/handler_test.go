package http

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/discount"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/adjust_price"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/best_rate"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/calculate_price"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/get_dynamic_config"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/pricing_calendar"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/memory"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/price_order"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/usecases/quote_booking"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
)

var now = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

type fakeEvents struct{}

func (fakeEvents) ListEvents(_ context.Context, _ *list_events.Request) ([]*m_outbox.Data, int64, error) {
	return []*m_outbox.Data{{
		EventID:       "evt-1",
		EventType:     "rate.created",
		AggregateType: "rate",
		AggregateID:   "rate-1",
		Payload:       spanner.NullJSON{Value: map[string]any{"rate_id": "rate-1"}, Valid: true},
		Status:        "pending",
		CreatedAt:     now,
	}}, 1, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := memory.NewRateCatalog()
	rate, err := domain.NewRate("rate-1", domain.RateParams{
		Name:        "Chalet standard",
		Description: "standard chalet rate",
		RateType:    "standard",
		BasePrice:   domain.MustMoney(100, 1),
		Currency:    "USD",
		ItemType:    "chalet",
		Priority:    1,
	}, now)
	require.NoError(t, err)
	catalog.PutRate(rate)
	fee, err := domain.NewRateModifier("mod-1", "rate-1", domain.ModifierParams{Name: "resort fee", Type: "percentage", Value: big.NewRat(10, 1)}, now)
	require.NoError(t, err)
	catalog.PutModifier(fee)

	clk := clock.NewMockClock(now)
	resolver := services.NewRateResolver(catalog)
	calculator := services.NewPriceCalculator(resolver, catalog)
	configs := memory.NewDynamicConfigs()
	adjuster := services.NewAdjuster(memory.NewSeasonalRules(), configs, clk)

	redemptions := memory.NewRedemptions(clk)
	redemptions.AddCoupon(domain.Coupon{ID: "cpn-1", Code: "SAVE20", DiscountType: domain.ModifierFixed, Value: big.NewRat(20, 1), Active: true})
	redemptions.AddGiftCard(domain.GiftCard{ID: "gc-1", Code: "GIFT30", Balance: domain.MustMoney(30, 1), Currency: "USD", Active: true})
	redemptions.AddLoyaltyAccount(domain.LoyaltyAccount{UserID: "user-1", Points: 5000})
	pipeline := discount.NewPipeline(redemptions, discount.Config{}, zap.NewNop())
	accrual := discount.NewAccrual(redemptions, nil, discount.Config{}, zap.NewNop())

	h := NewHandler(Dependencies{
		BestRate:         best_rate.NewQuery(resolver),
		CalculatePrice:   calculate_price.NewQuery(calculator),
		AdjustPrice:      adjust_price.NewQuery(adjuster),
		PricingCalendar:  pricing_calendar.NewQuery(adjuster),
		GetDynamicConfig: get_dynamic_config.NewQuery(configs),
		QuoteBooking:     quote_booking.NewInteractor(calculator, adjuster),
		PriceOrder:       price_order.NewInteractor(pipeline, accrual, big.NewRat(11, 100)),
		ListEvents:       list_events.NewQuery(fakeEvents{}),
	}, zap.NewNop())

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	status, body := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestBestRate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/pricing/best-rate?item_type=chalet&date=2026-07-04", "")
		require.Equal(t, http.StatusOK, status)
		rate := body["rate"].(map[string]any)
		assert.Equal(t, "rate-1", rate["rate_id"])
		assert.Equal(t, "100.00", rate["base_price"])
	})

	t.Run("no matching rate", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/pricing/best-rate?item_type=villa&date=2026-07-04", "")
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, body["rate"])
	})

	t.Run("missing date", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/pricing/best-rate?item_type=chalet", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_request", body["error"])
	})

	t.Run("malformed date", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/pricing/best-rate?item_type=chalet&date=04/07/2026", "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "InvalidDate", body["error"])
	})
}

func TestCalculatePrice(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/pricing/calculate?item_type=chalet&date=2026-07-04&nights=3", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 300.0, body["base_price"])
	assert.Equal(t, 330.0, body["total_price"])
	assert.Equal(t, 3.0, body["nights"])
	mods := body["modifiers"].([]any)
	require.Len(t, mods, 1)
	assert.Equal(t, 30.0, mods[0].(map[string]any)["amount"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/pricing/calculate?item_type=chalet&date=2026-07-04&nights=0", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvalidStayRange", body["error"])
}

func TestAdjustPrice(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/pricing/adjust", `{"date":"2026-07-08","base_price":"80"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 80.0, body["final_price"])
	assert.Equal(t, "2026-07-08", body["date"])

	status, body = do(t, srv, http.MethodPost, "/api/v1/pricing/adjust", `{"date":"2026-07-08","base_price":80,"occupancy":150}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvalidOccupancy", body["error"])

	status, body = do(t, srv, http.MethodPost, "/api/v1/pricing/adjust", `{"date":"2026-07-08"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body["error"])

	status, body = do(t, srv, http.MethodPost, "/api/v1/pricing/adjust", `{"date":"2026-07-08","base_price":80,"surprise":true}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body["error"])
}

func TestPricingCalendar(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/pricing/calendar", `{"from":"2026-07-01","to":"2026-07-03","base_price":100}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["days"], 3)

	status, body = do(t, srv, http.MethodPost, "/api/v1/pricing/calendar", `{"from":"2026-07-03","to":"2026-07-01","base_price":100}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "InvalidDateRange", body["error"])
}

func TestQuoteBooking(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/pricing/quote", `{"item_type":"chalet","arrival":"2026-07-08","nights":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 220.0, body["total"])
	assert.Equal(t, "USD", body["currency"])
}

func TestPriceOrder(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/orders/price", `{
		"order_id": "order-1",
		"customer_id": "user-1",
		"lines": [{"unit_price": "100", "quantity": 1}],
		"coupon_code": "SAVE20",
		"gift_cards": [{"code": "GIFT30", "amount": 30}],
		"loyalty_points": 1000
	}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 111.0, body["pre_discount_total"])
	assert.Equal(t, 8.8, body["tax_amount"])
	assert.Equal(t, 60.0, body["discount_amount"])
	assert.Equal(t, 48.8, body["final_total"])
	assert.Equal(t, 48.0, body["loyalty_points_earned"])
	assert.Len(t, body["steps"], 3)

	status, body = do(t, srv, http.MethodPost, "/api/v1/orders/price", `{"lines": []}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestDynamicConfigNotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/dynamic-config/resort", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DynamicConfigNotFound", body["error"])
	assert.Equal(t, 404.0, body["status"])
	assert.NotEmpty(t, body["request_id"])
}

func TestListEvents(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/events?event_type=rate.created&limit=10", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["total_count"])
	events := body["events"].([]any)
	require.Len(t, events, 1)
	evt := events[0].(map[string]any)
	assert.Equal(t, "rate", evt["aggregate_type"])
	assert.Equal(t, "rate-1", evt["payload"].(map[string]any)["rate_id"])

	status, _ = do(t, srv, http.MethodGet, "/api/v1/events?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnconfiguredRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/rates", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "service_unavailable", body["error"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["error"])
}

func TestMapError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, mapError(domain.ErrVersionConflict).Status)
	assert.Equal(t, "RateNotFound", mapError(domain.ErrRateNotFound).Code)
	assert.Equal(t, http.StatusInternalServerError, mapError(assert.AnError).Status)
	assert.Equal(t, "internal_error", mapError(assert.AnError).Code)
}

func TestRatString(t *testing.T) {
	assert.Equal(t, "1.5", ratString(big.NewRat(3, 2)))
	assert.Equal(t, "100", ratString(big.NewRat(100, 1)))
	assert.Equal(t, "0", ratString(new(big.Rat)))
	assert.Equal(t, "0.333333", ratString(big.NewRat(1, 3)))
}

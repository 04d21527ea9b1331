package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/discount"
	domainservices "github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain/services"
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
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo/cache"
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
	"github.com/light-bringer/resort-pricing-service/internal/config"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/committer"
	httphandler "github.com/light-bringer/resort-pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   redis.UniversalClient
	HTTPHandler   *httphandler.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClockIn(cfg.Pricing.Location)
	comm := committer.NewCommitter(spannerClient)

	// 3. Create repositories
	rateRepo := repo.NewRateRepo(spannerClient)
	modifierRepo := repo.NewModifierRepo(spannerClient)
	seasonalRepo := repo.NewSeasonalRuleRepo(spannerClient)
	dynamicConfigRepo := repo.NewDynamicConfigRepo(spannerClient)
	priceHistoryRepo := repo.NewPriceHistoryRepo(spannerClient)
	redemptions := repo.NewRedemptionRepo(spannerClient, clk)
	outboxRepo := repo.NewOutboxRepo()
	readModel := repo.NewReadModel(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	// 4. Put the applicable-rate cache in front of the catalog when Redis is configured
	var rateStore contracts.RateStore = rateRepo
	var invalidator contracts.RateCacheInvalidator = cache.NopInvalidator{}
	var redisClient redis.UniversalClient
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, rate lookups will hit Spanner until it recovers",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		rateCache := cache.NewRateCache(rateRepo, redisClient, cfg.Redis.TTL, logger)
		rateStore = rateCache
		invalidator = rateCache
	}

	// 5. Domain services
	resolver := domainservices.NewRateResolver(rateStore)
	calculator := domainservices.NewPriceCalculator(resolver, rateStore)
	adjuster := domainservices.NewAdjuster(seasonalRepo, dynamicConfigRepo, clk)
	discountCfg := discount.Config{StepTimeout: cfg.Pricing.StepTimeout, PointValue: cfg.Pricing.PointValue}
	pipeline := discount.NewPipeline(redemptions, discountCfg, logger)
	accrual := discount.NewAccrual(redemptions, cfg.Pricing.PointsPerDollar, discountCfg, logger)

	// 6. Create command use cases (write operations)
	deactivateRate := deactivate_rate.NewInteractor(rateRepo, outboxRepo, invalidator, comm, clk)
	deps := httphandler.Dependencies{
		CreateRate:     create_rate.NewInteractor(rateRepo, outboxRepo, priceHistoryRepo, invalidator, comm, clk),
		UpdateRate:     update_rate.NewInteractor(rateRepo, outboxRepo, priceHistoryRepo, invalidator, comm, clk),
		ActivateRate:   activate_rate.NewInteractor(rateRepo, outboxRepo, invalidator, comm, clk),
		DeactivateRate: deactivateRate,
		DeleteRate:     delete_rate.NewInteractor(deactivateRate),
		AddModifier:    add_modifier.NewInteractor(rateRepo, modifierRepo, outboxRepo, invalidator, comm, clk),
		RemoveModifier: remove_modifier.NewInteractor(rateRepo, modifierRepo, outboxRepo, invalidator, comm, clk),

		SaveSeasonalRule:     save_seasonal_rule.NewInteractor(seasonalRepo, outboxRepo, comm, clk),
		DeleteSeasonalRule:   delete_seasonal_rule.NewInteractor(seasonalRepo, outboxRepo, comm, clk),
		ReplaceDynamicConfig: replace_dynamic_config.NewInteractor(dynamicConfigRepo, outboxRepo, comm, clk),

		PriceOrder:   price_order.NewInteractor(pipeline, accrual, cfg.Pricing.DefaultTaxRate),
		QuoteBooking: quote_booking.NewInteractor(calculator, adjuster),

		// 7. Create query use cases (read operations)
		GetRate:           get_rate.NewQuery(readModel),
		ListRates:         list_rates.NewQuery(readModel),
		ListModifiers:     list_modifiers.NewQuery(rateRepo, modifierRepo),
		PriceHistory:      price_history.NewQuery(priceHistoryRepo),
		BestRate:          best_rate.NewQuery(resolver),
		CalculatePrice:    calculate_price.NewQuery(calculator),
		AdjustPrice:       adjust_price.NewQuery(adjuster),
		PricingCalendar:   pricing_calendar.NewQuery(adjuster),
		ListSeasonalRules: list_seasonal_rules.NewQuery(seasonalRepo),
		GetDynamicConfig:  get_dynamic_config.NewQuery(dynamicConfigRepo),
		ListEvents:        list_events.NewQuery(eventsReadModel),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		RedisClient:   redisClient,
		HTTPHandler:   httphandler.NewHandler(deps, logger),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}

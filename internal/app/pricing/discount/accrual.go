package discount

import (
	"context"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// DefaultPointsPerDollar is the accrual rate when none is configured.
var DefaultPointsPerDollar = big.NewRat(1, 1)

// Accrual credits loyalty points for the amount a customer actually paid.
type Accrual struct {
	redemptions     contracts.RedemptionService
	pointsPerDollar *big.Rat
	cfg             Config
	logger          *zap.Logger
}

// NewAccrual creates a new Accrual.
func NewAccrual(redemptions contracts.RedemptionService, pointsPerDollar *big.Rat, cfg Config, logger *zap.Logger) *Accrual {
	if pointsPerDollar == nil || pointsPerDollar.Sign() <= 0 {
		pointsPerDollar = DefaultPointsPerDollar
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultStepTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accrual{redemptions: redemptions, pointsPerDollar: pointsPerDollar, cfg: cfg, logger: logger}
}

// Earn credits floor(final × pointsPerDollar) points to the customer and records
// them on the order. Anonymous or free orders earn nothing. Failures are logged only.
func (a *Accrual) Earn(ctx context.Context, order *domain.OrderTotal, customerID string) {
	if strings.TrimSpace(customerID) == "" || !order.FinalTotal.IsPositive() {
		return
	}

	stepCtx, cancel := context.WithTimeout(ctx, a.cfg.StepTimeout)
	defer cancel()

	res, err := a.redemptions.EarnLoyaltyPoints(stepCtx, customerID, order.FinalTotal, order.OrderID, a.pointsPerDollar)
	if err != nil {
		stepErr := newStepError(StepAccrual, customerID, err)
		logging.FromContext(ctx, a.logger).Warn("loyalty accrual failed",
			zap.String("order_id", order.OrderID),
			zap.String("kind", string(stepErr.Kind)),
			zap.Error(err),
		)
		order.Steps = append(order.Steps, domain.StepOutcome{
			Step:      string(StepAccrual),
			Reference: customerID,
			Status:    domain.StepFailed,
			Amount:    domain.Zero(),
			Reason:    stepErr.Error(),
		})
		return
	}

	order.LoyaltyPointsEarned = res.PointsEarned
}

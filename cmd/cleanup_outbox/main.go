package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

// Config controls the outbox retention sweep.
type Config struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

const retentionFilter = `(status = 'completed' AND processed_at < @completedCutoff)
		   OR (status = 'failed' AND processed_at < @failedCutoff)`

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.SpannerDB, "database", os.Getenv("SPANNER_DATABASE"), "Spanner database (projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&cfg.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&cfg.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be deleted without deleting")
	flag.Parse()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := cleanupOutbox(context.Background(), cfg, logger); err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}

	logger.Info("cleanup completed")
}

func (c Config) validate() error {
	if c.SpannerDB == "" {
		return errors.New("-database flag or SPANNER_DATABASE is required")
	}
	if c.CompletedRetentionDays < 1 || c.FailedRetentionDays < 1 {
		return errors.New("retention days must be at least 1")
	}
	return nil
}

// cutoffs returns the processed_at bounds for completed and failed events.
func (c Config) cutoffs(now time.Time) (completed, failed time.Time) {
	now = now.UTC()
	return now.AddDate(0, 0, -c.CompletedRetentionDays), now.AddDate(0, 0, -c.FailedRetentionDays)
}

func cleanupOutbox(ctx context.Context, cfg Config, logger *zap.Logger) error {
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	completedCutoff, failedCutoff := cfg.cutoffs(time.Now())
	params := map[string]interface{}{
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
	}

	logger.Info("starting outbox cleanup",
		zap.Time("completed_cutoff", completedCutoff),
		zap.Time("failed_cutoff", failedCutoff),
		zap.Bool("dry_run", cfg.DryRun),
	)

	if cfg.DryRun {
		return dryRunCleanup(ctx, client, params, logger)
	}
	return performCleanup(ctx, client, params, logger)
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, params map[string]interface{}, logger *zap.Logger) error {
	stmt := spanner.Statement{
		SQL: `SELECT status, COUNT(*) AS count FROM outbox_events
		WHERE ` + retentionFilter + `
		GROUP BY status`,
		Params: params,
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var total int64
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}

		logger.Info("would delete events", zap.String("status", status), zap.Int64("count", count))
		total += count
	}

	logger.Info("dry run finished", zap.Int64("total", total))
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, params map[string]interface{}, logger *zap.Logger) error {
	stmt := spanner.Statement{
		SQL:    `DELETE FROM outbox_events WHERE ` + retentionFilter,
		Params: params,
	}

	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		rowCount, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		logger.Info("deleted outbox events", zap.Int64("count", rowCount))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return nil
}

// Command check_events prints the most recent outbox events, optionally filtered.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/resort-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/resort-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/resort-pricing-service/internal/pkg/logging"
)

func main() {
	var (
		database = flag.String("database", os.Getenv("SPANNER_DATABASE"), "Spanner database path")
		req      list_events.Request
	)
	flag.StringVar(&req.EventType, "type", "", "Filter by event type, e.g. rate.created")
	flag.StringVar(&req.AggregateType, "aggregate-type", "", "Filter by aggregate type")
	flag.StringVar(&req.AggregateID, "aggregate-id", "", "Filter by aggregate id")
	flag.StringVar(&req.Status, "status", "", "Filter by status")
	flag.IntVar(&req.Limit, "limit", 10, "Maximum number of events to print")
	flag.Parse()

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *database == "" {
		logger.Fatal("-database flag or SPANNER_DATABASE is required")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, *database)
	if err != nil {
		logger.Fatal("failed to create spanner client", zap.Error(err))
	}
	defer client.Close()

	events, total, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, &req)
	if err != nil {
		logger.Fatal("failed to list events", zap.Error(err))
	}

	if err := printEvents(os.Stdout, events, total); err != nil {
		logger.Fatal("failed to print events", zap.Error(err))
	}
}

func printEvents(w io.Writer, events []*m_outbox.Data, total int64) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "no events found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tTYPE\tAGGREGATE\tSTATUS\tEVENT")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s/%s\t%s\t%s\n",
			e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), e.EventType, e.AggregateType, e.AggregateID, e.Status, e.EventID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "showing %d of %d events\n", len(events), total)
	return err
}

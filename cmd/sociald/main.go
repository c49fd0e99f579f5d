// Command sociald runs one digest pass: collect feeds, score, draft copy,
// publish the day's Google Doc, and email the summary.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pevans/sociald/config"
	"github.com/pevans/sociald/copywriter"
	"github.com/pevans/sociald/digest"
	"github.com/pevans/sociald/emailer"
	"github.com/pevans/sociald/feeds"
	"github.com/pevans/sociald/gdocs"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	runner, err := buildRunner(context.Background())
	if err != nil {
		slog.Error("failed to build runner", "error", err)
		os.Exit(1)
	}

	if err := runner.Run(context.Background()); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// buildRunner wires every component from process settings.
func buildRunner(ctx context.Context) (*digest.Runner, error) {
	settings := config.Load()

	sources, err := feeds.LoadSources(settings.FeedsPath)
	if err != nil {
		return nil, err
	}
	slog.Info("feed sources loaded", "path", settings.FeedsPath, "count", len(sources))

	publisher, err := gdocs.NewPublisher(ctx, settings)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	drafter := copywriter.New(settings.DeepSeekAPIKey, httpClient)
	notifier := emailer.New(settings.SMTPSender, settings.SMTPAppPassword)

	return digest.NewRunner(
		feeds.NewCollector(),
		drafter,
		publisher,
		notifier,
		sources,
		settings.SMTPTo,
	), nil
}

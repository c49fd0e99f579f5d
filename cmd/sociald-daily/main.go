// Command sociald-daily runs the digest on a daily schedule: 08:00 in the
// configured timezone, until interrupted.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pevans/sociald/config"
	"github.com/pevans/sociald/copywriter"
	"github.com/pevans/sociald/digest"
	"github.com/pevans/sociald/emailer"
	"github.com/pevans/sociald/feeds"
	"github.com/pevans/sociald/gdocs"
	"github.com/pevans/sociald/scheduler"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	settings := config.Load()

	runner, err := buildRunner(context.Background(), settings)
	if err != nil {
		slog.Error("failed to build runner", "error", err)
		os.Exit(1)
	}

	sched, err := scheduler.New(settings.TZSchedule)
	if err != nil {
		slog.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	task := func() {
		if err := runner.Run(context.Background()); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	}
	if err := sched.Schedule(task); err != nil {
		slog.Error("failed to schedule daily run", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping scheduler", "signal", sig.String())
		sched.Stop()
	}()

	slog.Info("scheduler started, will run daily at 08:00", "timezone", settings.TZSchedule)
	sched.Run()
	slog.Info("scheduler stopped")
}

// buildRunner wires every component from process settings.
func buildRunner(ctx context.Context, settings config.Settings) (*digest.Runner, error) {
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

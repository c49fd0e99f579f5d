// Package digest runs one end-to-end pass: collect entries, score them,
// pick the day's top items, draft copy, publish the document, and send the
// summary email.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pevans/sociald/copywriter"
	"github.com/pevans/sociald/feeds"
	"github.com/pevans/sociald/render"
	"github.com/pevans/sociald/scorer"
)

// defaultPickCount is how many entries are selected per run.
const defaultPickCount = 3

// Collector gathers all entries for a run.
type Collector interface {
	CollectAll(ctx context.Context, sources []feeds.Source) ([]feeds.Entry, error)
}

// Drafter generates social copy for one entry.
type Drafter interface {
	Draft(ctx context.Context, entry feeds.Entry) (copywriter.Copy, error)
}

// Publisher writes the day's picks to the document store.
type Publisher interface {
	UpsertDaily(picks []render.Pick, now time.Time) (string, error)
}

// Notifier sends the plaintext summary email.
type Notifier interface {
	Send(subject, body, to string) error
}

// Runner sequences one digest run. Every step is synchronous; any failure
// aborts the run with no partial-completion bookkeeping.
type Runner struct {
	collector  Collector
	drafter    Drafter
	publisher  Publisher
	notifier   Notifier
	sources    []feeds.Source
	recipients string
	pickCount  int
	now        func() time.Time
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(collector Collector, drafter Drafter, publisher Publisher, notifier Notifier, sources []feeds.Source, recipients string) *Runner {
	return &Runner{
		collector:  collector,
		drafter:    drafter,
		publisher:  publisher,
		notifier:   notifier,
		sources:    sources,
		recipients: recipients,
		pickCount:  defaultPickCount,
		now:        time.Now,
	}
}

// Run executes one digest pass. Zero collected entries is an early,
// non-erroring stop with no downstream calls.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.New()
	log := slog.With("run_id", runID.String())

	entries, err := r.collector.CollectAll(ctx, r.sources)
	if err != nil {
		return fmt.Errorf("failed to collect entries: %w", err)
	}
	if len(entries) == 0 {
		log.Info("no items found from feeds")
		return nil
	}
	log.Info("entries collected", "count", len(entries), "sources", len(r.sources))

	now := r.now()
	scored := scorer.Score(entries, now)
	top := scorer.SelectTopK(scored, r.pickCount)
	log.Info("entries selected", "count", len(top))

	picks := make([]render.Pick, 0, len(top))
	for _, entry := range top {
		generated, err := r.drafter.Draft(ctx, entry.Entry)
		if err != nil {
			return fmt.Errorf("failed to draft copy for %s: %w", entry.Link, err)
		}
		picks = append(picks, render.Pick{ScoredEntry: entry, Generated: generated})
		log.Info("copy drafted", "link", entry.Link, "score", entry.Score)
	}

	docURL, err := r.publisher.UpsertDaily(picks, now)
	if err != nil {
		return fmt.Errorf("failed to publish document: %w", err)
	}
	log.Info("document published", "url", docURL)

	dateStr := render.DateString(now)
	subject := render.EmailSubject(dateStr)
	body := render.EmailBody(dateStr, picks, docURL)
	if err := r.notifier.Send(subject, body, r.recipients); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	log.Info("run complete", "doc_url", docURL, "picks", len(picks))
	return nil
}

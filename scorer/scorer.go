// Package scorer assigns heuristic relevance scores to feed entries and
// selects the top picks for the day.
//
// The score blends three terms: a linear recency decay over the last 36
// hours, a title-length quality bump, and a capped keyword-hit count over
// the title and summary.
package scorer

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pevans/sociald/feeds"
)

// keywords is the fixed list of domain terms matched case-insensitively
// against each entry's title and summary.
var keywords = []string{
	"AI", "LLM", "DeepSeek", "OpenAI", "Google", "Microsoft", "startup", "model",
	"privacy", "security", "research", "launch", "update", "bug", "breach",
	"cloud", "data", "vision", "robot", "chip", "GPU", "NVIDIA", "Meta",
}

// ScoredEntry is an Entry annotated with its heuristic relevance score.
// The score is non-negative and rounded to 4 decimal places.
type ScoredEntry struct {
	feeds.Entry
	Score float64
}

// Score annotates every entry with its score and returns the list sorted
// descending by score. The sort is stable, so entries with equal scores keep
// their original relative order.
func Score(entries []feeds.Entry, now time.Time) []ScoredEntry {
	scored := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		scored = append(scored, ScoredEntry{Entry: e, Score: scoreEntry(e, now)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// scoreEntry computes the heuristic score for a single entry.
func scoreEntry(e feeds.Entry, now time.Time) float64 {
	s := 0.0
	title := strings.TrimSpace(e.Title)
	summary := strings.TrimSpace(e.Summary)

	// Recency: linear decay from 1.5 at age zero to 0 at 36 hours, never
	// negative. Entries without a publication date contribute nothing here.
	if e.Published != nil {
		ageHours := now.UTC().Sub(e.Published.UTC()).Hours()
		s += math.Max(0, 1.5*(1-ageHours/36))
	}

	// Title quality.
	length := len([]rune(title))
	if length >= 30 && length <= 120 {
		s += 0.5
	} else if length > 0 {
		s += 0.2
	}

	// Keyword hits, capped at 1.5.
	text := strings.ToLower(title + " " + summary)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}
	s += math.Min(1.5, 0.2*float64(hits))

	return math.Round(s*10000) / 10000
}

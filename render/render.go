// Package render builds the plain-text document body and email summary for
// a day's picks.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/pevans/sociald/copywriter"
	"github.com/pevans/sociald/scorer"
)

// Pick is a scored entry chosen for publication, with its generated copy.
type Pick struct {
	scorer.ScoredEntry
	Generated copywriter.Copy
}

// DocTitle returns the deterministic document name for the given day.
func DocTitle(now time.Time) string {
	return now.Format("Daily Social Posts - 2006-01-02")
}

// DateString formats the date used in document and email bodies.
func DateString(now time.Time) string {
	return now.Format("2006-01-02")
}

// DocBody renders the document text for the day's picks. The Docs API
// inserts the text as paragraphs, so the layout is plain lines.
func DocBody(dateStr string, picks []Pick) string {
	lines := []string{fmt.Sprintf("Daily Social Posts – %s", dateStr), ""}
	for i, p := range picks {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, p.Title),
			fmt.Sprintf("   Source: %s", p.Source),
			fmt.Sprintf("   URL: %s", p.Link),
			"",
			"   Twitter:",
			fmt.Sprintf("   %s", p.Generated.Twitter),
			"",
			"   LinkedIn:",
			fmt.Sprintf("   %s", p.Generated.LinkedIn),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// EmailSubject returns the summary email subject for the day.
func EmailSubject(dateStr string) string {
	return fmt.Sprintf("Daily Social Picks – %s", dateStr)
}

// EmailBody renders the plaintext email summary, with each pick's tweet
// previewed at up to 200 characters.
func EmailBody(dateStr string, picks []Pick, docURL string) string {
	lines := []string{fmt.Sprintf("Daily Social Picks – %s", dateStr), ""}
	for i, p := range picks {
		lines = append(lines,
			fmt.Sprintf("%d) %s", i+1, p.Title),
			fmt.Sprintf("   %s", p.Link),
			fmt.Sprintf("   Tweet: %s", preview(p.Generated.Twitter, 200)),
			"",
		)
	}
	lines = append(lines, fmt.Sprintf("Google Doc: %s", docURL))
	return strings.Join(lines, "\n")
}

// preview truncates s to limit characters, marking the cut with an ellipsis.
func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

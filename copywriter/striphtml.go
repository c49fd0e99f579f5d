package copywriter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML reduces possibly HTML-bearing feed summary text to plain text.
// Plain input passes through unchanged; on a parse failure the raw text is
// returned rather than losing the summary.
func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}

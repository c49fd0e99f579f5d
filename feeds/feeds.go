// Package feeds fetches RSS and Atom feeds and normalizes their items into
// Entry records.
package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry represents a single normalized article pulled from a feed. Published
// is nil when the feed carried no parseable publication date.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time
	Source    string
}

// Collector fetches entries from configured feed sources.
type Collector struct {
	parser *gofeed.Parser
}

// NewCollector creates a Collector. The gofeed parser automatically detects
// and handles both RSS and Atom formats.
func NewCollector() *Collector {
	return &Collector{parser: gofeed.NewParser()}
}

// Fetch fetches one feed and returns its items as normalized entries.
func (c *Collector) Fetch(ctx context.Context, url string) ([]Entry, error) {
	feed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	// Source name: feed-level title, falling back to the URL when the feed
	// has none.
	source := feed.Title
	if source == "" {
		source = url
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, entryFromItem(item, source))
	}

	return entries, nil
}

// CollectAll fetches every source in order and concatenates the results.
// A fetch failure aborts the collection.
func (c *Collector) CollectAll(ctx context.Context, sources []Source) ([]Entry, error) {
	var all []Entry
	for _, src := range sources {
		entries, err := c.Fetch(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// entryFromItem converts a feed item to an Entry. gofeed normalizes RSS
// <description> and Atom <summary> into item.Description, and <pubDate> /
// <published> into PublishedParsed.
func entryFromItem(item *gofeed.Item, source string) Entry {
	var published *time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed
	} else if item.Published != "" {
		// The feed carried a date string gofeed could not parse. Forgiven:
		// the entry simply has no publication date.
		slog.Warn("unparseable publish date", "date", item.Published, "link", item.Link)
	}

	return Entry{
		Title:     strings.TrimSpace(item.Title),
		Link:      item.Link,
		Summary:   item.Description,
		Published: published,
		Source:    source,
	}
}

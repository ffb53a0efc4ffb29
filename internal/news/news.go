// Package news fetches financial headlines from a Google News RSS feed.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one headline with its source metadata.
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

// Fetcher pulls and trims items from a single RSS feed URL.
type Fetcher struct {
	feedURL string
	parser  *gofeed.Parser
}

// NewFetcher creates a fetcher for the given RSS URL.
func NewFetcher(feedURL string) *Fetcher {
	p := gofeed.NewParser()
	p.UserAgent = "gullak/1.0"
	return &Fetcher{feedURL: feedURL, parser: p}
}

// Fetch returns up to limit items, newest first as the feed orders them.
// Transport or parse failures are returned for the caller to convert into
// a user-facing warning; they never carry partial results.
func (f *Fetcher) Fetch(ctx context.Context, limit int) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	return trim(feed, limit), nil
}

func trim(feed *gofeed.Feed, limit int) []Item {
	if limit <= 0 {
		return nil
	}
	items := make([]Item, 0, limit)
	for _, e := range feed.Items {
		if len(items) == limit {
			break
		}
		items = append(items, Item{
			Title:     e.Title,
			Link:      e.Link,
			Published: e.Published,
			Summary:   e.Description,
		})
	}
	return items
}

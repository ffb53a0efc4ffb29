package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
)

const rssDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>finance india - Google News</title>
  <item><title>RBI holds repo rate</title><link>https://example.com/1</link><pubDate>Mon, 25 Aug 2025 08:00:00 GMT</pubDate><description>Rates unchanged</description></item>
  <item><title>Sensex climbs</title><link>https://example.com/2</link><pubDate>Mon, 25 Aug 2025 07:00:00 GMT</pubDate><description>Markets up</description></item>
  <item><title>Rupee steady</title><link>https://example.com/3</link><pubDate>Mon, 25 Aug 2025 06:00:00 GMT</pubDate><description>FX calm</description></item>
</channel>
</rss>`

func TestFetchLimitsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssDoc)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL)
	items, err := f.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "RBI holds repo rate" || items[0].Link != "https://example.com/1" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[0].Summary != "Rates unchanged" {
		t.Errorf("summary = %q", items[0].Summary)
	}
}

func TestFetchLimitBeyondFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssDoc)
	}))
	defer srv.Close()

	items, err := NewFetcher(srv.URL).Fetch(context.Background(), 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want all 3", len(items))
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewFetcher(srv.URL).Fetch(context.Background(), 5); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
}

func TestTrimZeroLimit(t *testing.T) {
	if got := trim(&gofeed.Feed{}, 0); got != nil {
		t.Errorf("trim with zero limit = %v", got)
	}
}

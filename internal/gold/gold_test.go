package gold

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractKaratSpans(t *testing.T) {
	doc := docFrom(t, `<html><body>
		<span id="24K-price">₹ 7,245</span>
		<span id="22K-price">₹ 6,641</span>
		<span id="18K-price">₹ 5,434</span>
	</body></html>`)

	got := extract(doc)
	want := map[string]string{
		"24K_price": "₹ 7,245",
		"22K_price": "₹ 6,641",
		"18K_price": "₹ 5,434",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("extract()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestExtractPartialSpans(t *testing.T) {
	doc := docFrom(t, `<html><body><span id="22K-price">₹ 6,641</span></body></html>`)
	got := extract(doc)
	if len(got) != 1 || got["22K_price"] != "₹ 6,641" {
		t.Errorf("extract() = %v", got)
	}
}

func TestExtractFallsBackToIntro(t *testing.T) {
	doc := docFrom(t, `<html><body>
		<div id="gr_top_intro_content"><div><p>Gold rate today is ₹7,245 per gram for 24 karat.</p></div></div>
	</body></html>`)

	got := extract(doc)
	if !strings.Contains(got["raw"], "Gold rate today") {
		t.Errorf("fallback raw = %q", got["raw"])
	}
}

func TestExtractLastResortSnippet(t *testing.T) {
	long := strings.Repeat("gold rates table content ", 40)
	doc := docFrom(t, fmt.Sprintf(`<html><body><div class="gold-rates-table">%s</div></body></html>`, long))

	got := extract(doc)
	if got["raw"] == "" {
		t.Fatal("no raw fallback produced")
	}
	if len(got["raw"]) > 400 {
		t.Errorf("snippet not capped: %d bytes", len(got["raw"]))
	}
}

func TestFetchBuildsCitySlugURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `<html><body><span id="24K-price">₹ 7,245</span></body></html>`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/gold-rates/")
	got, err := c.Fetch(context.Background(), "New Delhi")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if path != "/gold-rates/newdelhi.html" {
		t.Errorf("city page path = %q", path)
	}
	if got["24K_price"] != "₹ 7,245" {
		t.Errorf("prices = %v", got)
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL + "/").Fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}

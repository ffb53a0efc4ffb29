// Package gold scrapes current gold rates from goodreturns.in, optionally
// for a specific city page. Prices come back as a karat-label → price-text
// map, with a raw-text fallback when the price spans are missing.
package gold

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var karats = []string{"24K", "22K", "18K"}

// Client fetches and parses gold rate pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL
// (e.g. https://www.goodreturns.in/gold-rates/).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Fetch retrieves prices for the national page, or the city page when city
// is non-empty. Transport failures are returned for the caller to turn
// into a user-facing warning.
func (c *Client) Fetch(ctx context.Context, city string) (map[string]string, error) {
	url := c.baseURL
	if city != "" {
		slug := strings.ReplaceAll(strings.ToLower(city), " ", "")
		url = c.baseURL + slug + ".html"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build gold rate request: %w", err)
	}
	req.Header.Set("User-Agent", "gullak/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gold rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch gold rates: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse gold rate page: %w", err)
	}
	return extract(doc), nil
}

// extract pulls the karat price spans, falling back to the intro paragraph
// and finally to a snippet of the rates table text.
func extract(doc *goquery.Document) map[string]string {
	prices := make(map[string]string)
	for _, k := range karats {
		text := strings.TrimSpace(doc.Find("span#" + k + "-price").Text())
		if text != "" {
			prices[k+"_price"] = text
		}
	}
	if len(prices) > 0 {
		return prices
	}

	if p := doc.Find("#gr_top_intro_content > div > p").First(); p.Length() > 0 {
		if text := strings.TrimSpace(p.Text()); text != "" {
			return map[string]string{"raw": text}
		}
	}

	sel := doc.Find("div.gold-rates-table")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	text := strings.TrimSpace(strings.Join(strings.Fields(sel.Text()), " "))
	if len(text) > 400 {
		text = text[:400]
	}
	return map[string]string{"raw": text}
}

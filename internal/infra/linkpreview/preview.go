// Package linkpreview extracts Open Graph metadata from product pages.
// It is used to enrich substitute suggestions whose search hit carried no
// usable image.
package linkpreview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Preview is the metadata extracted from a page.
type Preview struct {
	Title    string
	ImageURL string
}

// Fetcher downloads a page and pulls its Open Graph tags.
type Fetcher struct {
	httpClient *http.Client
	maxBody    int64
}

const defaultMaxBody = 2 << 20 // 2MB is plenty for any <head>

// NewFetcher creates a preview fetcher with the given timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    defaultMaxBody,
	}
}

// Fetch retrieves the page and returns its og:title and og:image values,
// falling back to the <title> element when og:title is absent.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create preview request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch preview: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch preview: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(http.MaxBytesReader(nil, resp.Body, f.maxBody))
	if err != nil {
		return nil, fmt.Errorf("parse preview html: %w", err)
	}

	preview := &Preview{}
	doc.Find(`meta[property="og:title"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		preview.Title, _ = s.Attr("content")
		return false
	})
	doc.Find(`meta[property="og:image"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		preview.ImageURL, _ = s.Attr("content")
		return false
	})
	if preview.Title == "" {
		preview.Title = doc.Find("title").First().Text()
	}

	return preview, nil
}

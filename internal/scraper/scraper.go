package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/hockeyref-scraper/internal/logger"
)

// Scraper fetches pages relative to a base URL
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// New creates a new Scraper instance
func New(baseURL, userAgent string, timeout time.Duration) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
	}
}

// URL returns the absolute URL of a site-relative path such as "/leagues/NHL_2024_games.html"
func (s *Scraper) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// FetchTable fetches path and returns the table whose id is tableID
func (s *Scraper) FetchTable(ctx context.Context, path, tableID string) (*Table, error) {
	url := s.URL(path)

	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return findTable(doc, tableID, url)
}

// fetch retrieves and parses a page
func (s *Scraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	logger.RecordTiming("fetch.page", time.Since(start))
	logger.Debug("Fetched page", logger.Fields{
		"url":    url,
		"status": resp.StatusCode,
	})

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return parseDocument(resp.Body, url)
}

func parseDocument(r io.Reader, url string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("parsing HTML: %w", err)}
	}
	return doc, nil
}

// findTable locates a table by id in the live DOM, then inside HTML comments
func findTable(doc *goquery.Document, tableID, url string) (*Table, error) {
	selector := "table#" + tableID

	if sel := doc.Find(selector).First(); sel.Length() > 0 {
		return &Table{ID: tableID, URL: url, sel: sel}, nil
	}

	marker := `id="` + tableID + `"`
	var found *goquery.Selection
	doc.Find("*").Contents().EachWithBreak(func(i int, s *goquery.Selection) bool {
		node := s.Get(0)
		if node.Type != html.CommentNode || !strings.Contains(node.Data, marker) {
			return true
		}

		inner, err := goquery.NewDocumentFromReader(strings.NewReader(node.Data))
		if err != nil {
			return true
		}
		if sel := inner.Find(selector).First(); sel.Length() > 0 {
			found = sel
			return false
		}
		return true
	})

	if found == nil {
		return nil, &TableNotFoundError{TableID: tableID, URL: url}
	}

	logger.Debug("Found table inside HTML comment", logger.Fields{
		"table": tableID,
		"url":   url,
	})
	return &Table{ID: tableID, URL: url, sel: found}, nil
}

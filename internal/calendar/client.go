package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultURL is the only calendar endpoint the adapter knows about.
const DefaultURL = "https://www.forexfactory.com/calendar"

const userAgent = "Mozilla/5.0 (compatible; ForexAlertBot/1.0)"

// SourceError marks the fetch as unavailable (network failure is wrapped by
// the transport; this covers non-2xx responses).
type SourceError struct {
	Status int
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("calendar source returned HTTP %d", e.Status)
}

// Client retrieves the raw calendar document. The injected http.Client must
// carry a timeout; a hung fetch would otherwise stall every future poll.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        strings.TrimRight(url, "/"),
		httpClient: httpClient,
	}
}

// FetchDocument performs one best-effort GET of the calendar page and parses
// it into a selectable document.
func (c *Client) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SourceError{Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar document: %w", err)
	}
	return doc, nil
}

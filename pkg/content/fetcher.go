package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxBodySize limits how much of a response body is read
const DefaultMaxBodySize = 10 * 1024 * 1024

// Page is a fetched HTTP response with its body fully read
type Page struct {
	URL         string // requested URL
	FinalURL    string // URL after redirects
	StatusCode  int
	ContentType string
	Body        []byte
}

// Redirected reports whether the request ended on a different URL
func (p *Page) Redirected() bool {
	return p.FinalURL != "" && p.FinalURL != p.URL
}

// FetcherOpts configures Fetcher
type FetcherOpts struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
	MaxBodySize  int64
	FeedHeaders  bool // send feed Accept headers instead of page ones
}

// Fetcher performs single GET requests with browser-like headers.
// Any response is returned to the caller, status interpretation is up to it.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	feed      bool
}

// NewFetcher creates a fetcher with bounded redirects and timeout
func NewFetcher(opts FetcherOpts) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxBodySize == 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	maxRedirects := opts.MaxRedirects
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodySize,
		feed:      opts.FeedHeaders,
	}
}

// Get fetches the URL and reads the body. Non-2xx statuses are not errors.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if f.feed {
		AddFeedHeaders(req)
	} else {
		AddBrowserHeaders(req)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	return &Page{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// GetOK fetches the URL and fails on any non-2xx status
func (f *Fetcher) GetOK(ctx context.Context, rawURL string) (*Page, error) {
	page, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if page.StatusCode < 200 || page.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", page.StatusCode)
	}
	return page, nil
}

// NormalizeURL prefixes https:// when the scheme is missing and rewrites webcal:// to https://
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "webcal://"):
		return "https://" + raw[len("webcal://"):]
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return raw
	default:
		return "https://" + strings.TrimPrefix(raw, "//")
	}
}

// Hostname returns the lowercased host of a URL without port, or empty string
func Hostname(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

package content

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
)

// Extractor pulls the readable main text out of event detail pages
type Extractor struct {
	fetcher *Fetcher
}

// NewExtractor creates an extractor fetching pages with the given options
func NewExtractor(opts FetcherOpts) *Extractor {
	return &Extractor{fetcher: NewFetcher(opts)}
}

// Extract fetches the page and returns its main text content
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", pageURL)
	}

	page, err := e.fetcher.GetOK(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if final, err := url.Parse(page.FinalURL); err == nil && final.Host != "" {
		parsed = final
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     parsed,
	}
	result, err := trafilatura.Extract(bytes.NewReader(page.Body), opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", pageURL, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return "", fmt.Errorf("no text content extracted from %s", pageURL)
	}
	return strings.TrimSpace(result.ContentText), nil
}

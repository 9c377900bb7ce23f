// Package validator classifies whether a URL is a live, content-bearing website
// as opposed to a parked, expired, placeholder or error page.
package validator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/go-pkgz/lgr"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// Opts configures validation thresholds
type Opts struct {
	Timeout           time.Duration
	MaxRedirects      int
	BatchSize         int
	BatchPause        time.Duration
	MinBodyLength     int
	QualityLength     int
	GovernmentPhrases int
	UserAgent         string
}

// Validator fetches websites and classifies them
type Validator struct {
	fetcher *content.Fetcher
	opts    Opts
}

// New creates a validator, zero options get defaults
func New(opts Opts) *Validator {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRedirects == 0 {
		opts.MaxRedirects = 5
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 3
	}
	if opts.MinBodyLength == 0 {
		opts.MinBodyLength = 200
	}
	if opts.QualityLength == 0 {
		opts.QualityLength = 500
	}
	if opts.GovernmentPhrases == 0 {
		opts.GovernmentPhrases = 3
	}
	return &Validator{
		fetcher: content.NewFetcher(content.FetcherOpts{
			Timeout:      opts.Timeout,
			MaxRedirects: opts.MaxRedirects,
			UserAgent:    opts.UserAgent,
		}),
		opts: opts,
	}
}

// Validate fetches the URL once and classifies the response.
// It never fails, every problem is reported as a status.
func (v *Validator) Validate(ctx context.Context, rawURL string) domain.WebsiteValidation {
	target := content.NormalizeURL(rawURL)
	page, err := v.fetcher.Get(ctx, target)
	if err != nil {
		res := classifyNetworkError(err)
		log.Printf("[DEBUG] validate %s: %s, %s", target, res.Status, res.Error)
		return res
	}
	res := v.Classify(target, page)
	log.Printf("[DEBUG] validate %s: %s (%d bytes)", target, res.Status, res.ContentLength)
	return res
}

// ValidateMultiple validates urls in batches of limited concurrency with a pause between batches.
// The result has exactly one entry per distinct input URL.
func (v *Validator) ValidateMultiple(ctx context.Context, urls []string) map[string]domain.WebsiteValidation {
	unique := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}

	results := make(map[string]domain.WebsiteValidation, len(unique))
	var mu sync.Mutex
	for start := 0; start < len(unique); start += v.opts.BatchSize {
		if start > 0 && v.opts.BatchPause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(v.opts.BatchPause):
			}
		}

		end := min(start+v.opts.BatchSize, len(unique))
		var g errgroup.Group
		for _, u := range unique[start:end] {
			g.Go(func() error {
				res := v.Validate(ctx, u)
				mu.Lock()
				results[u] = res
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	log.Printf("[INFO] validated %d websites", len(results))
	return results
}

// Classify turns a fetched page into a validation result. requestURL is the URL as requested,
// page.FinalURL the one after redirects.
func (v *Validator) Classify(requestURL string, page *content.Page) domain.WebsiteValidation {
	res := domain.NewValidation(domain.StatusError, "")
	res.ActualURL = page.FinalURL
	res.ContentLength = len(page.Body)

	if page.StatusCode >= 500 {
		res.Error = fmt.Sprintf("HTTP %d", page.StatusCode)
		return res
	}

	origHost, finalHost := content.Hostname(requestURL), content.Hostname(page.FinalURL)
	if finalHost != "" && !sameSite(origHost, finalHost) {
		res = domain.NewValidation(domain.StatusRedirect, "redirected to unrelated domain "+finalHost)
		if isParkingHost(finalHost) {
			res.Error = "redirected to parking provider " + finalHost
		}
		res.ActualURL, res.ContentLength = page.FinalURL, len(page.Body)
		return res
	}

	if len(page.Body) < v.opts.MinBodyLength {
		res.Error = "insufficient content"
		if page.StatusCode >= 400 {
			res.Error = fmt.Sprintf("HTTP %d: insufficient content", page.StatusCode)
		}
		return res
	}

	info := inspect(page.Body)
	res.Title = info.title
	body, title := strings.ToLower(string(page.Body)), strings.ToLower(info.title)

	set := func(status domain.ValidationStatus, errMsg string) domain.WebsiteValidation {
		res.Status, res.IsValid, res.Error = status, status == domain.StatusValid, errMsg
		return res
	}

	switch {
	case isMaintenance(body, title):
		return set(domain.StatusMaintenance, "site under maintenance")
	case isExpired(body, title):
		return set(domain.StatusExpired, "domain expired")
	case isParked(body, title):
		return set(domain.StatusParked, "domain parked or for sale")
	case page.StatusCode >= 400:
		return set(domain.StatusError, fmt.Sprintf("HTTP %d", page.StatusCode))
	}

	signals := 0
	for _, ok := range []bool{info.nav, info.contentBlock, info.form, meaningfulTitle(title)} {
		if ok {
			signals++
		}
	}
	res.HasValidContent = len(page.Body) >= v.opts.QualityLength && signals >= 2

	if IsGovernmentHost(finalHost) || IsGovernmentHost(origHost) ||
		countDistinct(governmentPhrases, body, title) >= v.opts.GovernmentPhrases {
		return set(domain.StatusValid, "")
	}
	if !res.HasValidContent {
		return set(domain.StatusError, "low content quality")
	}
	return set(domain.StatusValid, "")
}

// pageInfo is the markup structure found on a page
type pageInfo struct {
	title        string
	nav          bool
	contentBlock bool
	form         bool
}

func inspect(body []byte) pageInfo {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageInfo{}
	}
	return pageInfo{
		title:        strings.TrimSpace(doc.Find("title").First().Text()),
		nav:          doc.Find(`nav, [role="navigation"], .nav, .navbar, .menu, #menu, #nav`).Length() > 0,
		contentBlock: doc.Find(`main, article, section, [role="main"], .content, #content, #main`).Length() > 0,
		form:         doc.Find("form, input, select, textarea").Length() > 0,
	}
}

// meaningfulTitle reports a non-trivial title free of indicator phrases; expects lowercase input
func meaningfulTitle(title string) bool {
	if len(title) < 4 || genericTitles[title] {
		return false
	}
	return !isParked(title) && !isMaintenance(title) && !isExpired(title)
}

// sameSite compares hosts ignoring leading www, allowing subdomains and a shared registrable domain
func sameSite(a, b string) bool {
	a, b = strings.TrimPrefix(a, "www."), strings.TrimPrefix(b, "www.")
	if a == b || strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a) {
		return true
	}
	if net.ParseIP(a) != nil || net.ParseIP(b) != nil {
		return false
	}
	ra, errA := publicsuffix.EffectiveTLDPlusOne(a)
	rb, errB := publicsuffix.EffectiveTLDPlusOne(b)
	return errA == nil && errB == nil && ra == rb
}

// classifyNetworkError maps transport failures to statuses
func classifyNetworkError(err error) domain.WebsiteValidation {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return domain.NewValidation(domain.StatusError, "DNS resolution failed")
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.NewValidation(domain.StatusError, "connection refused")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewValidation(domain.StatusTimeout, "request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewValidation(domain.StatusTimeout, "request timed out")
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewValidation(domain.StatusError, urlErr.Err.Error())
	}
	return domain.NewValidation(domain.StatusError, err.Error())
}

package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// richPage is a regular site with navigation, content and a form
func richPage(title string) string {
	return `<html><head><title>` + title + `</title></head><body>
<nav><ul><li><a href="/">Home</a></li><li><a href="/events">Events</a></li><li><a href="/about">About</a></li></ul></nav>
<main><article><h1>Upcoming events</h1><p>` + strings.Repeat("Join us for concerts, workshops and meetups downtown. ", 12) + `</p></article></main>
<form action="/search"><input type="text" name="q"><button>Search</button></form>
</body></html>`
}

// padded wraps text into a minimal page of at least n bytes
func padded(text string, n int) string {
	page := "<html><head><title>Notice</title></head><body><p>" + text + "</p></body></html>"
	if len(page) < n {
		page += "<!--" + strings.Repeat(" ", n-len(page)) + "-->"
	}
	return page
}

func TestValidator_Classify(t *testing.T) {
	v := New(Opts{})

	tests := []struct {
		name      string
		url       string
		finalURL  string
		status    int
		body      string
		want      domain.ValidationStatus
		wantError string
	}{
		{name: "rich page", url: "https://example.com", status: 200, body: richPage("Springfield Arts Council"),
			want: domain.StatusValid},
		{name: "domain for sale on 200", url: "https://example.com", status: 200,
			body: padded("This DOMAIN FOR SALE, contact the owner today", 600), want: domain.StatusParked},
		{name: "domain for sale on 404", url: "https://example.com", status: 404,
			body: padded("Great news, this domain for sale at a low price", 600), want: domain.StatusParked},
		{name: "broker copy", url: "https://example.com", status: 200,
			body: padded("Make an offer on this domain through our broker service", 600), want: domain.StatusParked},
		{name: "short body on 200", url: "https://example.com", status: 200, body: "<html>ok</html>",
			want: domain.StatusError, wantError: "insufficient content"},
		{name: "short gov body", url: "https://springfield.gov", status: 200, body: "<html>City of Springfield</html>",
			want: domain.StatusError, wantError: "insufficient content"},
		{name: "maintenance wins over parked", url: "https://example.com", status: 200,
			body: padded("Site under maintenance. This domain for sale soon.", 600), want: domain.StatusMaintenance},
		{name: "expired domain", url: "https://example.com", status: 200,
			body: padded("This domain has expired. Renew this domain now.", 600), want: domain.StatusExpired},
		{name: "server error", url: "https://example.com", status: 503, body: richPage("Down"),
			want: domain.StatusError, wantError: "HTTP 503"},
		{name: "short not found page", url: "https://example.com", status: 404,
			body: "<html><head><title>404 Not Found</title></head><body><h1>404 Not Found</h1></body></html>",
			want: domain.StatusError, wantError: "HTTP 404: insufficient content"},
		{name: "short forbidden page", url: "https://example.com", status: 403, body: "Forbidden",
			want: domain.StatusError, wantError: "HTTP 403"},
		{name: "not found", url: "https://example.com", status: 404, body: richPage("Page not found here"),
			want: domain.StatusError, wantError: "HTTP 404"},
		{name: "gov host with thin content", url: "https://springfield.gov", status: 200,
			body: padded("Welcome to the City of Springfield", 300), want: domain.StatusValid},
		{name: "same thin content on commercial host", url: "https://springfield.com", status: 200,
			body: padded("Welcome to the City of Springfield", 300), want: domain.StatusError,
			wantError: "low content quality"},
		{name: "k12 host", url: "https://www.springfield.k12.il.us", status: 200,
			body: padded("Springfield schools calendar", 300), want: domain.StatusValid},
		{name: "gov vocabulary on commercial host", url: "https://springfield-il.com", status: 200,
			body: padded("Official website of the City of Springfield. Contact city hall or the mayor.", 300),
			want: domain.StatusValid},
		{name: "redirect to www", url: "https://example.gov", finalURL: "https://www.example.gov/home", status: 200,
			body: padded("Town of Example", 300), want: domain.StatusValid},
		{name: "redirect to subdomain", url: "https://springfield.org", finalURL: "https://events.springfield.org/",
			status: 200, body: richPage("Springfield Events"), want: domain.StatusValid},
		{name: "redirect to parking provider", url: "https://example.gov", finalURL: "https://sedo.com/search?q=example",
			status: 200, body: richPage("Sedo"), want: domain.StatusRedirect, wantError: "sedo.com"},
		{name: "redirect to unrelated domain", url: "https://springfield.org", finalURL: "https://casino.example.net/",
			status: 200, body: richPage("Casino"), want: domain.StatusRedirect, wantError: "casino.example.net"},
		{name: "thin commercial page", url: "https://example.com", status: 200,
			body: padded("Hello there", 700), want: domain.StatusError, wantError: "low content quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final := tt.finalURL
			if final == "" {
				final = tt.url
			}
			res := v.Classify(tt.url, &content.Page{URL: tt.url, FinalURL: final, StatusCode: tt.status, Body: []byte(tt.body)})
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, res.Status == domain.StatusValid, res.IsValid)
			assert.Equal(t, len(tt.body), res.ContentLength)
			assert.Equal(t, final, res.ActualURL)
			if tt.wantError != "" {
				assert.Contains(t, res.Error, tt.wantError)
			}
		})
	}
}

func TestValidator_ClassifyQualityFlag(t *testing.T) {
	v := New(Opts{})
	res := v.Classify("https://example.org", &content.Page{URL: "https://example.org", FinalURL: "https://example.org",
		StatusCode: 200, Body: []byte(richPage("Springfield Library"))})
	assert.True(t, res.IsValid)
	assert.True(t, res.HasValidContent)
	assert.Equal(t, "Springfield Library", res.Title)
}

func TestValidator_Validate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			assert.NotEmpty(t, r.Header.Get("Accept-Language"))
			_, _ = w.Write([]byte(richPage("Springfield Parks")))
		case "/parked":
			_, _ = w.Write([]byte(padded("Domain For Sale", 400)))
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
		case "/slow":
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(richPage("Slow")))
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	v := New(Opts{Timeout: 100 * time.Millisecond})
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		res := v.Validate(ctx, ts.URL+"/ok")
		assert.Equal(t, domain.StatusValid, res.Status)
		assert.True(t, res.IsValid)
	})

	t.Run("parked", func(t *testing.T) {
		res := v.Validate(ctx, ts.URL+"/parked")
		assert.Equal(t, domain.StatusParked, res.Status)
		assert.False(t, res.IsValid)
	})

	t.Run("same host redirect", func(t *testing.T) {
		res := v.Validate(ctx, ts.URL+"/moved")
		assert.Equal(t, domain.StatusValid, res.Status)
		assert.Equal(t, ts.URL+"/ok", res.ActualURL)
	})

	t.Run("timeout", func(t *testing.T) {
		res := v.Validate(ctx, ts.URL+"/slow")
		assert.Equal(t, domain.StatusTimeout, res.Status)
		assert.False(t, res.IsValid)
	})

	t.Run("upstream error", func(t *testing.T) {
		res := v.Validate(ctx, ts.URL+"/broken")
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, "HTTP 502", res.Error)
	})

	t.Run("connection refused", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		addr := closed.URL
		closed.Close()
		res := v.Validate(ctx, addr)
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, "connection refused", res.Error)
	})

	t.Run("dns failure", func(t *testing.T) {
		res := New(Opts{Timeout: 2 * time.Second}).Validate(ctx, "no-such-host.invalid")
		assert.Equal(t, domain.StatusError, res.Status)
		assert.Equal(t, "DNS resolution failed", res.Error)
	})
}

func TestValidator_ValidateMultiple(t *testing.T) {
	var inFlight, maxInFlight, calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&calls, 1)
		for {
			prev := atomic.LoadInt32(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		if strings.HasSuffix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(richPage("Site " + r.URL.Path)))
	}))
	defer ts.Close()

	urls := make([]string, 0, 8)
	for i := range 7 {
		urls = append(urls, fmt.Sprintf("%s/site%d", ts.URL, i))
	}
	urls = append(urls, ts.URL+"/site9/bad")

	v := New(Opts{BatchSize: 3, BatchPause: 30 * time.Millisecond})
	start := time.Now()
	res := v.ValidateMultiple(context.Background(), urls)
	elapsed := time.Since(start)

	require.Len(t, res, len(urls))
	for _, u := range urls {
		r, ok := res[u]
		require.True(t, ok, "missing result for %s", u)
		assert.Equal(t, r.Status == domain.StatusValid, r.IsValid)
	}
	assert.Equal(t, domain.StatusError, res[ts.URL+"/site9/bad"].Status)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(3))
	assert.Equal(t, int32(len(urls)), atomic.LoadInt32(&calls))
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond, "two pauses between three batches")

	t.Run("duplicates collapse", func(t *testing.T) {
		res := v.ValidateMultiple(context.Background(), []string{urls[0], urls[0]})
		assert.Len(t, res, 1)
	})
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"example.gov", "www.example.gov", true},
		{"www.example.gov", "example.gov", true},
		{"example.gov", "calendar.example.gov", true},
		{"parks.springfield.org", "library.springfield.org", true},
		{"example.gov", "sedo.com", false},
		{"springfield.org", "springfield.com", false},
		{"127.0.0.1", "127.0.0.2", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sameSite(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestIsGovernmentHost(t *testing.T) {
	assert.True(t, IsGovernmentHost("springfield.gov"))
	assert.True(t, IsGovernmentHost("ci.springfield.il.us"))
	assert.True(t, IsGovernmentHost("www.army.mil"))
	assert.True(t, IsGovernmentHost("springfield.k12.mo.us"))
	assert.True(t, IsGovernmentHost("dist186k12.org"))
	assert.False(t, IsGovernmentHost("springfield.org"))
	assert.False(t, IsGovernmentHost("govtech.com"))
}

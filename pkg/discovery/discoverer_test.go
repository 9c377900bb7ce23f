package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/discovery/mocks"
	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/geo"
	"github.com/umputun/civicfeed/pkg/registry"
)

const cityPage = `<html><head><title>City of Springfield</title>
<link rel="alternate" type="application/rss+xml" title="News" href="/news.rss">
<script>window.cal = fetch("/api/v1/calendar/events?format=json"); var s = "/static/app.js";</script>
</head><body>
<nav><a href="/about">About</a> <a href="/events">Events</a> <a href="mailto:clerk@example.org">Clerk</a></nav>
<a href="/calendar/events.ics">Subscribe to calendar</a>
</body></html>`

const libraryPage = `<html><head><title>Springfield Library</title>
<link rel="stylesheet" href="/wp-content/themes/lib/style.css"></head>
<body><h1>Welcome to the library</h1><p>Hours and programs</p></body></html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/city":
			_, _ = w.Write([]byte(cityPage))
		case "/library":
			_, _ = w.Write([]byte(libraryPage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestDiscoverer(t *testing.T, ts *httptest.Server, v WebsiteValidator) *Discoverer {
	t.Helper()
	catalog, err := geo.Load()
	require.NoError(t, err)
	d := New(catalog, v, Opts{Timeout: time.Second, ValidateWebsites: v != nil})
	d.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	d.sites = func(city, _ string, _ int) []site {
		return []site{
			{orgType: domain.OrgCity, name: "City of " + city, url: ts.URL + "/city"},
			{orgType: domain.OrgLibrary, name: city + " Public Library", url: ts.URL + "/library"},
			{orgType: domain.OrgParks, name: city + " Parks & Recreation", url: ts.URL + "/gone"},
			{orgType: domain.OrgChamber, name: city + " Chamber of Commerce", url: "http://127.0.0.1:1/"},
		}
	}
	return d
}

func TestDiscoverer_DiscoverForLocation(t *testing.T) {
	ts := testServer(t)
	d := newTestDiscoverer(t, ts, nil)

	res, err := d.DiscoverForLocation(context.Background(), "springfield", "il")
	require.NoError(t, err)
	require.Len(t, res, 4)

	urls := make([]string, 0, len(res))
	for _, c := range res {
		urls = append(urls, strings.TrimPrefix(c.Source.FeedURL, ts.URL))
	}
	assert.Equal(t, []string{"/calendar/events.ics", "/news.rss", "/api/v1/calendar/events?format=json", "/events/feed/"}, urls)

	ics := res[0]
	assert.InDelta(t, 0.95, ics.Confidence, 0.001, "explicit link corroborated by subscribe affordance")
	assert.Equal(t, []string{"direct-link", "affordance"}, ics.Signals)
	assert.Equal(t, domain.FormatICal, ics.Source.FeedFormat)
	assert.Equal(t, "City of Springfield (calendar/events.ics)", ics.Source.Name)
	assert.Equal(t, "Springfield", ics.Source.City)
	assert.Equal(t, "IL", ics.Source.State)
	assert.Equal(t, domain.OrgCity, ics.Source.Type)
	assert.Equal(t, ts.URL, ics.Source.WebsiteURL)
	assert.True(t, ics.Source.Active)
	assert.Empty(t, ics.Source.ID, "candidates are not registered")
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ics.LastChecked)

	assert.Equal(t, "City of Springfield (news.rss)", res[1].Source.Name)
	assert.Equal(t, domain.FormatRSS, res[1].Source.FeedFormat)
	assert.InDelta(t, 0.9, res[1].Confidence, 0.001)
	assert.Equal(t, domain.FormatJSON, res[2].Source.FeedFormat)
	assert.InDelta(t, 0.75, res[2].Confidence, 0.001)

	guess := res[3]
	assert.Equal(t, domain.OrgLibrary, guess.Source.Type)
	assert.Equal(t, domain.FormatRSS, guess.Source.FeedFormat, "wordpress site guessed as events feed")
	assert.InDelta(t, 0.3, guess.Confidence, 0.001)
	assert.Equal(t, []string{"heuristic"}, guess.Signals)
	assert.Equal(t, "Springfield Public Library (events/feed)", guess.Source.Name)
}

func TestDiscoverer_DiscoverForLocation_FeedsOfOneSiteAllRegister(t *testing.T) {
	ts := testServer(t)
	d := newTestDiscoverer(t, ts, nil)

	res, err := d.DiscoverForLocation(context.Background(), "Springfield", "IL")
	require.NoError(t, err)

	reg := registry.NewMemory()
	cityFeeds := 0
	for _, c := range res {
		if c.Source.Type != domain.OrgCity {
			continue
		}
		cityFeeds++
		_, added, err := reg.Add(context.Background(), c.Source)
		require.NoError(t, err)
		assert.True(t, added, "feed %s collides with another feed of the same site", c.Source.FeedURL)
	}
	assert.Equal(t, 3, cityFeeds)
}

func TestFeedName(t *testing.T) {
	tests := []struct {
		name, feedURL, want string
	}{
		{"same host path", "https://www.springfield.il.us/calendar/events.ics", "City of Springfield (calendar/events.ics)"},
		{"query dropped", "https://springfield.il.us/api/events?format=json", "City of Springfield (api/events)"},
		{"other host", "https://calendar.google.com/ical/abc/basic.ics", "City of Springfield (calendar.google.com/ical/abc/basic.ics)"},
		{"site root", "https://springfield.il.us/", "City of Springfield"},
		{"webcal", "webcal://springfield.il.us/events.ics", "City of Springfield (events.ics)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feedName("City of Springfield", tt.feedURL, "springfield.il.us"))
		})
	}
}

func TestDiscoverer_DiscoverForLocation_ValidatorFilter(t *testing.T) {
	ts := testServer(t)
	v := &mocks.WebsiteValidatorMock{
		ValidateFunc: func(_ context.Context, url string) domain.WebsiteValidation {
			if strings.HasSuffix(url, "/library") {
				return domain.NewValidation(domain.StatusParked, "domain parked or for sale")
			}
			return domain.NewValidation(domain.StatusValid, "")
		},
	}
	d := newTestDiscoverer(t, ts, v)

	res, err := d.DiscoverForLocation(context.Background(), "Springfield", "Illinois")
	require.NoError(t, err)
	require.Len(t, res, 3)
	for _, c := range res {
		assert.Equal(t, domain.OrgCity, c.Source.Type)
	}
	assert.Len(t, v.ValidateCalls(), 2, "one validation per probed site with candidates")
}

func TestDiscoverer_DiscoverForLocation_MinConfidence(t *testing.T) {
	ts := testServer(t)
	d := newTestDiscoverer(t, ts, nil)
	d.opts.Scores.MinConfidence = 0.8

	res, err := d.DiscoverForLocation(context.Background(), "Springfield", "IL")
	require.NoError(t, err)
	require.Len(t, res, 2)
}

func TestDiscoverer_DiscoverForLocation_BadInput(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)

	_, err := d.DiscoverForLocation(context.Background(), "", "IL")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = d.DiscoverForLocation(context.Background(), "Springfield", " ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = d.DiscoverForLocation(context.Background(), "Springfield", "Atlantis")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.DiscoverForLocation(ctx, "Springfield", "IL")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverer_DiscoverCities(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)

	cities := []geo.City{{Name: "Springfield", State: "IL"}, {Name: "Nowhere", State: "ZZ"}, {Name: "Peoria", State: "IL"}}
	res, err := d.DiscoverCities(context.Background(), cities)
	require.NoError(t, err)
	assert.Len(t, res, 4, "same feeds found for both cities are reported once")
	assert.Equal(t, "Springfield", res[0].Source.City, "first discovery wins on equal confidence")
}

func TestDiscoverer_MultiLocationInput(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)
	ctx := context.Background()

	_, err := d.DiscoverForRegions(ctx, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = d.DiscoverForTopCities(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = d.DiscoverByPopulation(ctx, 500000, 100000, 10)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = d.DiscoverForState(ctx, "Atlantis", StateOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := d.DiscoverForState(ctx, "IL", StateOptions{Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, res)
	assert.Equal(t, "Chicago", res[0].Source.City)
}

func TestDiscoverer_CitiesForRegions(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)

	cities, err := d.CitiesForRegions([]Region{
		{State: "Illinois", Cities: []string{"springfield", "Nowhere", " "}},
		{State: "IL", District: 13},
	})
	require.NoError(t, err)
	require.NotEmpty(t, cities)
	assert.Equal(t, "Springfield", cities[0].Name)
	assert.Positive(t, cities[0].Population, "catalog entry used")
	assert.Equal(t, geo.City{Name: "Nowhere", State: "IL"}, cities[1])

	count := 0
	for _, c := range cities {
		if c.Name == "Springfield" && c.State == "IL" {
			count++
		}
	}
	assert.Equal(t, 1, count, "district 13 repeats springfield")

	_, err = d.CitiesForRegions([]Region{{State: "ZZ"}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	district, err := d.CitiesForDistrict("IL", 13)
	require.NoError(t, err)
	for _, c := range district {
		assert.Contains(t, c.Districts, 13)
	}
}

func TestDiscoverer_CitiesForState(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)

	all, err := d.CitiesForState("TX", StateOptions{})
	require.NoError(t, err)
	big, err := d.CitiesForState("TX", StateOptions{MinPopulation: 1000000})
	require.NoError(t, err)
	assert.Less(t, len(big), len(all))
	for _, c := range big {
		assert.GreaterOrEqual(t, c.Population, 1000000)
	}

	top, err := d.CitiesForTopCities(3)
	require.NoError(t, err)
	assert.Len(t, top, 3)

	tier, err := d.CitiesByPopulation(100000, 200000, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(tier), 5)
}

func TestDiscoverer_CitySuggestions(t *testing.T) {
	d := newTestDiscoverer(t, testServer(t), nil)
	res := d.CitySuggestions("spring", 10)
	require.NotEmpty(t, res)
	for _, c := range res {
		assert.Contains(t, strings.ToLower(c.Location()), "spring")
	}
	assert.Empty(t, d.CitySuggestions("", 10))
}

func TestCandidateSites(t *testing.T) {
	sites := candidateSites("St. Louis", "MO", 2)
	require.Len(t, sites, 2*len(domain.OrgTypes))
	assert.Equal(t, site{orgType: domain.OrgCity, name: "City of St. Louis", url: "https://www.stlouismo.gov"}, sites[0])
	assert.Equal(t, "https://www.cityofstlouis.org", sites[1].url)
	assert.Equal(t, "St. Louis Public Schools", sites[2].name)

	all := candidateSites("Boise", "ID", 0)
	assert.Len(t, all, len(hostPatterns[domain.OrgCity])+len(hostPatterns[domain.OrgSchool])+
		len(hostPatterns[domain.OrgChamber])+len(hostPatterns[domain.OrgLibrary])+len(hostPatterns[domain.OrgParks]))

	assert.Empty(t, candidateSites("...", "MO", 2))
}

func TestDedupCandidates(t *testing.T) {
	in := []domain.DiscoveredFeedCandidate{
		{Source: domain.CalendarSource{Name: "a", FeedURL: "https://example.org/cal.ics"}, Confidence: 0.6},
		{Source: domain.CalendarSource{Name: "b", FeedURL: "webcal://EXAMPLE.org/cal.ics"}, Confidence: 0.9},
		{Source: domain.CalendarSource{Name: "c", FeedURL: "https://example.org/feed/"}, Confidence: 0.3},
		{Source: domain.CalendarSource{Name: "d", FeedURL: "https://example.org/feed"}, Confidence: 0.3},
	}
	res := dedupCandidates(in)
	require.Len(t, res, 2)
	assert.Equal(t, "b", res[0].Source.Name)
	assert.Equal(t, "c", res[1].Source.Name)
}

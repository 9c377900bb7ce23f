package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/feed/mocks"
	"github.com/umputun/civicfeed/pkg/registry"
)

func newTestCollector(t *testing.T, store SourceStore, opts CollectorOpts) *Collector {
	t.Helper()
	c := NewCollector(store, opts)
	c.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return c
}

func TestCollector_Collect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cal.ics":
			w.Header().Set("Content-Type", "text/calendar")
			_, _ = w.Write(crlf(testICS))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	categorizer := &mocks.CategorizerMock{
		CategorizeFunc: func(_ context.Context, _ domain.CalendarSource, events []domain.Event) []domain.Event {
			return events
		},
	}
	c := newTestCollector(t, registry.NewMemory(), CollectorOpts{Timeout: time.Second, Categorizer: categorizer})

	src := domain.CalendarSource{ID: "src-1", Name: "Springfield City", City: "Springfield", State: "IL",
		Type: domain.OrgCity, FeedURL: ts.URL + "/cal.ics", FeedFormat: domain.FormatICal, Active: true}

	t.Run("ical feed normalized", func(t *testing.T) {
		events, err := c.Collect(context.Background(), src)
		require.NoError(t, err)
		require.Len(t, events, 14)

		byTitle := map[string]domain.Event{}
		for _, ev := range events {
			assert.Equal(t, "src-1", ev.SourceID)
			assert.True(t, ev.Category.Valid(), ev.Title)
			assert.False(t, ev.EndDate.IsZero(), ev.Title)
			byTitle[ev.Title] = ev
		}

		assert.Equal(t, domain.CategoryGovernment, byTitle["City Council Meeting"].Category)
		assert.Equal(t, "City Clerk", byTitle["City Council Meeting"].Organizer)

		fair := byTitle["Fourth of July Fair"]
		assert.Equal(t, domain.CategoryArts, fair.Category, "feed category kept")
		assert.Equal(t, "Springfield City", fair.Organizer, "organizer defaults to source name")
		assert.Equal(t, "Springfield, IL", fair.Location, "location defaults to source location")

		assert.Equal(t, domain.CategoryLibrary, byTitle["Storytime"].Category)
		require.Len(t, categorizer.CategorizeCalls(), 1)
		assert.Len(t, categorizer.CategorizeCalls()[0].Events, 14)
	})

	t.Run("http error", func(t *testing.T) {
		broken := src
		broken.FeedURL = ts.URL + "/broken"
		_, err := c.Collect(context.Background(), broken)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("unsupported format", func(t *testing.T) {
		bad := src
		bad.FeedFormat = "pdf"
		_, err := c.Collect(context.Background(), bad)
		require.Error(t, err)
	})

	t.Run("collect from failing source gives empty result", func(t *testing.T) {
		broken := src
		broken.FeedURL = ts.URL + "/missing"
		events := c.CollectFromSource(context.Background(), broken)
		require.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestCollector_CollectRSS(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Chamber</title>
<item><title>Networking Breakfast</title><pubDate>Thu, 05 Jun 2025 08:00:00 GMT</pubDate></item>
</channel></rss>`))
	}))
	defer ts.Close()

	c := newTestCollector(t, registry.NewMemory(), CollectorOpts{Timeout: time.Second})
	src := domain.CalendarSource{ID: "c1", Name: "Springfield Chamber", City: "Springfield", State: "IL",
		Type: domain.OrgChamber, FeedURL: ts.URL, FeedFormat: domain.FormatRSS}
	events, err := c.Collect(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.CategoryBusiness, events[0].Category)
	assert.Equal(t, "Springfield Chamber", events[0].Organizer)
	assert.Equal(t, "8:00 AM", events[0].StartTime)
}

func TestCollector_EnrichDescriptions(t *testing.T) {
	var feedURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Library</title>
<item><title>Book Sale</title><link>https://lib.example.org/events/book-sale</link><pubDate>Thu, 05 Jun 2025 10:00:00 GMT</pubDate></item>
<item><title>Chess Club</title><link>https://lib.example.org/events/chess</link><description>Weekly games for all ages</description><pubDate>Fri, 06 Jun 2025 16:00:00 GMT</pubDate></item>
<item><title>Author Talk</title><link>https://lib.example.org/events/author</link><pubDate>Sat, 07 Jun 2025 14:00:00 GMT</pubDate></item>
<item><title>Film Night</title><link>https://lib.example.org/events/film</link><pubDate>Sat, 07 Jun 2025 19:00:00 GMT</pubDate></item>
<item><title>Self Link</title><link>` + feedURL + `</link><pubDate>Sun, 08 Jun 2025 12:00:00 GMT</pubDate></item>
</channel></rss>`))
	}))
	defer ts.Close()
	feedURL = ts.URL

	extractor := &mocks.PageExtractorMock{
		ExtractFunc: func(_ context.Context, pageURL string) (string, error) {
			if pageURL == "https://lib.example.org/events/author" {
				return "", errors.New("no text content")
			}
			return "Details from " + pageURL, nil
		},
	}
	c := newTestCollector(t, registry.NewMemory(), CollectorOpts{Timeout: time.Second, Extractor: extractor, MaxEnrich: 3})
	src := domain.CalendarSource{ID: "l1", Name: "Springfield Library", City: "Springfield", State: "IL",
		Type: domain.OrgLibrary, FeedURL: ts.URL, FeedFormat: domain.FormatRSS}

	events, err := c.Collect(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, events, 5)

	desc := map[string]string{}
	for _, ev := range events {
		desc[ev.Title] = ev.Description
	}
	assert.Equal(t, "Details from https://lib.example.org/events/book-sale", desc["Book Sale"])
	assert.Equal(t, "Weekly games for all ages", desc["Chess Club"], "existing description kept")
	assert.Empty(t, desc["Author Talk"], "failed extraction leaves description empty")
	assert.Equal(t, "Details from https://lib.example.org/events/film", desc["Film Night"])
	assert.Empty(t, desc["Self Link"], "limit reached")

	require.Len(t, extractor.ExtractCalls(), 3)
	for _, call := range extractor.ExtractCalls() {
		assert.NotEqual(t, "https://lib.example.org/events/chess", call.PageURL)
	}
}

func TestCollector_AddSource(t *testing.T) {
	c := newTestCollector(t, registry.NewMemory(), CollectorOpts{})
	ctx := context.Background()

	src := domain.CalendarSource{Name: "Springfield Library", City: "Springfield", State: "IL",
		Type: domain.OrgLibrary, FeedURL: "https://lib.example.org/events.ics", FeedFormat: domain.FormatICal, Active: true}

	stored, added, err := c.AddSource(ctx, src)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NotEmpty(t, stored.ID)

	dup := src
	dup.Name = "Another Name"
	existing, added, err := c.AddSource(ctx, dup)
	require.NoError(t, err)
	assert.False(t, added, "same feed url")
	assert.Equal(t, stored.ID, existing.ID)

	invalid := []domain.CalendarSource{
		{City: "Springfield", State: "IL", Type: domain.OrgCity, FeedURL: "https://x.org", FeedFormat: domain.FormatRSS},
		{Name: "X", City: "Springfield", State: "IL", Type: "museum", FeedURL: "https://x.org", FeedFormat: domain.FormatRSS},
		{Name: "X", City: "Springfield", State: "IL", Type: domain.OrgCity, FeedURL: "https://x.org", FeedFormat: "pdf"},
	}
	for _, s := range invalid {
		_, _, err := c.AddSource(ctx, s)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	all, err := c.ListSources(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCollector_ToggleAndMarkSynced(t *testing.T) {
	c := newTestCollector(t, registry.NewMemory(), CollectorOpts{})
	ctx := context.Background()

	stored, _, err := c.AddSource(ctx, domain.CalendarSource{Name: "Parks", City: "Springfield", State: "IL",
		Type: domain.OrgParks, FeedURL: "https://parks.example.org/feed", FeedFormat: domain.FormatRSS, Active: true})
	require.NoError(t, err)

	active, err := c.ToggleSource(ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, active)

	list, err := c.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.MarkSynced(ctx, stored.ID, at))
	got, err := c.ListByType(ctx, domain.OrgParks)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].LastSync)
	assert.Equal(t, at, *got[0].LastSync)

	_, err = c.ToggleSource(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, c.MarkSynced(ctx, "nope", at), domain.ErrNotFound)

	byState, err := c.ListByState(ctx, "il")
	require.NoError(t, err)
	assert.Len(t, byState, 1)
}

func TestCollector_ReprioritizeAllFeeds(t *testing.T) {
	store := registry.NewMemory()
	c := newTestCollector(t, store, CollectorOpts{})
	ctx := context.Background()
	synced := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	sources := []domain.CalendarSource{
		{ID: "lib-html", Name: "Library Web", City: "Springfield", State: "IL", Type: domain.OrgLibrary,
			FeedURL: "https://www.springfieldlibrary.org/events", FeedFormat: domain.FormatHTML, Active: false},
		{ID: "lib-rss", Name: "Library News", City: "Springfield", State: "IL", Type: domain.OrgLibrary,
			FeedURL: "https://springfieldlibrary.org/rss", FeedFormat: domain.FormatRSS, Active: true},
		{ID: "lib-ics", Name: "Library Calendar", City: "Springfield", State: "IL", Type: domain.OrgLibrary,
			FeedURL: "https://calendar.springfieldlibrary.org/lib.ics", FeedFormat: domain.FormatICal, Active: true},
		{ID: "city-ics", Name: "City Calendar", City: "Springfield", State: "IL", Type: domain.OrgCity,
			FeedURL: "https://feeds.example.com/city.ics", WebsiteURL: "https://www.springfield.il.us",
			FeedFormat: domain.FormatICal, Active: true, Priority: 5},
		{ID: "city-ics-old", Name: "City Events", City: "Springfield", State: "IL", Type: domain.OrgCity,
			FeedURL: "https://springfield.il.us/events.ics", FeedFormat: domain.FormatICal, Active: true, LastSync: &synced},
	}
	for _, s := range sources {
		_, added, err := store.Add(ctx, s)
		require.NoError(t, err)
		require.True(t, added)
	}

	groups, err := c.ReprioritizeAllFeeds(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "springfield.il.us", groups[0].Domain)
	assert.Equal(t, []string{"city-ics-old", "city-ics"}, sourceIDs(groups[0].Sources), "synced source preferred")

	assert.Equal(t, "springfieldlibrary.org", groups[1].Domain)
	assert.Equal(t, []string{"lib-ics", "lib-rss", "lib-html"}, sourceIDs(groups[1].Sources))

	for id, want := range map[string]int{"lib-ics": 0, "lib-rss": 1, "lib-html": 2, "city-ics-old": 0, "city-ics": 1} {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Priority, id)
	}

	active, err := c.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib-ics", "city-ics-old", "lib-rss", "city-ics"}, sourceIDs(active),
		"sync visits preferred sources first")
}

func TestCollector_ReprioritizeAllFeeds_StoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("list fails", func(t *testing.T) {
		store := &mocks.SourceStoreMock{
			ListFunc: func(context.Context, domain.SourceFilter) ([]domain.CalendarSource, error) {
				return nil, errors.New("db gone")
			},
		}
		_, err := newTestCollector(t, store, CollectorOpts{}).ReprioritizeAllFeeds(ctx)
		require.Error(t, err)
	})

	t.Run("set priority fails, kept going", func(t *testing.T) {
		store := &mocks.SourceStoreMock{
			ListFunc: func(context.Context, domain.SourceFilter) ([]domain.CalendarSource, error) {
				return []domain.CalendarSource{
					{ID: "a", Name: "A", FeedURL: "https://alpha-parks.org/rss", FeedFormat: domain.FormatRSS, Active: true, Priority: 3},
					{ID: "b", Name: "B", FeedURL: "https://beta-parks.org/rss", FeedFormat: domain.FormatRSS, Active: true, Priority: 2},
				}, nil
			},
			SetPriorityFunc: func(_ context.Context, id string, _ int) error {
				if id == "a" {
					return errors.New("locked")
				}
				return nil
			},
		}
		groups, err := newTestCollector(t, store, CollectorOpts{}).ReprioritizeAllFeeds(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, 3, groups[0].Sources[0].Priority, "failed update leaves old value")
		assert.Equal(t, 0, groups[1].Sources[0].Priority)
		assert.Len(t, store.SetPriorityCalls(), 2)
	})
}

func TestSiteDomain(t *testing.T) {
	tests := []struct {
		src  domain.CalendarSource
		want string
	}{
		{domain.CalendarSource{FeedURL: "https://www.cityofboise.org/events.ics"}, "cityofboise.org"},
		{domain.CalendarSource{FeedURL: "webcal://calendar.austintexas.gov/feed"}, "austintexas.gov"},
		{domain.CalendarSource{FeedURL: "https://x.example.com/a", WebsiteURL: "https://springfield.il.us"}, "springfield.il.us"},
		{domain.CalendarSource{}, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, siteDomain(tt.src))
	}
}

func sourceIDs(sources []domain.CalendarSource) []string {
	res := make([]string, 0, len(sources))
	for _, s := range sources {
		res = append(res, s.ID)
	}
	return res
}

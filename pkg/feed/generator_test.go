package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/domain"
)

func testGenerator(baseURL string) *Generator {
	g := NewGenerator(baseURL)
	g.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func generatorEvents() []domain.Event {
	chicago, _ := time.LoadLocation("America/Chicago")
	return []domain.Event{
		{
			ID: 1, Title: "City Council Meeting", Description: "Regular session, public comment welcome.",
			Category: domain.CategoryGovernment, Location: "City Hall, Springfield, IL", Organizer: "City Clerk",
			StartDate: time.Date(2025, 6, 3, 18, 0, 0, 0, chicago), EndDate: time.Date(2025, 6, 3, 20, 0, 0, 0, chicago),
			StartTime: "6:00 PM", EndTime: "8:00 PM", IsFree: true, SourceID: "s1",
			URL: "https://springfield.il.us/events/council",
		},
		{
			ID: 2, Title: "Summer Gala", Category: domain.CategoryArts, Organizer: "Arts Council",
			StartDate: time.Date(2025, 6, 12, 19, 0, 0, 0, chicago), StartTime: "7:00 PM", SourceID: "s2",
		},
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := testGenerator("https://events.example.com")

	t.Run("all events", func(t *testing.T) {
		rss, err := generator.GenerateRSS(generatorEvents(), "")
		require.NoError(t, err)

		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Civicfeed - All Events</title>`)
		assert.Contains(t, rss, `<link>https://events.example.com/</link>`)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://events.example.com/rss" rel="self" type="application/rss+xml"></link>`)
		assert.Contains(t, rss, `<lastBuildDate>Sun, 01 Jun 2025 12:00:00 +0000</lastBuildDate>`)

		assert.Contains(t, rss, `<title>City Council Meeting</title>`)
		assert.Contains(t, rss, `<link>https://springfield.il.us/events/council</link>`)
		assert.Contains(t, rss, `<guid isPermaLink="true">https://springfield.il.us/events/council</guid>`)
		assert.Contains(t, rss, `<author>City Clerk</author>`)
		assert.Contains(t, rss, `<pubDate>Tue, 03 Jun 2025 18:00:00 -0500</pubDate>`)
		assert.Contains(t, rss, `<category>government</category>`)

		// event without its own page links to the api
		assert.Contains(t, rss, `<link>https://events.example.com/api/v1/events/2</link>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">civicfeed-event-2</guid>`)
	})

	t.Run("category feed", func(t *testing.T) {
		rss, err := generator.GenerateRSS(generatorEvents()[1:], domain.CategoryArts)
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>Civicfeed - Arts Events</title>`)
		assert.Contains(t, rss, `href="https://events.example.com/rss/arts"`)
	})

	t.Run("no events", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, "")
		require.NoError(t, err)
		assert.Contains(t, rss, `<channel>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("trailing slash in base URL", func(t *testing.T) {
		rss, err := testGenerator("https://events.example.com/").GenerateRSS(generatorEvents()[:1], "")
		require.NoError(t, err)
		assert.Contains(t, rss, `href="https://events.example.com/rss"`)
		assert.NotContains(t, rss, `https://events.example.com//`)
	})
}

func TestGenerator_rssItem(t *testing.T) {
	item := testGenerator("https://events.example.com").rssItem(generatorEvents()[0])

	assert.Equal(t, "City Council Meeting", item.Title)
	assert.Equal(t, []string{"government"}, item.Categories)
	assert.Equal(t, "Tue, Jun 3 2025, 6:00 PM - 8:00 PM\nCity Hall, Springfield, IL\nFree\n\nRegular session, public comment welcome.",
		item.Description)

	item = testGenerator("https://events.example.com").rssItem(generatorEvents()[1])
	assert.Equal(t, "Thu, Jun 12 2025, 7:00 PM", item.Description)
}

func TestGenerator_GenerateOPML(t *testing.T) {
	sources := []domain.CalendarSource{
		{Name: "Springfield City", City: "Springfield", State: "IL", FeedURL: "https://springfield.il.us/cal.ics",
			WebsiteURL: "https://springfield.il.us", FeedFormat: domain.FormatICal, Active: true},
		{Name: "Chicago Parks", City: "Chicago", State: "IL", FeedURL: "https://chicagoparks.org/events.rss",
			FeedFormat: domain.FormatRSS, Active: true},
		{Name: "Springfield Library", City: "Springfield", State: "IL", FeedURL: "https://lib.springfield.il.us/events.json",
			FeedFormat: domain.FormatJSON, Active: true},
		{Name: "Disabled Chamber", City: "Springfield", State: "IL", FeedURL: "https://disabled.example.com/feed",
			FeedFormat: domain.FormatRSS},
	}

	opml, err := testGenerator("https://events.example.com").GenerateOPML(sources)
	require.NoError(t, err)

	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Civicfeed Calendar Sources</title>`)
	assert.Contains(t, opml, `xmlUrl="https://springfield.il.us/cal.ics"`)
	assert.Contains(t, opml, `htmlUrl="https://springfield.il.us"`)
	assert.Contains(t, opml, `type="ical"`)
	assert.NotContains(t, opml, "Disabled Chamber")

	var doc struct {
		Body struct {
			Groups []struct {
				Text     string `xml:"text,attr"`
				Outlines []struct {
					Text string `xml:"text,attr"`
				} `xml:"outline"`
			} `xml:"outline"`
		} `xml:"body"`
	}
	require.NoError(t, xml.Unmarshal([]byte(opml), &doc))
	require.Len(t, doc.Body.Groups, 2)
	assert.Equal(t, "Springfield, IL", doc.Body.Groups[0].Text)
	require.Len(t, doc.Body.Groups[0].Outlines, 2)
	assert.Equal(t, "Springfield Library", doc.Body.Groups[0].Outlines[1].Text)
	assert.Equal(t, "Chicago, IL", doc.Body.Groups[1].Text)
}

func TestRSSXMLEscaping(t *testing.T) {
	ev := generatorEvents()[1]
	ev.Title = "Jazz & Blues <Live>"
	ev.Organizer = "Arts & Culture"

	rss, err := testGenerator("https://events.example.com").GenerateRSS([]domain.Event{ev}, "")
	require.NoError(t, err)
	assert.Contains(t, rss, `<title>Jazz &amp; Blues &lt;Live&gt;</title>`)
	assert.Contains(t, rss, `<author>Arts &amp; Culture</author>`)

	var doc RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
	require.Len(t, doc.Channel.Items, 1)
	assert.Equal(t, "Jazz & Blues <Live>", doc.Channel.Items[0].Title)
}

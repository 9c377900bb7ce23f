package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/civicfeed/pkg/domain"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom link element within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents an item in an RSS feed
type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link,omitempty"`
	GUID        RSSGUID  `xml:"guid"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

// RSSGUID is the item guid, not a permalink for events without their own page
type RSSGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Generator renders stored events and sources into syndication formats
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 feed of events, one item per event. Category narrows the title and self link.
func (g *Generator) GenerateRSS(events []domain.Event, category domain.Category) (string, error) {
	title, selfLink := "Civicfeed - All Events", g.baseURL+"/rss"
	if category != "" {
		title = fmt.Sprintf("Civicfeed - %s Events", titleCase(string(category)))
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, category)
	}

	items := make([]*RSSItem, 0, len(events))
	for _, ev := range events {
		items = append(items, g.rssItem(ev))
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Upcoming local government and community events",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// rssItem publishes the event under its start date, the description leads with when and where
func (g *Generator) rssItem(ev domain.Event) *RSSItem {
	when := ev.StartDate.Format("Mon, Jan 2 2006")
	if ev.StartTime != "" {
		when += ", " + ev.StartTime
		if ev.EndTime != "" && ev.EndTime != ev.StartTime {
			when += " - " + ev.EndTime
		}
	}
	desc := when
	if ev.Location != "" {
		desc += "\n" + ev.Location
	}
	if ev.IsFree {
		desc += "\nFree"
	}
	if ev.Description != "" {
		desc += "\n\n" + ev.Description
	}

	link := ev.URL
	guid := RSSGUID{Value: link, IsPermaLink: true}
	if link == "" {
		link = fmt.Sprintf("%s/api/v1/events/%d", g.baseURL, ev.ID)
		guid = RSSGUID{Value: fmt.Sprintf("civicfeed-event-%d", ev.ID)}
	}

	return &RSSItem{
		Title:       ev.Title,
		Link:        link,
		GUID:        guid,
		Description: desc,
		Author:      ev.Organizer,
		PubDate:     ev.StartDate.Format(time.RFC1123Z),
		Categories:  []string{string(ev.Category)},
	}
}

// GenerateOPML creates an OPML file listing active sources, grouped by location
func (g *Generator) GenerateOPML(sources []domain.CalendarSource) (string, error) {
	type outline struct {
		XMLName  xml.Name  `xml:"outline"`
		Text     string    `xml:"text,attr"`
		Title    string    `xml:"title,attr,omitempty"`
		Type     string    `xml:"type,attr,omitempty"`
		XMLUrl   string    `xml:"xmlUrl,attr,omitempty"`
		HTMLUrl  string    `xml:"htmlUrl,attr,omitempty"`
		Outlines []outline `xml:"outline"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	groups := []outline{}
	index := map[string]int{}
	for _, src := range sources {
		if !src.Active {
			continue
		}
		loc := src.Location()
		i, ok := index[loc]
		if !ok {
			i = len(groups)
			index[loc] = i
			groups = append(groups, outline{Text: loc})
		}
		groups[i].Outlines = append(groups[i].Outlines, outline{
			Text:    src.Name,
			Title:   src.Name,
			Type:    string(src.FeedFormat),
			XMLUrl:  src.FeedURL,
			HTMLUrl: src.WebsiteURL,
		})
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: "Civicfeed Calendar Sources", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    body{Outlines: groups},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package feed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// parse dispatches over the closed set of feed formats
func parse(format domain.FeedFormat, body []byte, pageURL string, w window) ([]domain.Event, error) {
	switch format {
	case domain.FormatICal, domain.FormatWebcal:
		return parseICal(body, w)
	case domain.FormatRSS:
		return parseRSS(body)
	case domain.FormatJSON:
		return parseJSON(body, w.from)
	case domain.FormatHTML:
		return parseHTML(body, pageURL, w.from)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", format)
	}
}

// parseRSS converts RSS/Atom items to events. Event-RSS ev:startdate wins over the publish date.
func parseRSS(body []byte) ([]domain.Event, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	events := make([]domain.Event, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(content.PlainText(item.Title))
		if title == "" {
			continue
		}

		start, hasTime, ok := itemStart(item)
		if !ok {
			continue
		}
		end := start
		if v := eventExtension(item, "enddate"); v != "" {
			if t, _, ok := parseDateTime(v, time.Local); ok && !t.Before(start) {
				end = t
			}
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		ev := domain.Event{
			Title:       title,
			Description: content.PlainText(description),
			Location:    eventExtension(item, "location"),
			Organizer:   eventExtension(item, "organizer"),
			StartDate:   start,
			EndDate:     end,
			URL:         item.Link,
			Category:    mapCategoryLabel(append([]string{eventExtension(item, "type")}, item.Categories...)...),
		}
		if ev.Organizer == "" && item.Author != nil {
			ev.Organizer = item.Author.Name
		}
		if item.Image != nil {
			ev.ImageURL = item.Image.URL
		}
		for _, enc := range item.Enclosures {
			if ev.ImageURL == "" && enc != nil && strings.HasPrefix(enc.Type, "image/") {
				ev.ImageURL = enc.URL
			}
		}
		ev.IsFree = isFree(ev.Title, ev.Description)
		ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, !hasTime)
		events = append(events, ev)
	}
	return events, nil
}

// itemStart picks the event date of a feed item
func itemStart(item *gofeed.Item) (t time.Time, hasTime, ok bool) {
	if v := eventExtension(item, "startdate"); v != "" {
		if t, hasTime, ok := parseDateTime(v, time.Local); ok {
			return t, hasTime, true
		}
	}
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true, true
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed, true, true
	}
	return time.Time{}, false, false
}

// eventExtension returns the value of an Event-RSS element (ev:startdate, ev:location, ...)
func eventExtension(item *gofeed.Item, name string) string {
	for _, prefix := range []string{"ev", "event"} {
		if v := firstExtension(item.Extensions, prefix, name); v != "" {
			return v
		}
	}
	return ""
}

func firstExtension(exts ext.Extensions, prefix, name string) string {
	elems, ok := exts[prefix]
	if !ok {
		return ""
	}
	for key, values := range elems {
		if !strings.EqualFold(key, name) {
			continue
		}
		for _, v := range values {
			if s := strings.TrimSpace(v.Value); s != "" {
				return s
			}
		}
	}
	return ""
}

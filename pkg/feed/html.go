package feed

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// eventBlockSelectors match repeating event containers of common municipal CMS templates
var eventBlockSelectors = []string{
	`[itemtype*="schema.org/Event"]`,
	".vevent",
	"article.event",
	".event-item",
	".calendar-event",
	".events-list li",
	".event-list li",
	"li.event",
	".views-row",
	".event",
}

// parseHTML scrapes events from a page: JSON-LD Event blocks first, repeating DOM blocks otherwise
func parseHTML(body []byte, pageURL string, ref time.Time) ([]domain.Event, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, _ := url.Parse(pageURL)

	if events := jsonLDEvents(doc, ref); len(events) > 0 {
		return events, nil
	}

	for _, sel := range eventBlockSelectors {
		blocks := doc.Find(sel)
		if blocks.Length() == 0 {
			continue
		}
		var events []domain.Event
		blocks.Each(func(_ int, s *goquery.Selection) {
			if ev, ok := domEvent(s, base, ref); ok {
				events = append(events, ev)
			}
		})
		if len(events) > 0 {
			return events, nil
		}
	}
	return nil, nil
}

// jsonLDEvents reads schema.org Event objects from ld+json scripts, including @graph and arrays
func jsonLDEvents(doc *goquery.Document, ref time.Time) []domain.Event {
	var events []domain.Event
	var visit func(v gjson.Result)
	visit = func(v gjson.Result) {
		switch {
		case v.IsArray():
			v.ForEach(func(_, item gjson.Result) bool { visit(item); return true })
		case v.IsObject():
			if g := v.Get("@graph"); g.IsArray() {
				visit(g)
				return
			}
			if isEventType(v.Get("@type")) {
				if ev, ok := jsonLDEvent(v, ref); ok {
					events = append(events, ev)
				}
			}
		}
	}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if gjson.Valid(raw) {
			visit(gjson.Parse(raw))
		}
	})
	return events
}

func isEventType(t gjson.Result) bool {
	match := func(s string) bool { return strings.HasSuffix(s, "Event") }
	if t.IsArray() {
		found := false
		t.ForEach(func(_, v gjson.Result) bool { found = match(v.String()); return !found })
		return found
	}
	return match(t.String())
}

func jsonLDEvent(v gjson.Result, ref time.Time) (domain.Event, bool) {
	ev := domain.Event{
		Title:       content.PlainText(v.Get("name").String()),
		Description: content.PlainText(v.Get("description").String()),
		URL:         v.Get("url").String(),
	}
	if ev.Title == "" {
		return ev, false
	}
	start, hasTime, ok := parseDateTime(v.Get("startDate").String(), ref.Location())
	if !ok {
		return ev, false
	}
	ev.StartDate, ev.EndDate = start, start
	if end, _, ok := parseDateTime(v.Get("endDate").String(), ref.Location()); ok && !end.Before(start) {
		ev.EndDate = end
	}
	ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, !hasTime)

	loc := v.Get("location")
	switch {
	case loc.IsArray():
		loc = loc.Get("0")
		fallthrough
	case loc.IsObject():
		ev.Location = firstString(loc, []string{"name", "address.streetAddress", "address"})
	default:
		ev.Location = loc.String()
	}
	ev.Organizer = firstString(v, []string{"organizer.name", "organizer"})
	ev.ImageURL = firstString(v, []string{"image.url", "image.0.url", "image.0", "image"})

	switch free := v.Get("isAccessibleForFree"); {
	case free.Exists():
		ev.IsFree = free.Bool() || strings.EqualFold(free.String(), "true")
	case v.Get("offers.price").Exists():
		ev.IsFree = v.Get("offers.price").Float() == 0
	case v.Get("offers.0.price").Exists():
		ev.IsFree = v.Get("offers.0.price").Float() == 0
	default:
		ev.IsFree = isFree(ev.Title, ev.Description)
	}
	return ev, true
}

// domEvent extracts one event from a repeating block, the block must carry a recognizable date
func domEvent(s *goquery.Selection, base *url.URL, ref time.Time) (domain.Event, bool) {
	title := firstText(s, "[itemprop=name]", ".summary", ".event-title", ".title", "h2", "h3", "h4", "h1", "a")
	if title == "" {
		return domain.Event{}, false
	}

	text := strings.Join(strings.Fields(s.Text()), " ")
	var start time.Time
	hasTime := false
	if dt, ok := s.Find("time[datetime], [itemprop=startDate], .dtstart").Attr("datetime"); ok {
		start, hasTime, _ = parseDateTime(dt, ref.Location())
	}
	if start.IsZero() {
		if dt, ok := s.Find("[itemprop=startDate], .dtstart").Attr("content"); ok {
			start, hasTime, _ = parseDateTime(dt, ref.Location())
		}
	}
	if start.IsZero() {
		d, ok := extractDate(text, ref)
		if !ok {
			return domain.Event{}, false
		}
		start = d
	}

	end := start
	if clock := extractClock(text); !hasTime && len(clock) > 0 {
		day := start
		start = day.Add(clock[0])
		end = start
		hasTime = true
		if len(clock) > 1 && day.Add(clock[1]).After(start) {
			end = day.Add(clock[1])
		}
	}

	ev := domain.Event{
		Title:       title,
		Description: firstText(s, "[itemprop=description]", ".description", ".event-description", ".summary-text", "p"),
		Location:    firstText(s, "[itemprop=location]", ".location", ".event-location", ".venue"),
		StartDate:   start,
		EndDate:     end,
	}
	ev.StartTime, ev.EndTime = timeLabels(start, end, !hasTime)
	if href, ok := s.Find("a[href]").First().Attr("href"); ok {
		ev.URL = resolveURL(base, href)
	}
	if src, ok := s.Find("img[src]").First().Attr("src"); ok {
		ev.ImageURL = resolveURL(base, src)
	}
	ev.IsFree = isFree(text)
	return ev, true
}

// firstText returns the trimmed text of the first selector matching with non-empty text
func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := strings.Join(strings.Fields(s.Find(sel).First().Text()), " "); t != "" {
			return t
		}
	}
	return ""
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

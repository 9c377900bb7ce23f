package feed

import (
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// jsonListPaths are where calendar APIs put their event arrays
var jsonListPaths = []string{"events", "data", "items", "results", "data.events", "calendar.events", "value"}

// jsonFields maps event fields to the aliases used by common calendar providers
var jsonFields = struct {
	title, description, location, organizer, start, end, startTime, endTime, image, url, category, cost, attendees []string
}{
	title:       []string{"title", "name", "summary", "eventName", "event_name", "subject"},
	description: []string{"description", "details", "body", "content", "summary_text", "excerpt"},
	location:    []string{"location", "venue.venue", "venue.name", "venue", "place", "address", "location.name", "location_name"},
	organizer:   []string{"organizer.organizer", "organizer.name", "organizer", "host", "department", "calendar.name"},
	start:       []string{"start_date", "startDate", "start", "start.dateTime", "start.date", "startDateTime", "start_time", "date", "eventDate", "dtstart", "utc_start_date"},
	end:         []string{"end_date", "endDate", "end", "end.dateTime", "end.date", "endDateTime", "end_time", "dtend", "utc_end_date"},
	startTime:   []string{"startTime", "start_time_label", "time"},
	endTime:     []string{"endTime", "end_time_label"},
	image:       []string{"image.url", "image", "imageUrl", "image_url", "thumbnail", "featured_image"},
	url:         []string{"url", "link", "permalink", "website", "event_url"},
	category:    []string{"categories.0.name", "categories.0", "category.name", "category", "type", "tags.0"},
	cost:        []string{"cost", "price", "fee", "isFree", "is_free", "free"},
	attendees:   []string{"attendees", "attendeeCount", "attendee_count", "rsvp_count", "capacity"},
}

// parseJSON extracts events from provider-specific JSON, tolerating missing optional fields
func parseJSON(body []byte, ref time.Time) ([]domain.Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	root := gjson.ParseBytes(body)
	list := root
	if !root.IsArray() {
		list = gjson.Result{}
		for _, p := range jsonListPaths {
			if v := root.Get(p); v.IsArray() {
				list = v
				break
			}
		}
		if !list.Exists() {
			return nil, errors.New("no event list in json")
		}
	}

	var events []domain.Event
	list.ForEach(func(_, item gjson.Result) bool {
		if ev, ok := jsonEvent(item, ref); ok {
			events = append(events, ev)
		}
		return true
	})
	return events, nil
}

func jsonEvent(item gjson.Result, ref time.Time) (domain.Event, bool) {
	if !item.IsObject() {
		return domain.Event{}, false
	}
	ev := domain.Event{
		Title:       content.PlainText(firstString(item, jsonFields.title)),
		Description: content.PlainText(firstString(item, jsonFields.description)),
		Location:    strings.TrimSpace(firstString(item, jsonFields.location)),
		Organizer:   strings.TrimSpace(firstString(item, jsonFields.organizer)),
		ImageURL:    firstString(item, jsonFields.image),
		URL:         firstString(item, jsonFields.url),
		Category:    mapCategoryLabel(firstString(item, jsonFields.category)),
	}
	if ev.Title == "" {
		return ev, false
	}

	start, hasTime, ok := parseDateTime(firstString(item, jsonFields.start), ref.Location())
	if !ok {
		return ev, false
	}
	allDay := !hasTime || item.Get("all_day").Bool() || item.Get("allDay").Bool()
	if clock := extractClock(firstString(item, jsonFields.startTime)); !hasTime && len(clock) > 0 {
		start = start.Add(clock[0])
		allDay = false
	}
	ev.StartDate, ev.EndDate = start, start
	if end, _, ok := parseDateTime(firstString(item, jsonFields.end), ref.Location()); ok && !end.Before(start) {
		ev.EndDate = end
	} else if clock := extractClock(firstString(item, jsonFields.endTime)); len(clock) > 0 {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		if e := day.Add(clock[0]); e.After(start) {
			ev.EndDate = e
		}
	}
	ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, allDay)

	ev.IsFree = jsonFree(item, ev.Title, ev.Description)
	for _, p := range jsonFields.attendees {
		if v := item.Get(p); v.Type == gjson.Number {
			ev.Attendees = int(v.Int())
			break
		}
	}
	return ev, true
}

// jsonFree reads explicit cost fields before falling back to text hints
func jsonFree(item gjson.Result, texts ...string) bool {
	for _, p := range jsonFields.cost {
		v := item.Get(p)
		switch {
		case !v.Exists():
			continue
		case v.IsBool():
			return v.Bool() == (p != "cost" && p != "price" && p != "fee")
		case v.Type == gjson.Number:
			return v.Float() == 0
		case v.Type == gjson.String && strings.TrimSpace(v.String()) != "":
			return isFree(v.String())
		}
	}
	return isFree(texts...)
}

// firstString returns the first alias resolving to a non-empty scalar
func firstString(item gjson.Result, paths []string) string {
	for _, p := range paths {
		v := item.Get(p)
		if !v.Exists() || v.IsObject() || v.IsArray() {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

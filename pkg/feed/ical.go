package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // calendars reference IANA zones, don't depend on the host zoneinfo

	ical "github.com/arran4/golang-ical"
	log "github.com/go-pkgz/lgr"
	"github.com/teambition/rrule-go"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// window limits recurrence expansion
type window struct {
	from, to       time.Time
	maxOccurrences int
}

// parseICal converts VEVENTs to events, expanding recurring ones inside the window
func parseICal(body []byte, w window) ([]domain.Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty calendar body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var events []domain.Event
	for _, ve := range cal.Events() {
		base, allDay, err := veventToEvent(ve)
		if err != nil {
			log.Printf("[DEBUG] skip vevent: %v", err)
			continue
		}

		rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
		if rruleProp == nil || rruleProp.Value == "" {
			events = append(events, base)
			continue
		}

		occurrences, err := expandRecurrence(rruleProp.Value, exDates(ve, base.StartDate.Location()), base.StartDate, w)
		if err != nil {
			log.Printf("[DEBUG] bad rrule %q for %q, keeping first occurrence: %v", rruleProp.Value, base.Title, err)
			events = append(events, base)
			continue
		}
		duration := base.EndDate.Sub(base.StartDate)
		for _, start := range occurrences {
			ev := base
			ev.StartDate, ev.EndDate = start, start.Add(duration)
			ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, allDay)
			events = append(events, ev)
		}
	}
	return events, nil
}

func veventToEvent(ve *ical.VEvent) (ev domain.Event, allDay bool, err error) {
	prop := func(p ical.ComponentProperty) string {
		if v := ve.GetProperty(p); v != nil {
			return unescapeText(v.Value)
		}
		return ""
	}

	ev.Title = strings.TrimSpace(prop(ical.ComponentPropertySummary))
	if ev.Title == "" {
		return ev, false, errors.New("missing summary")
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, false, fmt.Errorf("missing dtstart for %q", ev.Title)
	}
	start, allDay, err := parseICalTime(startProp)
	if err != nil {
		return ev, false, fmt.Errorf("dtstart of %q: %w", ev.Title, err)
	}
	ev.StartDate = start

	switch {
	case ve.GetProperty(ical.ComponentPropertyDtEnd) != nil:
		if end, _, err := parseICalTime(ve.GetProperty(ical.ComponentPropertyDtEnd)); err == nil {
			ev.EndDate = end
		}
	case ve.GetProperty(ical.ComponentPropertyDuration) != nil:
		if d, err := parseDuration(prop(ical.ComponentPropertyDuration)); err == nil {
			ev.EndDate = start.Add(d)
		}
	}
	if ev.EndDate.IsZero() || ev.EndDate.Before(start) {
		ev.EndDate = start
		if allDay {
			ev.EndDate = start.AddDate(0, 0, 1)
		}
	}

	ev.Description = content.PlainText(prop(ical.ComponentPropertyDescription))
	ev.Location = strings.TrimSpace(prop(ical.ComponentPropertyLocation))
	ev.URL = strings.TrimSpace(prop(ical.ComponentPropertyUrl))
	ev.Organizer = organizerName(ve.GetProperty(ical.ComponentPropertyOrganizer))
	ev.ImageURL = imageURL(ve)
	ev.Category = mapCategoryLabel(strings.Split(prop(ical.ComponentPropertyCategories), ",")...)
	ev.IsFree = isFree(ev.Title, ev.Description)
	ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, allDay)
	return ev, allDay, nil
}

// parseICalTime handles DATE, floating DATE-TIME, UTC and TZID forms
func parseICalTime(p *ical.IANAProperty) (t time.Time, allDay bool, err error) {
	v := strings.TrimSpace(p.Value)
	if v == "" {
		return time.Time{}, false, errors.New("empty time value")
	}

	loc := time.Local
	if tzids, ok := p.ICalParameters["TZID"]; ok && len(tzids) > 0 {
		if l, err := time.LoadLocation(strings.Trim(tzids[0], `"`)); err == nil {
			loc = l
		}
	}

	if vals, ok := p.ICalParameters["VALUE"]; (ok && len(vals) > 0 && strings.EqualFold(vals[0], "DATE")) || !strings.Contains(v, "T") {
		t, err = time.ParseInLocation("20060102", v[:min(8, len(v))], loc)
		return t, true, err
	}
	if strings.HasSuffix(v, "Z") {
		t, err = time.Parse("20060102T150405Z", v)
		return t, false, err
	}
	t, err = time.ParseInLocation("20060102T150405", v, loc)
	return t, false, err
}

// exDates collects EXDATE values, which may be comma separated and repeated
func exDates(ve *ical.VEvent, loc *time.Location) []time.Time {
	var res []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			prop := &ical.IANAProperty{BaseProperty: ical.BaseProperty{Value: strings.TrimSpace(part), ICalParameters: p.ICalParameters}}
			if t, _, err := parseICalTime(prop); err == nil {
				res = append(res, t.In(loc))
			}
		}
	}
	return res
}

// expandRecurrence returns occurrence starts of the rule inside the window, capped
func expandRecurrence(rule string, excluded []time.Time, dtstart time.Time, w window) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("parse rrule: %w", err)
	}
	r.DTStart(dtstart)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range excluded {
		set.ExDate(ex)
	}

	occurrences := set.Between(w.from.In(dtstart.Location()), w.to.In(dtstart.Location()), true)
	if w.maxOccurrences > 0 && len(occurrences) > w.maxOccurrences {
		log.Printf("[DEBUG] rrule %q truncated to %d occurrences", rule, w.maxOccurrences)
		occurrences = occurrences[:w.maxOccurrences]
	}
	return occurrences, nil
}

// organizerName prefers the CN parameter, then the address without mailto
func organizerName(p *ical.IANAProperty) string {
	if p == nil {
		return ""
	}
	if cn, ok := p.ICalParameters["CN"]; ok && len(cn) > 0 && cn[0] != "" {
		return strings.Trim(cn[0], `"`)
	}
	v := p.Value
	if len(v) >= 7 && strings.EqualFold(v[:7], "mailto:") {
		v = v[7:]
	}
	return strings.TrimSpace(v)
}

// imageURL looks at ATTACH with an image type and the IMAGE property
func imageURL(ve *ical.VEvent) string {
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttach) {
		fmtType, ok := p.ICalParameters["FMTTYPE"]
		if ok && len(fmtType) > 0 && strings.HasPrefix(strings.ToLower(fmtType[0]), "image/") {
			return p.Value
		}
	}
	if p := ve.GetProperty(ical.ComponentProperty("IMAGE")); p != nil {
		return p.Value
	}
	return ""
}

// parseDuration handles the common subset of RFC 5545 durations, e.g. PT1H30M or P1D
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(v)), "+")
	if !strings.HasPrefix(v, "P") {
		return 0, fmt.Errorf("bad duration %q", v)
	}
	var d time.Duration
	inTime := false
	num := 0
	for _, r := range v[1:] {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'T':
			inTime = true
		case r == 'W':
			d += time.Duration(num) * 7 * 24 * time.Hour
			num = 0
		case r == 'D':
			d += time.Duration(num) * 24 * time.Hour
			num = 0
		case r == 'H' && inTime:
			d += time.Duration(num) * time.Hour
			num = 0
		case r == 'M' && inTime:
			d += time.Duration(num) * time.Minute
			num = 0
		case r == 'S' && inTime:
			d += time.Duration(num) * time.Second
			num = 0
		default:
			return 0, fmt.Errorf("bad duration %q", v)
		}
	}
	return d, nil
}

// unescapeText reverses iCalendar TEXT escaping
func unescapeText(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`).Replace(s)
}

package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	dps "github.com/markusmobius/go-dateparser"
	"github.com/markusmobius/go-dateparser/date"
)

// AllDay is the time label of events without a time of day
const AllDay = "All Day"

var (
	monthDateRe   = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})\b`)
	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	yearRe        = regexp.MustCompile(`\b\d{4}\b|/\d{2}\b`)
	clockRe       = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?\s?m\.?(?:\W|$)`)
	weekdayRe     = regexp.MustCompile(`(?i)^(mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+`)
	epochRe       = regexp.MustCompile(`^\d{10}(\d{3})?$`)
)

// searchConfig is the go-dateparser setup for dates in English event text
var searchConfig = dps.Configuration{Languages: []string{"en"}}

// parseDateTime parses a feed date value in any common layout, zone-less values are taken in loc.
// hasTime is false for date-only values, which are returned at midnight in loc.
func parseDateTime(s string, loc *time.Location) (t time.Time, hasTime, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		// "Saturday, June 14, 2025" style values
		stripped := weekdayRe.ReplaceAllString(s, "")
		if stripped == s {
			return time.Time{}, false, false
		}
		if t, err = dateparse.ParseIn(stripped, loc); err != nil {
			return time.Time{}, false, false
		}
	}
	if epochRe.MatchString(s) {
		return t.In(loc), true, true
	}
	return t, strings.Contains(s, ":") || clockRe.MatchString(s), true
}

// extractDate finds the first calendar day in free text. Dates without a year take the year of ref,
// moving to the next year when that would put them more than two months in the past.
func extractDate(text string, ref time.Time) (time.Time, bool) {
	loc := ref.Location()
	cfg := searchConfig.Clone()
	cfg.CurrentTime, cfg.DefaultTimezone = ref, loc
	if _, found, err := dps.Search(cfg, text); err == nil {
		for _, f := range found {
			// bare times, months and years found by the search are not event days
			if f.Date.Period != date.Day && !f.Date.Period.IsTime() {
				continue
			}
			if !monthDateRe.MatchString(f.Text) && !numericDateRe.MatchString(f.Text) && !isoDateRe.MatchString(f.Text) {
				continue
			}
			t := f.Date.Time.In(loc)
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
			if !yearRe.MatchString(f.Text) && day.Before(ref.AddDate(0, -2, 0)) {
				day = day.AddDate(1, 0, 0)
			}
			return day, true
		}
	}
	return matchDate(text, ref)
}

// matchDate covers the day shapes event listings use when the search finds none of them
func matchDate(text string, ref time.Time) (time.Time, bool) {
	loc := ref.Location()
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if t, err := time.ParseInLocation("2006-01-02", m[0], loc); err == nil {
			return t, true
		}
	}
	if m := monthDateRe.FindStringSubmatch(text); m != nil {
		month, okMonth := monthNumber(m[1])
		day, _ := strconv.Atoi(m[2])
		if okMonth && day >= 1 && day <= 31 {
			year := ref.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			t := time.Date(year, month, day, 0, 0, 0, 0, loc)
			if m[3] == "" && t.Before(ref.AddDate(0, -2, 0)) {
				t = t.AddDate(1, 0, 0)
			}
			return t, true
		}
	}
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// extractClock finds clock times like "7pm" or "10:30 a.m." in free text, in order of appearance
func extractClock(text string) []time.Duration {
	var res []time.Duration
	for _, m := range clockRe.FindAllStringSubmatch(text, 2) {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			continue
		}
		if strings.EqualFold(m[3], "p") && hour != 12 {
			hour += 12
		}
		if strings.EqualFold(m[3], "a") && hour == 12 {
			hour = 0
		}
		res = append(res, time.Duration(hour)*time.Hour+time.Duration(minute)*time.Minute)
	}
	return res
}

func monthNumber(s string) (time.Month, bool) {
	s = strings.ToLower(s)
	if len(s) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), s[:3]) {
			return m, true
		}
	}
	return 0, false
}

// clockLabel formats the time of day as "7:00 PM"
func clockLabel(t time.Time) string {
	return t.Format("3:04 PM")
}

// timeLabels returns human start and end labels for an occurrence
func timeLabels(start, end time.Time, allDay bool) (startLabel, endLabel string) {
	if allDay {
		return AllDay, ""
	}
	startLabel = clockLabel(start)
	if !end.IsZero() && end.After(start) {
		endLabel = clockLabel(end)
	}
	return startLabel, endLabel
}

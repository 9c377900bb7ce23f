package feed

import (
	"context"
	"regexp"
	"strings"

	"github.com/umputun/civicfeed/pkg/domain"
)

// categoryKeywords are checked in order, first match wins
var categoryKeywords = []struct {
	category domain.Category
	re       *regexp.Regexp
}{
	{domain.CategoryGovernment, regexp.MustCompile(`(?i)\b(council|commission|board meeting|public hearing|town hall|city hall|ordinance|budget hearing|zoning|planning board|election|voter|mayor)\b`)},
	{domain.CategoryEducation, regexp.MustCompile(`(?i)\b(school|class(es)?|lecture|workshop|seminar|tutoring|graduation|pta|pto|semester|enrollment|stem)\b`)},
	{domain.CategoryBusiness, regexp.MustCompile(`(?i)\b(networking|chamber|business|ribbon cutting|entrepreneur|job fair|career fair|small business|luncheon|expo)\b`)},
	{domain.CategoryLibrary, regexp.MustCompile(`(?i)\b(library|book club|storytime|story time|author talk|reading program|book sale)\b`)},
	{domain.CategoryHealth, regexp.MustCompile(`(?i)\b(health|wellness|blood drive|vaccin\w*|flu shot|clinic|screening|fitness|yoga|mental health)\b`)},
	{domain.CategoryFamily, regexp.MustCompile(`(?i)\b(family|kids|children|toddler|teen|parent|easter egg|trick or treat|santa)\b`)},
	{domain.CategoryArts, regexp.MustCompile(`(?i)\b(concert|music|theat(er|re)|art|arts|gallery|exhibit(ion)?|dance|film|symphony|orchestra|festival|poetry)\b`)},
	{domain.CategoryRecreation, regexp.MustCompile(`(?i)\b(park|parks|trail|hike|hiking|sports?|league|swim|pool|golf|tennis|run|5k|camp|nature|fishing|outdoor)\b`)},
	{domain.CategoryCommunity, regexp.MustCompile(`(?i)\b(volunteer|community|neighborhood|cleanup|fundraiser|farmers market|parade|celebration|potluck)\b`)},
}

var (
	freeRe = regexp.MustCompile(`(?i)\b(free|no cost|no charge|free admission|free of charge)\b`)
	paidRe = regexp.MustCompile(`(?i)(\$\s?\d+|\btickets?\b|\badmission:?\s*\$|\bregistration fee\b|\bcost:\s*\$)`)
)

// KeywordCategorizer assigns categories by keyword match with the organization type as a fallback
type KeywordCategorizer struct{}

// Categorize sets a category on every event without a valid one
func (KeywordCategorizer) Categorize(_ context.Context, src domain.CalendarSource, events []domain.Event) []domain.Event {
	for i := range events {
		if !events[i].Category.Valid() {
			events[i].Category = categoryFor(events[i].Title, events[i].Description, src.Type)
		}
	}
	return events
}

// categoryFor matches title first, then description, then falls back to the organization default
func categoryFor(title, description string, orgType domain.OrgType) domain.Category {
	for _, text := range []string{title, description} {
		for _, ck := range categoryKeywords {
			if ck.re.MatchString(text) {
				return ck.category
			}
		}
	}
	return domain.DefaultCategory(orgType)
}

// mapCategoryLabel maps a feed-provided category label to the taxonomy, empty when unknown
func mapCategoryLabel(labels ...string) domain.Category {
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if c := domain.Category(l); c.Valid() {
			return c
		}
		for _, ck := range categoryKeywords {
			if ck.re.MatchString(l) {
				return ck.category
			}
		}
	}
	return ""
}

// isFree reports whether the event text marks it as free. Events without any price hint are
// assumed free, public-body events rarely charge.
func isFree(texts ...string) bool {
	joined := strings.Join(texts, " ")
	if freeRe.MatchString(joined) {
		return true
	}
	return !paidRe.MatchString(joined)
}

package discovery

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/civicfeed/pkg/domain"
)

// SignalKind is the way a feed was found on a page
type SignalKind string

// discovery signals, strongest first
const (
	SignalAlternate  SignalKind = "alternate"   // <link rel="alternate"> feed declaration
	SignalDirectLink SignalKind = "direct-link" // anchor pointing to .ics, .rss or webcal://
	SignalJSONAPI    SignalKind = "json-api"    // calendar JSON endpoint referenced from a script
	SignalAffordance SignalKind = "affordance"  // subscribe/download/export link
	SignalHeuristic  SignalKind = "heuristic"   // guessed well-known path on a live site
)

// signal is one observation of a feed URL on a probed page
type signal struct {
	kind   SignalKind
	url    string
	format domain.FeedFormat
}

var (
	affordanceRe = regexp.MustCompile(`(?i)\b(subscribe|download|export|add to (my )?calendar|ical|icalendar|outlook|google calendar)\b`)
	calendarRe   = regexp.MustCompile(`(?i)(calendar|event|ical|ics)`)
	jsonAPIRe    = regexp.MustCompile(`["'](https?://[^"'\s]+|/[^"'\s]*)["']`)
	jsonPathRe   = regexp.MustCompile(`(?i)(/wp-json/tribe/events|/api/[^"'\s]*(event|calendar)|calendar[^"'\s]*\.json|events?\.json|/feeds?/json|[?&]format=json)`)
	rssPathRe    = regexp.MustCompile(`(?i)(\.rss$|\.rss\?|/rss/?$|rss\.xml|/feed/?$|[?&]format=rss|/rss\.aspx)`)
	icsPathRe    = regexp.MustCompile(`(?i)(\.ics$|\.ics\?|[?&]ical=1|/ical/?$|/icalendar)`)
)

// sniff finds feed signals on an HTML page. Relative links are resolved against pageURL.
func sniff(body []byte, pageURL string) []signal {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var res []signal
	add := func(kind SignalKind, href string, format domain.FeedFormat) {
		if u := resolve(base, href); u != "" {
			res = append(res, signal{kind: kind, url: u, format: format})
		}
	}

	doc.Find(`link[rel="alternate"][href]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		typ := strings.ToLower(s.AttrOr("type", ""))
		switch {
		case strings.Contains(typ, "calendar"):
			add(SignalAlternate, href, domain.FormatICal)
		case strings.Contains(typ, "rss"), strings.Contains(typ, "atom"):
			add(SignalAlternate, href, domain.FormatRSS)
		case strings.Contains(typ, "json"):
			add(SignalAlternate, href, domain.FormatJSON)
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}
		lower := strings.ToLower(href)
		format, direct := linkFormat(lower)
		if direct {
			add(SignalDirectLink, href, format)
		}
		text := strings.TrimSpace(s.Text() + " " + s.AttrOr("title", "") + " " + s.AttrOr("aria-label", ""))
		if affordanceRe.MatchString(text) && calendarRe.MatchString(lower+" "+text) {
			if !direct {
				format = domain.FormatICal
				if strings.Contains(lower, "rss") || strings.Contains(lower, "feed") {
					format = domain.FormatRSS
				}
			}
			add(SignalAffordance, href, format)
		}
	})

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, m := range jsonAPIRe.FindAllStringSubmatch(s.Text(), -1) {
			if jsonPathRe.MatchString(m[1]) {
				add(SignalJSONAPI, m[1], domain.FormatJSON)
			}
		}
	})
	doc.Find("[data-feed-url], [data-events-url], [data-calendar-url]").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"data-feed-url", "data-events-url", "data-calendar-url"} {
			if v, ok := s.Attr(attr); ok && jsonPathRe.MatchString(v) {
				add(SignalJSONAPI, v, domain.FormatJSON)
			}
		}
	})

	return res
}

// linkFormat detects feed links by URL shape
func linkFormat(lowerHref string) (domain.FeedFormat, bool) {
	switch {
	case strings.HasPrefix(lowerHref, "webcal://"):
		return domain.FormatWebcal, true
	case icsPathRe.MatchString(lowerHref):
		return domain.FormatICal, true
	case rssPathRe.MatchString(lowerHref):
		return domain.FormatRSS, true
	}
	return "", false
}

// heuristicGuess picks a well-known calendar path for a live page without feed signals
func heuristicGuess(body []byte, pageURL string) signal {
	base, _ := url.Parse(pageURL)
	lower := bytes.ToLower(body)
	switch {
	case bytes.Contains(lower, []byte("wp-content")), bytes.Contains(lower, []byte("the-events-calendar")):
		return signal{kind: SignalHeuristic, url: resolve(base, "/events/feed/"), format: domain.FormatRSS}
	case bytes.Contains(lower, []byte("civicplus")), bytes.Contains(lower, []byte("/calendar.aspx")):
		return signal{kind: SignalHeuristic, url: resolve(base, "/RSSFeed.aspx?ModID=58&CID=All-calendar.xml"), format: domain.FormatRSS}
	default:
		return signal{kind: SignalHeuristic, url: resolve(base, "/calendar.ics"), format: domain.FormatICal}
	}
}

// resolve makes href absolute, webcal links are kept as is. Returns empty string for unusable links.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(href), "webcal://") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

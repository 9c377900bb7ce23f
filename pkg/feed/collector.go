// Package feed owns access to the source registry and converts calendar feeds
// (ical, webcal, rss, json, html) into normalized events.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/categorizer.go -pkg mocks -skip-ensure -fmt goimports . Categorizer
//go:generate moq -out mocks/page_extractor.go -pkg mocks -skip-ensure -fmt goimports . PageExtractor

const maxDescriptionLength = 2000

// SourceStore is the registry of calendar sources
type SourceStore interface {
	List(ctx context.Context, filter domain.SourceFilter) ([]domain.CalendarSource, error)
	Get(ctx context.Context, id string) (domain.CalendarSource, error)
	// Add stores the source unless it duplicates a registered one, in which case
	// the existing source is returned with added=false
	Add(ctx context.Context, src domain.CalendarSource) (stored domain.CalendarSource, added bool, err error)
	Toggle(ctx context.Context, id string) (bool, error)
	UpdateLastSync(ctx context.Context, id string, at time.Time) error
	SetPriority(ctx context.Context, id string, priority int) error
}

// Categorizer assigns taxonomy categories to collected events
type Categorizer interface {
	Categorize(ctx context.Context, src domain.CalendarSource, events []domain.Event) []domain.Event
}

// PageExtractor returns the main text of a web page
type PageExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// CollectorOpts configures Collector
type CollectorOpts struct {
	Timeout        time.Duration
	UserAgent      string
	Horizon        time.Duration // recurring events are expanded this far ahead
	MaxOccurrences int           // cap per recurring event
	FormatPriority []domain.FeedFormat
	Categorizer    Categorizer // optional refinement after keyword categorization

	// Extractor fills empty descriptions from event pages, at most MaxEnrich events per collection
	Extractor PageExtractor
	MaxEnrich int
}

// Collector reads the source registry and collects events from feeds
type Collector struct {
	sources  SourceStore
	fetcher  *content.Fetcher
	opts     CollectorOpts
	keywords KeywordCategorizer
	now      func() time.Time
}

// NewCollector makes a collector over the source store
func NewCollector(sources SourceStore, opts CollectorOpts) *Collector {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Horizon == 0 {
		opts.Horizon = 90 * 24 * time.Hour
	}
	if opts.MaxOccurrences == 0 {
		opts.MaxOccurrences = 100
	}
	if len(opts.FormatPriority) == 0 {
		opts.FormatPriority = []domain.FeedFormat{domain.FormatICal, domain.FormatWebcal, domain.FormatJSON,
			domain.FormatRSS, domain.FormatHTML}
	}
	return &Collector{
		sources: sources,
		fetcher: content.NewFetcher(content.FetcherOpts{Timeout: opts.Timeout, MaxRedirects: 10,
			UserAgent: opts.UserAgent, FeedHeaders: true}),
		opts: opts,
		now:  time.Now,
	}
}

// ListSources returns all registered sources
func (c *Collector) ListSources(ctx context.Context) ([]domain.CalendarSource, error) {
	return c.sources.List(ctx, domain.SourceFilter{})
}

// ListByState returns sources of the state
func (c *Collector) ListByState(ctx context.Context, state string) ([]domain.CalendarSource, error) {
	return c.sources.List(ctx, domain.SourceFilter{State: state})
}

// ListByType returns sources of the organization type
func (c *Collector) ListByType(ctx context.Context, orgType domain.OrgType) ([]domain.CalendarSource, error) {
	return c.sources.List(ctx, domain.SourceFilter{Type: orgType})
}

// ListActive returns sources collected during sync
func (c *Collector) ListActive(ctx context.Context) ([]domain.CalendarSource, error) {
	return c.sources.List(ctx, domain.SourceFilter{ActiveOnly: true})
}

// ListFiltered returns sources matching the filter
func (c *Collector) ListFiltered(ctx context.Context, filter domain.SourceFilter) ([]domain.CalendarSource, error) {
	return c.sources.List(ctx, filter)
}

// AddSource registers a source. Returns added=false with the existing source on duplicate,
// the caller decides how to report the conflict.
func (c *Collector) AddSource(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, bool, error) {
	src.Name, src.City, src.State = strings.TrimSpace(src.Name), strings.TrimSpace(src.City), strings.TrimSpace(src.State)
	src.FeedURL = strings.TrimSpace(src.FeedURL)
	switch {
	case src.Name == "" || src.City == "" || src.State == "" || src.FeedURL == "":
		return domain.CalendarSource{}, false, fmt.Errorf("name, city, state and feed url are required: %w", domain.ErrInvalidInput)
	case !src.Type.Valid():
		return domain.CalendarSource{}, false, fmt.Errorf("unknown organization type %q: %w", src.Type, domain.ErrInvalidInput)
	case !src.FeedFormat.Valid():
		return domain.CalendarSource{}, false, fmt.Errorf("unknown feed format %q: %w", src.FeedFormat, domain.ErrInvalidInput)
	}
	if src.ID == "" {
		src.ID = uuid.NewString()
	}

	stored, added, err := c.sources.Add(ctx, src)
	if err != nil {
		return domain.CalendarSource{}, false, fmt.Errorf("add source %s: %w", src.Name, err)
	}
	if added {
		log.Printf("[INFO] added source %s (%s, %s) %s", stored.Name, stored.Location(), stored.FeedFormat, stored.FeedURL)
	}
	return stored, added, nil
}

// ToggleSource flips the active flag and returns the new state
func (c *Collector) ToggleSource(ctx context.Context, id string) (bool, error) {
	active, err := c.sources.Toggle(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle source %s: %w", id, err)
	}
	log.Printf("[INFO] source %s active=%v", id, active)
	return active, nil
}

// MarkSynced records a successful collection time for the source
func (c *Collector) MarkSynced(ctx context.Context, id string, at time.Time) error {
	if err := c.sources.UpdateLastSync(ctx, id, at); err != nil {
		return fmt.Errorf("update last sync of %s: %w", id, err)
	}
	return nil
}

// Collect fetches the source feed and parses it according to the declared format
func (c *Collector) Collect(ctx context.Context, src domain.CalendarSource) ([]domain.Event, error) {
	if !src.FeedFormat.Valid() {
		return nil, fmt.Errorf("unsupported feed format %q", src.FeedFormat)
	}
	page, err := c.fetcher.GetOK(ctx, content.NormalizeURL(src.FeedURL))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.FeedURL, err)
	}

	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	w := window{from: today, to: today.Add(c.opts.Horizon), maxOccurrences: c.opts.MaxOccurrences}

	events, err := parse(src.FeedFormat, page.Body, page.FinalURL, w)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed %s: %w", src.FeedFormat, src.FeedURL, err)
	}

	events = c.normalize(src, events)
	c.enrich(ctx, page.FinalURL, events)
	events = c.keywords.Categorize(ctx, src, events)
	if c.opts.Categorizer != nil && len(events) > 0 {
		events = c.opts.Categorizer.Categorize(ctx, src, events)
	}
	log.Printf("[DEBUG] collected %d events from %s (%s)", len(events), src.Name, src.FeedFormat)
	return events, nil
}

// CollectFromSource is Collect with failures logged and turned into an empty result
func (c *Collector) CollectFromSource(ctx context.Context, src domain.CalendarSource) []domain.Event {
	events, err := c.Collect(ctx, src)
	if err != nil {
		log.Printf("[WARN] failed to collect from %s: %v", src.Name, err)
		return []domain.Event{}
	}
	return events
}

// enrich fills empty descriptions with the main text of the event page.
// Pages equal to the feed page itself are skipped, failures leave the event as is.
func (c *Collector) enrich(ctx context.Context, feedURL string, events []domain.Event) {
	if c.opts.Extractor == nil || c.opts.MaxEnrich <= 0 {
		return
	}
	var done int
	for i := range events {
		if done >= c.opts.MaxEnrich || ctx.Err() != nil {
			return
		}
		ev := &events[i]
		if ev.Description != "" || ev.URL == "" || ev.URL == feedURL {
			continue
		}
		done++
		text, err := c.opts.Extractor.Extract(ctx, ev.URL)
		if err != nil {
			log.Printf("[DEBUG] no description for %q from %s: %v", ev.Title, ev.URL, err)
			continue
		}
		ev.Description = content.Truncate(text, maxDescriptionLength)
	}
}

// normalize binds events to the source and fills defaults, dropping events without title or start
func (c *Collector) normalize(src domain.CalendarSource, events []domain.Event) []domain.Event {
	res := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		ev.Title = strings.TrimSpace(ev.Title)
		if ev.Title == "" || ev.StartDate.IsZero() {
			continue
		}
		ev.SourceID = src.ID
		if ev.Organizer == "" {
			ev.Organizer = src.Name
		}
		if ev.Location == "" {
			ev.Location = src.Location()
		}
		if ev.EndDate.IsZero() {
			ev.EndDate = ev.StartDate
		}
		if ev.StartTime == "" {
			ev.StartTime, ev.EndTime = timeLabels(ev.StartDate, ev.EndDate, false)
		}
		ev.Description = content.Truncate(ev.Description, maxDescriptionLength)
		res = append(res, ev)
	}
	return res
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/civicfeed/pkg/discovery"
	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/geo"
)

//go:generate moq -out mocks/source_collector.go -pkg mocks -skip-ensure -fmt goimports . SourceCollector
//go:generate moq -out mocks/event_store.go -pkg mocks -skip-ensure -fmt goimports . EventStore
//go:generate moq -out mocks/feed_discoverer.go -pkg mocks -skip-ensure -fmt goimports . FeedDiscoverer

// SourceCollector owns the source registry and turns feeds into events
type SourceCollector interface {
	ListActive(ctx context.Context) ([]domain.CalendarSource, error)
	AddSource(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, bool, error)
	Collect(ctx context.Context, src domain.CalendarSource) ([]domain.Event, error)
	MarkSynced(ctx context.Context, id string, at time.Time) error
}

// EventStore persists events, CreateEvent returns domain.ErrDuplicateEvent on dedup key conflict
type EventStore interface {
	GetDedupKeys(ctx context.Context) (map[domain.DedupKey]bool, error)
	CreateEvent(ctx context.Context, event *domain.Event) error
}

// FeedDiscoverer finds feed candidates and resolves city lists
type FeedDiscoverer interface {
	DiscoverForLocation(ctx context.Context, city, state string) ([]domain.DiscoveredFeedCandidate, error)
	CitiesForState(state string, opts discovery.StateOptions) ([]geo.City, error)
	CitiesForDistrict(state string, district int) ([]geo.City, error)
	CitiesForRegions(regions []discovery.Region) ([]geo.City, error)
	CitiesForTopCities(n int) ([]geo.City, error)
}

// LocationNormalizer resolves canonical city and state names
type LocationNormalizer interface {
	Normalize(city, state string) (canonCity, canonState string, ok bool)
}

// SyncState is the stage of one source within a sync pass
type SyncState string

// sync states, a source moves pending -> collecting -> persisted or failed
const (
	StatePending    SyncState = "pending"
	StateCollecting SyncState = "collecting"
	StatePersisted  SyncState = "persisted"
	StateFailed     SyncState = "failed"
)

// SourceSync reports the outcome for one source
type SourceSync struct {
	SourceID   string    `json:"sourceId"`
	Name       string    `json:"name"`
	State      SyncState `json:"state"`
	Collected  int       `json:"collected"`
	Persisted  int       `json:"persisted"`
	Duplicates int       `json:"duplicates"`
	Error      string    `json:"error,omitempty"`
}

// SyncResult aggregates a sync pass, partial results are reported even if some sources failed
type SyncResult struct {
	Sources    int          `json:"sources"`
	Persisted  int          `json:"persisted"`
	Duplicates int          `json:"duplicates"`
	Failed     int          `json:"failed"`
	Details    []SourceSync `json:"details"`
}

// Outcome of adding one discovered candidate
type Outcome string

// onboarding outcomes
const (
	OutcomeAdded  Outcome = "added"
	OutcomeExists Outcome = "exists"
	OutcomeFailed Outcome = "failed"
)

// OnboardedSource is the per-candidate onboarding report
type OnboardedSource struct {
	Source     domain.CalendarSource `json:"source"`
	Confidence float64               `json:"confidence"`
	Outcome    Outcome               `json:"outcome"`
	Events     int                   `json:"events"`
	Error      string                `json:"error,omitempty"`
}

// OnboardResult reports discovery and onboarding for one city
type OnboardResult struct {
	Location   string            `json:"location"`
	Discovered int               `json:"discovered"`
	Added      int               `json:"added"`
	Exists     int               `json:"exists"`
	Failed     int               `json:"failed"`
	Events     int               `json:"events"`
	Sources    []OnboardedSource `json:"sources"`
}

// BatchOnboardResult aggregates onboarding over many cities
type BatchOnboardResult struct {
	Cities       int             `json:"cities"`
	FailedCities int             `json:"failedCities"`
	Discovered   int             `json:"discovered"`
	Added        int             `json:"added"`
	Exists       int             `json:"exists"`
	Events       int             `json:"events"`
	Results      []OnboardResult `json:"results"`
}

// Orchestrator coordinates discovery, registry updates, collection, dedup and persistence.
// Sources and cities are processed one at a time.
type Orchestrator struct {
	collector  SourceCollector
	events     EventStore
	discoverer FeedDiscoverer
	locations  LocationNormalizer
	now        func() time.Time
}

// NewOrchestrator makes an orchestrator. The location normalizer is optional, without it
// locations are compared after trimming and case folding only.
func NewOrchestrator(collector SourceCollector, events EventStore, discoverer FeedDiscoverer, locations LocationNormalizer) *Orchestrator {
	return &Orchestrator{collector: collector, events: events, discoverer: discoverer, locations: locations, now: time.Now}
}

// SyncAll collects from every active source and persists unseen events
func (o *Orchestrator) SyncAll(ctx context.Context) (SyncResult, error) {
	sources, err := o.collector.ListActive(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list active sources: %w", err)
	}
	return o.syncSources(ctx, sources)
}

// SyncForLocations syncs active sources located in one of the "City, ST" locations.
// Matching is exact on the normalized city and state.
func (o *Orchestrator) SyncForLocations(ctx context.Context, locations []string) (SyncResult, error) {
	if len(locations) == 0 {
		return SyncResult{}, fmt.Errorf("at least one location is required: %w", domain.ErrInvalidInput)
	}
	wanted := map[string]bool{}
	for _, loc := range locations {
		city, state, ok := splitLocation(loc)
		if !ok {
			return SyncResult{}, fmt.Errorf("location %q is not in \"City, ST\" form: %w", loc, domain.ErrInvalidInput)
		}
		wanted[o.locationKey(city, state)] = true
	}

	sources, err := o.collector.ListActive(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list active sources: %w", err)
	}
	matched := make([]domain.CalendarSource, 0, len(sources))
	for _, s := range sources {
		if wanted[o.locationKey(s.City, s.State)] {
			matched = append(matched, s)
		}
	}
	log.Printf("[INFO] %d of %d active sources match %d locations", len(matched), len(sources), len(wanted))
	return o.syncSources(ctx, matched)
}

// syncSources runs the collect and dedup loop. The key snapshot is taken once, keys inserted during
// the pass are added to it and the store's uniqueness check covers the rest.
func (o *Orchestrator) syncSources(ctx context.Context, sources []domain.CalendarSource) (SyncResult, error) {
	res := SyncResult{Sources: len(sources), Details: make([]SourceSync, 0, len(sources))}
	if len(sources) == 0 {
		return res, nil
	}
	seen, err := o.events.GetDedupKeys(ctx)
	if err != nil {
		return res, fmt.Errorf("load event keys: %w", err)
	}
	if seen == nil {
		seen = map[domain.DedupKey]bool{}
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("sync interrupted: %w", err)
		}
		st := o.syncSource(ctx, src, seen)
		res.Persisted += st.Persisted
		res.Duplicates += st.Duplicates
		if st.State == StateFailed {
			res.Failed++
		}
		res.Details = append(res.Details, st)
	}
	log.Printf("[INFO] sync completed: %d sources, %d new events, %d duplicates, %d failed",
		res.Sources, res.Persisted, res.Duplicates, res.Failed)
	return res, nil
}

// syncSource never returns an error, failures stay in the source report
func (o *Orchestrator) syncSource(ctx context.Context, src domain.CalendarSource, seen map[domain.DedupKey]bool) SourceSync {
	st := SourceSync{SourceID: src.ID, Name: src.Name, State: StatePending}

	st.State = StateCollecting
	events, err := o.collector.Collect(ctx, src)
	if err != nil {
		log.Printf("[WARN] sync of %s failed: %v", src.Name, err)
		st.State, st.Error = StateFailed, err.Error()
		return st
	}
	st.Collected = len(events)

	for i := range events {
		ev := events[i]
		key := ev.Key()
		if seen[key] {
			st.Duplicates++
			continue
		}
		err := o.events.CreateEvent(ctx, &ev)
		switch {
		case errors.Is(err, domain.ErrDuplicateEvent):
			st.Duplicates++
		case err != nil:
			log.Printf("[WARN] failed to store event %q from %s: %v", ev.Title, src.Name, err)
			st.State, st.Error = StateFailed, fmt.Sprintf("store event: %v", err)
			return st
		default:
			st.Persisted++
		}
		seen[key] = true
	}

	if err := o.collector.MarkSynced(ctx, src.ID, o.now()); err != nil {
		log.Printf("[WARN] %v", err)
	}
	st.State = StatePersisted
	log.Printf("[DEBUG] synced %s: %d collected, %d new, %d duplicates", src.Name, st.Collected, st.Persisted, st.Duplicates)
	return st
}

// DiscoverAndOnboard discovers feeds for the city, registers new ones and collects from them right away.
// Candidates already registered are reported as exists.
func (o *Orchestrator) DiscoverAndOnboard(ctx context.Context, city, state string) (OnboardResult, error) {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(state) == "" {
		return OnboardResult{}, fmt.Errorf("city and state are required: %w", domain.ErrInvalidInput)
	}
	candidates, err := o.discoverer.DiscoverForLocation(ctx, city, state)
	if err != nil {
		return OnboardResult{}, fmt.Errorf("discover feeds for %s, %s: %w", city, state, err)
	}

	res := OnboardResult{Location: strings.TrimSpace(city) + ", " + strings.TrimSpace(state), Discovered: len(candidates),
		Sources: make([]OnboardedSource, 0, len(candidates))}
	if len(candidates) > 0 && candidates[0].Source.City != "" {
		res.Location = candidates[0].Source.Location()
	}

	var seen map[domain.DedupKey]bool
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("onboarding interrupted: %w", err)
		}
		rep := OnboardedSource{Source: c.Source, Confidence: c.Confidence}
		stored, added, err := o.collector.AddSource(ctx, c.Source)
		switch {
		case err != nil:
			rep.Outcome, rep.Error = OutcomeFailed, err.Error()
			res.Failed++
		case !added:
			rep.Source, rep.Outcome = stored, OutcomeExists
			res.Exists++
		default:
			rep.Source, rep.Outcome = stored, OutcomeAdded
			res.Added++
			if seen == nil {
				if seen, err = o.events.GetDedupKeys(ctx); err != nil {
					log.Printf("[WARN] can't load event keys, relying on store uniqueness: %v", err)
				}
				if seen == nil {
					seen = map[domain.DedupKey]bool{}
				}
			}
			st := o.syncSource(ctx, stored, seen)
			rep.Events = st.Persisted
			rep.Error = st.Error
			res.Events += st.Persisted
		}
		res.Sources = append(res.Sources, rep)
	}
	log.Printf("[INFO] onboarded %s: %d discovered, %d added, %d already registered, %d new events",
		res.Location, res.Discovered, res.Added, res.Exists, res.Events)
	return res, nil
}

// AddDiscoveredFeed registers a single source, a conflict is returned as *domain.SourceExistsError
func (o *Orchestrator) AddDiscoveredFeed(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, error) {
	stored, added, err := o.collector.AddSource(ctx, src)
	if err != nil {
		return domain.CalendarSource{}, err
	}
	if !added {
		return domain.CalendarSource{}, &domain.SourceExistsError{Existing: stored}
	}
	return stored, nil
}

// OnboardState onboards the cities of a state
func (o *Orchestrator) OnboardState(ctx context.Context, state string, opts discovery.StateOptions) (BatchOnboardResult, error) {
	cities, err := o.discoverer.CitiesForState(state, opts)
	if err != nil {
		return BatchOnboardResult{}, err
	}
	return o.OnboardCities(ctx, cities)
}

// OnboardDistrict onboards the cities of a congressional district
func (o *Orchestrator) OnboardDistrict(ctx context.Context, state string, district int) (BatchOnboardResult, error) {
	if district <= 0 {
		return BatchOnboardResult{}, fmt.Errorf("district must be positive: %w", domain.ErrInvalidInput)
	}
	cities, err := o.discoverer.CitiesForDistrict(state, district)
	if err != nil {
		return BatchOnboardResult{}, err
	}
	return o.OnboardCities(ctx, cities)
}

// OnboardRegions onboards the cities of the regions
func (o *Orchestrator) OnboardRegions(ctx context.Context, regions []discovery.Region) (BatchOnboardResult, error) {
	cities, err := o.discoverer.CitiesForRegions(regions)
	if err != nil {
		return BatchOnboardResult{}, err
	}
	return o.OnboardCities(ctx, cities)
}

// OnboardTopCities onboards the n most populous cities
func (o *Orchestrator) OnboardTopCities(ctx context.Context, n int) (BatchOnboardResult, error) {
	cities, err := o.discoverer.CitiesForTopCities(n)
	if err != nil {
		return BatchOnboardResult{}, err
	}
	return o.OnboardCities(ctx, cities)
}

// OnboardCities onboards cities one by one, a failing city is counted and skipped
func (o *Orchestrator) OnboardCities(ctx context.Context, cities []geo.City) (BatchOnboardResult, error) {
	res := BatchOnboardResult{Cities: len(cities), Results: make([]OnboardResult, 0, len(cities))}
	for _, c := range cities {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("onboarding interrupted: %w", err)
		}
		r, err := o.DiscoverAndOnboard(ctx, c.Name, c.State)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, fmt.Errorf("onboarding interrupted: %w", ctxErr)
			}
			log.Printf("[WARN] onboarding of %s failed: %v", c.Location(), err)
			res.FailedCities++
			continue
		}
		res.Discovered += r.Discovered
		res.Added += r.Added
		res.Exists += r.Exists
		res.Events += r.Events
		res.Results = append(res.Results, r)
	}
	log.Printf("[INFO] onboarded %d cities (%d failed): %d discovered, %d added, %d existing, %d new events",
		res.Cities, res.FailedCities, res.Discovered, res.Added, res.Exists, res.Events)
	return res, nil
}

// locationKey is the comparison form of a location
func (o *Orchestrator) locationKey(city, state string) string {
	if o.locations != nil {
		if c, s, ok := o.locations.Normalize(city, state); ok {
			city, state = c, s
		}
	}
	city = strings.Join(strings.Fields(city), " ")
	return strings.ToLower(city) + "|" + strings.ToLower(strings.TrimSpace(state))
}

// splitLocation splits "City, ST" on the last comma
func splitLocation(loc string) (city, state string, ok bool) {
	i := strings.LastIndex(loc, ",")
	if i < 0 {
		return "", "", false
	}
	city, state = strings.TrimSpace(loc[:i]), strings.TrimSpace(loc[i+1:])
	return city, state, city != "" && state != ""
}

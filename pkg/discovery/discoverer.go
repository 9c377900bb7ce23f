// Package discovery finds candidate calendar feeds for US locations by probing
// conventional organization websites and sniffing their pages for feeds.
// It never changes the source registry.
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/civicfeed/pkg/config"
	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/geo"
	"github.com/umputun/civicfeed/pkg/validator"
)

//go:generate moq -out mocks/website_validator.go -pkg mocks -skip-ensure -fmt goimports . WebsiteValidator

// WebsiteValidator checks that a candidate website is alive
type WebsiteValidator interface {
	Validate(ctx context.Context, url string) domain.WebsiteValidation
}

// CityCatalog resolves locations and city lists
type CityCatalog interface {
	StateCode(state string) (string, bool)
	Normalize(city, state string) (canonCity, canonState string, ok bool)
	Find(city, state string) (geo.City, bool)
	CitiesInState(state string) []geo.City
	CitiesInDistrict(state string, district int) []geo.City
	TopCities(n int) []geo.City
	ByPopulation(minPop, maxPop, limit int) []geo.City
	Suggest(query string, limit int) []geo.City
}

// Opts configures Discoverer
type Opts struct {
	Timeout              time.Duration
	MaxCandidatesPerType int
	ValidateWebsites     bool
	Scores               config.ScoreConfig
	UserAgent            string
}

// Region selects cities of a state, a congressional district of it, or an explicit city list
type Region struct {
	State    string   `json:"state"`
	District int      `json:"district,omitempty"`
	Cities   []string `json:"cities,omitempty"`
}

// StateOptions limits state-wide discovery
type StateOptions struct {
	Limit         int // max cities, largest first; 0 means all
	MinPopulation int
}

// Discoverer synthesizes organization websites for a city, probes them and scores the feeds found
type Discoverer struct {
	catalog   CityCatalog
	validator WebsiteValidator
	fetcher   *content.Fetcher
	opts      Opts
	sites     func(city, state string, perType int) []site
	now       func() time.Time
}

// New makes a discoverer. Validator may be nil, then websites are not validated.
func New(catalog CityCatalog, v WebsiteValidator, opts Opts) *Discoverer {
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxCandidatesPerType == 0 {
		opts.MaxCandidatesPerType = 4
	}
	if opts.Scores == (config.ScoreConfig{}) {
		opts.Scores = config.Default().Discovery.Scores
	}
	return &Discoverer{
		catalog:   catalog,
		validator: v,
		fetcher:   content.NewFetcher(content.FetcherOpts{Timeout: opts.Timeout, MaxRedirects: 5, UserAgent: opts.UserAgent}),
		opts:      opts,
		sites:     candidateSites,
		now:       time.Now,
	}
}

// DiscoverForLocation probes the conventional websites of a city and returns feed candidates
// sorted by confidence, one per feed URL
func (d *Discoverer) DiscoverForLocation(ctx context.Context, city, state string) ([]domain.DiscoveredFeedCandidate, error) {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	if city == "" || state == "" {
		return nil, fmt.Errorf("city and state are required: %w", domain.ErrInvalidInput)
	}
	canonCity, code, ok := d.catalog.Normalize(city, state)
	if !ok {
		return nil, fmt.Errorf("unknown state %q: %w", state, domain.ErrInvalidInput)
	}

	var res []domain.DiscoveredFeedCandidate
	for _, s := range d.sites(canonCity, code, d.opts.MaxCandidatesPerType) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discover for %s, %s: %w", canonCity, code, err)
		}
		res = append(res, d.probe(ctx, s, canonCity, code)...)
	}

	res = dedupCandidates(res)
	log.Printf("[INFO] discovered %d feed candidates for %s, %s", len(res), canonCity, code)
	return res, nil
}

// probe fetches one website and turns its feed signals into candidates
func (d *Discoverer) probe(ctx context.Context, s site, city, state string) []domain.DiscoveredFeedCandidate {
	page, err := d.fetcher.Get(ctx, s.url)
	if err != nil {
		log.Printf("[DEBUG] probe %s: %v", s.url, err)
		return nil
	}
	if page.StatusCode >= 400 {
		log.Printf("[DEBUG] probe %s: status %d", s.url, page.StatusCode)
		return nil
	}

	signals := sniff(page.Body, page.FinalURL)
	if len(signals) == 0 && page.StatusCode < 300 && len(page.Body) > 0 {
		if guess := heuristicGuess(page.Body, page.FinalURL); guess.url != "" {
			signals = append(signals, guess)
		}
	}
	if len(signals) == 0 {
		return nil
	}

	host := content.Hostname(page.FinalURL)
	var res []domain.DiscoveredFeedCandidate
	for _, sc := range scoreSignals(d.opts.Scores, signals, validator.IsGovernmentHost(host)) {
		if sc.confidence < d.opts.Scores.MinConfidence {
			continue
		}
		res = append(res, domain.DiscoveredFeedCandidate{
			Source: domain.CalendarSource{
				Name:       feedName(s.name, sc.url, host),
				City:       city,
				State:      state,
				Type:       s.orgType,
				FeedURL:    sc.url,
				WebsiteURL: websiteRoot(page.FinalURL),
				FeedFormat: sc.format,
				Active:     true,
			},
			Confidence:  sc.confidence,
			LastChecked: d.now(),
			Signals:     signalNames(sc.kinds),
		})
	}
	if len(res) == 0 {
		return nil
	}

	if d.validator != nil && d.opts.ValidateWebsites {
		if v := d.validator.Validate(ctx, page.FinalURL); !v.IsValid {
			log.Printf("[INFO] dropped %d candidates of %s, website %s: %s", len(res), page.FinalURL, v.Status, v.Error)
			return nil
		}
	}
	return res
}

// DiscoverCities runs discovery for every city in turn. Per-city failures are logged and skipped,
// candidates are de-duplicated by feed URL over the whole batch.
func (d *Discoverer) DiscoverCities(ctx context.Context, cities []geo.City) ([]domain.DiscoveredFeedCandidate, error) {
	var all []domain.DiscoveredFeedCandidate
	failed := 0
	for _, c := range cities {
		found, err := d.DiscoverForLocation(ctx, c.Name, c.State)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return dedupCandidates(all), fmt.Errorf("discovery interrupted: %w", ctxErr)
			}
			log.Printf("[WARN] discovery failed for %s: %v", c.Location(), err)
			failed++
			continue
		}
		all = append(all, found...)
	}
	res := dedupCandidates(all)
	log.Printf("[INFO] discovered %d feed candidates in %d cities, %d failed", len(res), len(cities), failed)
	return res, nil
}

// DiscoverForState runs discovery over the cities of a state
func (d *Discoverer) DiscoverForState(ctx context.Context, state string, opts StateOptions) ([]domain.DiscoveredFeedCandidate, error) {
	cities, err := d.CitiesForState(state, opts)
	if err != nil {
		return nil, err
	}
	return d.DiscoverCities(ctx, cities)
}

// DiscoverForRegions runs discovery over the cities of the regions
func (d *Discoverer) DiscoverForRegions(ctx context.Context, regions []Region) ([]domain.DiscoveredFeedCandidate, error) {
	cities, err := d.CitiesForRegions(regions)
	if err != nil {
		return nil, err
	}
	return d.DiscoverCities(ctx, cities)
}

// DiscoverForTopCities runs discovery over the n most populous cities
func (d *Discoverer) DiscoverForTopCities(ctx context.Context, n int) ([]domain.DiscoveredFeedCandidate, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of cities must be positive: %w", domain.ErrInvalidInput)
	}
	return d.DiscoverCities(ctx, d.catalog.TopCities(n))
}

// DiscoverByPopulation runs discovery over cities with population in [minPop, maxPop]
func (d *Discoverer) DiscoverByPopulation(ctx context.Context, minPop, maxPop, limit int) ([]domain.DiscoveredFeedCandidate, error) {
	cities, err := d.CitiesByPopulation(minPop, maxPop, limit)
	if err != nil {
		return nil, err
	}
	return d.DiscoverCities(ctx, cities)
}

// CitySuggestions looks up cities by name prefix or substring
func (d *Discoverer) CitySuggestions(query string, limit int) []geo.City {
	return d.catalog.Suggest(query, limit)
}

// CitiesForState lists cities of the state, largest first, filtered by options
func (d *Discoverer) CitiesForState(state string, opts StateOptions) ([]geo.City, error) {
	code, ok := d.catalog.StateCode(state)
	if !ok {
		return nil, fmt.Errorf("unknown state %q: %w", state, domain.ErrInvalidInput)
	}
	var res []geo.City
	for _, c := range d.catalog.CitiesInState(code) {
		if c.Population < opts.MinPopulation {
			continue
		}
		res = append(res, c)
		if opts.Limit > 0 && len(res) >= opts.Limit {
			break
		}
	}
	return res, nil
}

// CitiesForDistrict lists cities of a congressional district
func (d *Discoverer) CitiesForDistrict(state string, district int) ([]geo.City, error) {
	return d.CitiesForRegions([]Region{{State: state, District: district}})
}

// CitiesForRegions resolves regions to a city list without repeats. A region with explicit cities
// uses them, otherwise its district, otherwise the whole state. Cities missing from the catalog
// are kept with unknown population.
func (d *Discoverer) CitiesForRegions(regions []Region) ([]geo.City, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("at least one region is required: %w", domain.ErrInvalidInput)
	}
	var res []geo.City
	seen := map[string]bool{}
	add := func(c geo.City) {
		if key := strings.ToLower(c.Location()); !seen[key] {
			seen[key] = true
			res = append(res, c)
		}
	}
	for _, r := range regions {
		code, ok := d.catalog.StateCode(r.State)
		if !ok {
			return nil, fmt.Errorf("unknown state %q: %w", r.State, domain.ErrInvalidInput)
		}
		switch {
		case len(r.Cities) > 0:
			for _, name := range r.Cities {
				if c, found := d.catalog.Find(name, code); found {
					add(c)
					continue
				}
				if name = strings.TrimSpace(name); name != "" {
					add(geo.City{Name: name, State: code})
				}
			}
		case r.District > 0:
			for _, c := range d.catalog.CitiesInDistrict(code, r.District) {
				add(c)
			}
		default:
			for _, c := range d.catalog.CitiesInState(code) {
				add(c)
			}
		}
	}
	return res, nil
}

// CitiesForTopCities lists the n most populous cities
func (d *Discoverer) CitiesForTopCities(n int) ([]geo.City, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of cities must be positive: %w", domain.ErrInvalidInput)
	}
	return d.catalog.TopCities(n), nil
}

// CitiesByPopulation lists cities of a population tier, maxPop <= 0 means no upper bound
func (d *Discoverer) CitiesByPopulation(minPop, maxPop, limit int) ([]geo.City, error) {
	if minPop < 0 || (maxPop > 0 && maxPop < minPop) {
		return nil, fmt.Errorf("invalid population range %d-%d: %w", minPop, maxPop, domain.ErrInvalidInput)
	}
	return d.catalog.ByPopulation(minPop, maxPop, limit), nil
}

// dedupCandidates keeps the most confident candidate per feed URL, sorted by confidence
func dedupCandidates(candidates []domain.DiscoveredFeedCandidate) []domain.DiscoveredFeedCandidate {
	res := make([]domain.DiscoveredFeedCandidate, 0, len(candidates))
	index := map[string]int{}
	for _, c := range candidates {
		key := feedKey(c.Source.FeedURL)
		if i, ok := index[key]; ok {
			if c.Confidence > res[i].Confidence {
				res[i] = c
			}
			continue
		}
		index[key] = len(res)
		res = append(res, c)
	}
	slices.SortStableFunc(res, func(a, b domain.DiscoveredFeedCandidate) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})
	return res
}

// feedKey compares feed URLs ignoring scheme differences, host case and a trailing slash
func feedKey(raw string) string {
	u, err := url.Parse(content.NormalizeURL(raw))
	if err != nil {
		return raw
	}
	return strings.ToLower(u.Host) + strings.TrimSuffix(u.RequestURI(), "/")
}

// feedName labels a candidate with its feed path, so several feeds of one site
// stay distinct under the registry's (name, city, state) identity
func feedName(orgName, feedURL, siteHost string) string {
	u, err := url.Parse(content.NormalizeURL(feedURL))
	if err != nil || u.Host == "" {
		return orgName
	}
	label := strings.Trim(u.Path, "/")
	if host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."); host != strings.TrimPrefix(siteHost, "www.") {
		label = strings.TrimSuffix(host+"/"+label, "/")
	}
	if label == "" {
		return orgName
	}
	return orgName + " (" + label + ")"
}

// websiteRoot is the scheme and host of a page URL
func websiteRoot(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Scheme + "://" + u.Host
}

func signalNames(kinds []SignalKind) []string {
	res := make([]string, len(kinds))
	for i, k := range kinds {
		res[i] = string(k)
	}
	return res
}

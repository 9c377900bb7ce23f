package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/civicfeed/pkg/discovery"
	"github.com/umputun/civicfeed/pkg/domain"
)

const defaultRSSLimit = 100

// discoveryResponse is the wire shape of discovery results
type discoveryResponse struct {
	Location        string                           `json:"location"`
	DiscoveredFeeds []domain.DiscoveredFeedCandidate `json:"discoveredFeeds"`
	Count           int                              `json:"count"`
	Timestamp       time.Time                        `json:"timestamp"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listSourcesHandler lists sources, optionally filtered by state, type and active flag
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SourceFilter{State: q.Get("state"), Type: domain.OrgType(q.Get("type")), ActiveOnly: q.Get("active") == "true"}
	if filter.Type != "" && !filter.Type.Valid() {
		renderError(w, r, fmt.Errorf("unknown organization type %q", filter.Type), http.StatusBadRequest)
		return
	}
	sources, err := s.sources.ListFiltered(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, sources)
}

// addSourceHandler registers a source, a duplicate gets 409 with the registered source
func (s *Server) addSourceHandler(w http.ResponseWriter, r *http.Request) {
	var src domain.CalendarSource
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	src.ID = ""
	stored, err := s.orchestrator.AddDiscoveredFeed(r.Context(), src)
	if err != nil {
		var exists *domain.SourceExistsError
		if errors.As(err, &exists) {
			renderJSON(w, r, http.StatusConflict, map[string]any{"error": err.Error(), "existing": exists.Existing})
			return
		}
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, stored)
}

// toggleSourceHandler flips the active flag of a source
func (s *Server) toggleSourceHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	active, err := s.sources.ToggleSource(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "isActive": active})
}

// reprioritizeHandler regroups sources by website and reports the new order
func (s *Server) reprioritizeHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := s.sources.ReprioritizeAllFeeds(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to reprioritize feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"groups": groups, "count": len(groups)})
}

// syncAllHandler runs a sync pass over all active sources
func (s *Server) syncAllHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.orchestrator.SyncAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] sync failed: %v", err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// syncLocationsHandler syncs sources of the requested "City, ST" locations
func (s *Server) syncLocationsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locations []string `json:"locations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.SyncForLocations(r.Context(), req.Locations)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// discoverHandler discovers feeds for ?city=&state=
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	city, state := r.URL.Query().Get("city"), r.URL.Query().Get("state")
	found, err := s.discoverer.DiscoverForLocation(r.Context(), city, state)
	s.renderDiscovery(w, r, strings.TrimSpace(city)+", "+strings.TrimSpace(state), found, err)
}

// discoverStateHandler discovers feeds over the cities of a state
func (s *Server) discoverStateHandler(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	minPop, err := intParam(r, "minPopulation", 0)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	found, err := s.discoverer.DiscoverForState(r.Context(), state, discovery.StateOptions{Limit: limit, MinPopulation: minPop})
	s.renderDiscovery(w, r, state, found, err)
}

// discoverRegionsHandler discovers feeds over the cities of the posted regions
func (s *Server) discoverRegionsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Regions []discovery.Region `json:"regions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	found, err := s.discoverer.DiscoverForRegions(r.Context(), req.Regions)
	s.renderDiscovery(w, r, regionsLabel(req.Regions), found, err)
}

// discoverTopCitiesHandler discovers feeds for the ?n= most populous cities
func (s *Server) discoverTopCitiesHandler(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", 10)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	found, err := s.discoverer.DiscoverForTopCities(r.Context(), n)
	s.renderDiscovery(w, r, fmt.Sprintf("top %d cities", n), found, err)
}

// discoverPopulationHandler discovers feeds for cities with population in [?min=, ?max=]
func (s *Server) discoverPopulationHandler(w http.ResponseWriter, r *http.Request) {
	var minPop, maxPop, limit int
	var err error
	for name, dst := range map[string]*int{"min": &minPop, "max": &maxPop, "limit": &limit} {
		if *dst, err = intParam(r, name, 0); err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
	}
	found, err := s.discoverer.DiscoverByPopulation(r.Context(), minPop, maxPop, limit)
	s.renderDiscovery(w, r, fmt.Sprintf("population %d-%d", minPop, maxPop), found, err)
}

func (s *Server) renderDiscovery(w http.ResponseWriter, r *http.Request, location string, found []domain.DiscoveredFeedCandidate, err error) {
	if err != nil {
		log.Printf("[WARN] discovery for %s failed: %v", location, err)
		renderError(w, r, err, errorCode(err))
		return
	}
	if found == nil {
		found = []domain.DiscoveredFeedCandidate{}
	}
	renderJSON(w, r, http.StatusOK, discoveryResponse{Location: location, DiscoveredFeeds: found, Count: len(found),
		Timestamp: time.Now().UTC()})
}

// onboardHandler discovers, registers and collects feeds for one city
func (s *Server) onboardHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		City  string `json:"city"`
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.DiscoverAndOnboard(r.Context(), req.City, req.State)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// onboardStateHandler onboards the cities of a state
func (s *Server) onboardStateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State         string `json:"state"`
		Limit         int    `json:"limit"`
		MinPopulation int    `json:"minPopulation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.OnboardState(r.Context(), req.State,
		discovery.StateOptions{Limit: req.Limit, MinPopulation: req.MinPopulation})
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// onboardDistrictHandler onboards the cities of a congressional district
func (s *Server) onboardDistrictHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State    string `json:"state"`
		District int    `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.OnboardDistrict(r.Context(), req.State, req.District)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// onboardRegionsHandler onboards the cities of the posted regions
func (s *Server) onboardRegionsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Regions []discovery.Region `json:"regions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.OnboardRegions(r.Context(), req.Regions)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// onboardTopCitiesHandler onboards the n most populous cities
func (s *Server) onboardTopCitiesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		N int `json:"n"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	res, err := s.orchestrator.OnboardTopCities(r.Context(), req.N)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// validateHandler checks a single website, ?url=
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, s.validator.Validate(r.Context(), url))
}

// validateMultipleHandler checks posted websites, results keyed by input url
func (s *Server) validateMultipleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.URLs) == 0 {
		renderError(w, r, errors.New("at least one url is required"), http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, s.validator.ValidateMultiple(r.Context(), req.URLs))
}

// citySuggestHandler returns catalog cities matching ?q=
func (s *Server) citySuggestHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 10)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	cities := s.discoverer.CitySuggestions(r.URL.Query().Get("q"), limit)
	if cities == nil {
		renderJSON(w, r, http.StatusOK, []any{})
		return
	}
	renderJSON(w, r, http.StatusOK, cities)
}

// listEventsHandler lists stored events.
// Query: category, source, q, location (repeatable), from, to (YYYY-MM-DD or RFC3339), free, limit.
func (s *Server) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Category:  domain.Category(q.Get("category")),
		SourceID:  q.Get("source"),
		Search:    q.Get("q"),
		Locations: q["location"],
		FreeOnly:  q.Get("free") == "true",
	}
	if filter.Category != "" && !filter.Category.Valid() {
		renderError(w, r, fmt.Errorf("unknown category %q", filter.Category), http.StatusBadRequest)
		return
	}
	var err error
	if filter.From, err = timeParam(r, "from"); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.To, err = timeParam(r, "to"); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if filter.Limit, err = intParam(r, "limit", 100); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	events, err := s.events.GetFilteredEvents(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get events: %v", err)
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"events": events, "count": len(events)})
}

// getEventHandler returns one event by id
func (s *Server) getEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid event ID"), http.StatusBadRequest)
		return
	}
	ev, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorCode(err))
		return
	}
	renderJSON(w, r, http.StatusOK, ev)
}

// intParam reads a non-negative integer query parameter
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

// timeParam reads a date (YYYY-MM-DD, UTC midnight) or RFC3339 query parameter
func timeParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q", name, v)
	}
	return t, nil
}

func regionsLabel(regions []discovery.Region) string {
	parts := make([]string, 0, len(regions))
	for _, r := range regions {
		label := r.State
		if r.District > 0 {
			label += "-" + strconv.Itoa(r.District)
		}
		if len(r.Cities) > 0 {
			label += " (" + strings.Join(r.Cities, ", ") + ")"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "; ")
}

// rssHandler serves upcoming events as RSS.
// Supports /rss/{category} and /rss?category=..., plus repeatable ?location= filters.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.PathValue("category"))
	if category == "" {
		category = domain.Category(r.URL.Query().Get("category"))
	}
	if category != "" && !category.Valid() {
		http.Error(w, fmt.Sprintf("unknown category %q", category), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	filter := domain.EventFilter{
		Category:  category,
		Locations: r.URL.Query()["location"],
		From:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Limit:     defaultRSSLimit,
	}
	events, err := s.events.GetFilteredEvents(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get events for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.GenerateRSS(events, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports active sources as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sources.ListFiltered(r.Context(), domain.SourceFilter{ActiveOnly: true})
	if err != nil {
		log.Printf("[ERROR] failed to list sources for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := s.generator.GenerateOPML(sources)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="civicfeed-sources.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

// Package server exposes sources, discovery, onboarding, sync, validation and events over a JSON API
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/civicfeed/pkg/discovery"
	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/feed"
	"github.com/umputun/civicfeed/pkg/geo"
	"github.com/umputun/civicfeed/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceService
//go:generate moq -out mocks/orchestrator.go -pkg mocks -skip-ensure -fmt goimports . Orchestrator
//go:generate moq -out mocks/discoverer.go -pkg mocks -skip-ensure -fmt goimports . Discoverer
//go:generate moq -out mocks/validator.go -pkg mocks -skip-ensure -fmt goimports . Validator
//go:generate moq -out mocks/events.go -pkg mocks -skip-ensure -fmt goimports . EventStore

// Server represents HTTP server instance
type Server struct {
	config       ConfigProvider
	sources      SourceService
	orchestrator Orchestrator
	discoverer   Discoverer
	validator    Validator
	events       EventStore
	generator    *feed.Generator
	version      string
	debug        bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// SourceService reads and updates the source registry
type SourceService interface {
	ListFiltered(ctx context.Context, filter domain.SourceFilter) ([]domain.CalendarSource, error)
	ToggleSource(ctx context.Context, id string) (bool, error)
	ReprioritizeAllFeeds(ctx context.Context) ([]feed.FeedGroup, error)
}

// Orchestrator runs sync and onboarding passes
type Orchestrator interface {
	SyncAll(ctx context.Context) (scheduler.SyncResult, error)
	SyncForLocations(ctx context.Context, locations []string) (scheduler.SyncResult, error)
	DiscoverAndOnboard(ctx context.Context, city, state string) (scheduler.OnboardResult, error)
	AddDiscoveredFeed(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, error)
	OnboardState(ctx context.Context, state string, opts discovery.StateOptions) (scheduler.BatchOnboardResult, error)
	OnboardDistrict(ctx context.Context, state string, district int) (scheduler.BatchOnboardResult, error)
	OnboardRegions(ctx context.Context, regions []discovery.Region) (scheduler.BatchOnboardResult, error)
	OnboardTopCities(ctx context.Context, n int) (scheduler.BatchOnboardResult, error)
}

// Discoverer finds feed candidates without registering them
type Discoverer interface {
	DiscoverForLocation(ctx context.Context, city, state string) ([]domain.DiscoveredFeedCandidate, error)
	DiscoverForState(ctx context.Context, state string, opts discovery.StateOptions) ([]domain.DiscoveredFeedCandidate, error)
	DiscoverForRegions(ctx context.Context, regions []discovery.Region) ([]domain.DiscoveredFeedCandidate, error)
	DiscoverForTopCities(ctx context.Context, n int) ([]domain.DiscoveredFeedCandidate, error)
	DiscoverByPopulation(ctx context.Context, minPop, maxPop, limit int) ([]domain.DiscoveredFeedCandidate, error)
	CitySuggestions(query string, limit int) []geo.City
}

// Validator checks websites
type Validator interface {
	Validate(ctx context.Context, url string) domain.WebsiteValidation
	ValidateMultiple(ctx context.Context, urls []string) map[string]domain.WebsiteValidation
}

// EventStore reads stored events
type EventStore interface {
	GetFilteredEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}

// Params holds server dependencies
type Params struct {
	Config       ConfigProvider
	Sources      SourceService
	Orchestrator Orchestrator
	Discoverer   Discoverer
	Validator    Validator
	Events       EventStore
	BaseURL      string // public URL used for links in generated feeds
	Version      string
	Debug        bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:       p.Config,
		sources:      p.Sources,
		orchestrator: p.Orchestrator,
		discoverer:   p.Discoverer,
		validator:    p.Validator,
		events:       p.Events,
		generator:    feed.NewGenerator(p.BaseURL),
		version:      p.Version,
		debug:        p.Debug,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("civicfeed", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(log.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{category}", s.rssHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.addSourceHandler)
		r.HandleFunc("POST /sources/{id}/toggle", s.toggleSourceHandler)
		r.HandleFunc("POST /sources/reprioritize", s.reprioritizeHandler)
		r.HandleFunc("GET /sources/opml", s.opmlHandler)

		r.HandleFunc("POST /sync", s.syncAllHandler)
		r.HandleFunc("POST /sync/locations", s.syncLocationsHandler)

		r.HandleFunc("GET /discover", s.discoverHandler)
		r.HandleFunc("GET /discover/state/{state}", s.discoverStateHandler)
		r.HandleFunc("POST /discover/regions", s.discoverRegionsHandler)
		r.HandleFunc("GET /discover/top-cities", s.discoverTopCitiesHandler)
		r.HandleFunc("GET /discover/population", s.discoverPopulationHandler)

		r.HandleFunc("POST /onboard", s.onboardHandler)
		r.HandleFunc("POST /onboard/state", s.onboardStateHandler)
		r.HandleFunc("POST /onboard/district", s.onboardDistrictHandler)
		r.HandleFunc("POST /onboard/regions", s.onboardRegionsHandler)
		r.HandleFunc("POST /onboard/top-cities", s.onboardTopCitiesHandler)

		r.HandleFunc("GET /validate", s.validateHandler)
		r.HandleFunc("POST /validate", s.validateMultipleHandler)

		r.HandleFunc("GET /cities/suggest", s.citySuggestHandler)

		r.HandleFunc("GET /events", s.listEventsHandler)
		r.HandleFunc("GET /events/{id}", s.getEventHandler)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// errorCode maps domain errors to HTTP status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceExists):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

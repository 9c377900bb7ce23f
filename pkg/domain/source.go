package domain

import (
	"errors"
	"strings"
	"time"
)

// OrgType is the kind of organization publishing a calendar
type OrgType string

// organization types
const (
	OrgCity    OrgType = "city"
	OrgSchool  OrgType = "school"
	OrgChamber OrgType = "chamber"
	OrgLibrary OrgType = "library"
	OrgParks   OrgType = "parks"
)

// OrgTypes lists all organization types in discovery order
var OrgTypes = []OrgType{OrgCity, OrgSchool, OrgChamber, OrgLibrary, OrgParks}

// Valid reports whether the organization type is known
func (o OrgType) Valid() bool {
	for _, t := range OrgTypes {
		if t == o {
			return true
		}
	}
	return false
}

// FeedFormat is the wire format of a calendar feed
type FeedFormat string

// feed formats
const (
	FormatICal   FeedFormat = "ical"
	FormatRSS    FeedFormat = "rss"
	FormatWebcal FeedFormat = "webcal"
	FormatJSON   FeedFormat = "json"
	FormatHTML   FeedFormat = "html"
)

// FeedFormats lists all supported feed formats
var FeedFormats = []FeedFormat{FormatICal, FormatRSS, FormatWebcal, FormatJSON, FormatHTML}

// Valid reports whether the feed format is supported
func (f FeedFormat) Valid() bool {
	for _, v := range FeedFormats {
		if v == f {
			return true
		}
	}
	return false
}

// common errors shared between packages
var (
	ErrSourceExists   = errors.New("source already exists")
	ErrDuplicateEvent = errors.New("duplicate event")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// CalendarSource is a registered, toggle-able calendar feed
type CalendarSource struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Type       OrgType    `json:"type"`
	FeedURL    string     `json:"feedUrl"`
	WebsiteURL string     `json:"websiteUrl,omitempty"`
	FeedFormat FeedFormat `json:"feedType"`
	Active     bool       `json:"isActive"`
	LastSync   *time.Time `json:"lastSync,omitempty"`
	Priority   int        `json:"priority"`
}

// SameAs reports whether two sources describe the same feed.
// Sources match on feed URL, or on name, city and state together.
func (s CalendarSource) SameAs(other CalendarSource) bool {
	if s.FeedURL != "" && s.FeedURL == other.FeedURL {
		return true
	}
	return s.Name == other.Name && s.City == other.City && s.State == other.State
}

// Location returns "City, ST" for the source
func (s CalendarSource) Location() string {
	return s.City + ", " + s.State
}

// SourceExistsError is returned when a source conflicts with a registered one
type SourceExistsError struct {
	Existing CalendarSource
}

func (e *SourceExistsError) Error() string {
	return "source already exists: " + e.Existing.Name + " (" + e.Existing.FeedURL + ")"
}

// Unwrap makes errors.Is(err, ErrSourceExists) work
func (e *SourceExistsError) Unwrap() error {
	return ErrSourceExists
}

// DiscoveredFeedCandidate is a feed found by discovery, not yet registered
type DiscoveredFeedCandidate struct {
	Source      CalendarSource `json:"source"`
	Confidence  float64        `json:"confidence"`
	LastChecked time.Time      `json:"lastChecked"`
	Signals     []string       `json:"-"`
}

// SourceFilter selects sources from the registry
type SourceFilter struct {
	State      string
	Type       OrgType
	ActiveOnly bool
}

// Match checks the source against the filter
func (f SourceFilter) Match(s CalendarSource) bool {
	if f.State != "" && !strings.EqualFold(f.State, s.State) {
		return false
	}
	if f.Type != "" && f.Type != s.Type {
		return false
	}
	if f.ActiveOnly && !s.Active {
		return false
	}
	return true
}

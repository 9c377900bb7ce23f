package domain

import "time"

// Category is the closed event taxonomy
type Category string

// event categories
const (
	CategoryGovernment Category = "government"
	CategoryEducation  Category = "education"
	CategoryBusiness   Category = "business"
	CategoryCommunity  Category = "community"
	CategoryArts       Category = "arts"
	CategoryRecreation Category = "recreation"
	CategoryLibrary    Category = "library"
	CategoryHealth     Category = "health"
	CategoryFamily     Category = "family"
)

// Categories lists the full taxonomy
var Categories = []Category{
	CategoryGovernment, CategoryEducation, CategoryBusiness, CategoryCommunity, CategoryArts,
	CategoryRecreation, CategoryLibrary, CategoryHealth, CategoryFamily,
}

// Valid reports whether the category belongs to the taxonomy
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// DefaultCategory returns the category assumed for events of an organization type
func DefaultCategory(t OrgType) Category {
	switch t {
	case OrgCity:
		return CategoryGovernment
	case OrgSchool:
		return CategoryEducation
	case OrgChamber:
		return CategoryBusiness
	case OrgLibrary:
		return CategoryLibrary
	case OrgParks:
		return CategoryRecreation
	default:
		return CategoryCommunity
	}
}

// Event is a normalized occurrence, independent of the source format
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Attendees   int       `json:"attendees"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsFree      bool      `json:"isFree"`
	SourceID    string    `json:"source"`
	URL         string    `json:"url,omitempty"`
}

// DedupKey identifies an event for deduplication.
// Comparison is exact and case-sensitive.
type DedupKey struct {
	Title     string
	Location  string
	Organizer string
	SourceID  string
	Date      string // calendar date of start, YYYY-MM-DD
}

// Key returns the dedup key of the event
func (e Event) Key() DedupKey {
	return DedupKey{
		Title:     e.Title,
		Location:  e.Location,
		Organizer: e.Organizer,
		SourceID:  e.SourceID,
		Date:      e.StartDate.Format("2006-01-02"),
	}
}

// EventFilter represents filtering criteria for events
type EventFilter struct {
	Category  Category
	SourceID  string
	Search    string
	Locations []string
	From      time.Time
	To        time.Time
	FreeOnly  bool
	Limit     int
}

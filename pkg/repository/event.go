package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/civicfeed/pkg/domain"
)

const eventColumns = `id, title, description, category, location, organizer, start_date, end_date, start_day,
	start_time, end_time, attendees, image_url, is_free, source_id, url`

// EventRepository is the SQLite event store. Events are unique by their dedup key.
type EventRepository struct {
	db *sqlx.DB
}

// eventSQL represents an event for SQL operations
type eventSQL struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Location    string    `db:"location"`
	Organizer   string    `db:"organizer"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	StartDay    string    `db:"start_day"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	Attendees   int       `db:"attendees"`
	ImageURL    string    `db:"image_url"`
	IsFree      bool      `db:"is_free"`
	SourceID    string    `db:"source_id"`
	URL         string    `db:"url"`
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent inserts the event and sets its ID. Returns domain.ErrDuplicateEvent
// if an event with the same dedup key is stored already.
func (r *EventRepository) CreateEvent(ctx context.Context, event *domain.Event) error {
	row := toEventSQL(event)
	query := `
		INSERT INTO events (
			title, description, category, location, organizer, start_date, end_date, start_day,
			start_time, end_time, attendees, image_url, is_free, source_id, url
		) VALUES (
			:title, :description, :category, :location, :organizer, :start_date, :end_date, :start_day,
			:start_time, :end_time, :attendees, :image_url, :is_free, :source_id, :url
		)
	`
	return withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("create event %q: %w", event.Title, domain.ErrDuplicateEvent)
			}
			return fmt.Errorf("create event: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		event.ID = id
		return nil
	})
}

// GetEvent retrieves an event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	var row eventSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return row.toDomain(), nil
}

// GetAllEvents returns all events ordered by start
func (r *EventRepository) GetAllEvents(ctx context.Context) ([]domain.Event, error) {
	return r.GetFilteredEvents(ctx, domain.EventFilter{})
}

// GetFilteredEvents returns events matching the filter ordered by start.
// Locations match as case-insensitive substrings of the event location, any of them.
func (r *EventRepository) GetFilteredEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var where []string
	var args []any

	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.SourceID != "" {
		where = append(where, "source_id = ?")
		args = append(args, filter.SourceID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "(title LIKE ? OR description LIKE ?)")
		args = append(args, "%"+s+"%", "%"+s+"%")
	}
	if len(filter.Locations) > 0 {
		var or []string
		for _, loc := range filter.Locations {
			or = append(or, "location LIKE ?")
			args = append(args, "%"+strings.TrimSpace(loc)+"%")
		}
		where = append(where, "("+strings.Join(or, " OR ")+")")
	}
	if !filter.From.IsZero() {
		where = append(where, "start_date >= ?")
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, filter.To.UTC())
	}
	if filter.FreeOnly {
		where = append(where, "is_free = 1")
	}

	query := "SELECT " + eventColumns + " FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var rows []eventSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	res := make([]domain.Event, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// GetEventsByDateRange returns events starting within [from, to]
func (r *EventRepository) GetEventsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("date range end before start: %w", domain.ErrInvalidInput)
	}
	return r.GetFilteredEvents(ctx, domain.EventFilter{From: from, To: to})
}

// GetEventsByCategory returns events of the category
func (r *EventRepository) GetEventsByCategory(ctx context.Context, category domain.Category) ([]domain.Event, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q: %w", category, domain.ErrInvalidInput)
	}
	return r.GetFilteredEvents(ctx, domain.EventFilter{Category: category})
}

// UpdateEvent replaces all fields of a stored event
func (r *EventRepository) UpdateEvent(ctx context.Context, event *domain.Event) error {
	row := toEventSQL(event)
	query := `
		UPDATE events SET
			title = :title, description = :description, category = :category, location = :location,
			organizer = :organizer, start_date = :start_date, end_date = :end_date, start_day = :start_day,
			start_time = :start_time, end_time = :end_time, attendees = :attendees, image_url = :image_url,
			is_free = :is_free, source_id = :source_id, url = :url
		WHERE id = :id
	`
	return withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("update event %d: %w", event.ID, domain.ErrDuplicateEvent)
			}
			return fmt.Errorf("update event: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("event %d: %w", event.ID, domain.ErrNotFound)
		}
		return nil
	})
}

// DeleteEvent removes an event
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	return withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

// ClearAllEvents removes all events and returns how many were deleted
func (r *EventRepository) ClearAllEvents(ctx context.Context) (int64, error) {
	var deleted int64
	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM events")
		if err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get affected rows: %w", err)
		}
		return nil
	})
	return deleted, err
}

// GetDedupKeys returns the dedup keys of all stored events
func (r *EventRepository) GetDedupKeys(ctx context.Context) (map[domain.DedupKey]bool, error) {
	var rows []struct {
		Title     string `db:"title"`
		Location  string `db:"location"`
		Organizer string `db:"organizer"`
		SourceID  string `db:"source_id"`
		StartDay  string `db:"start_day"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT title, location, organizer, source_id, start_day FROM events"); err != nil {
		return nil, fmt.Errorf("get dedup keys: %w", err)
	}
	res := make(map[domain.DedupKey]bool, len(rows))
	for _, k := range rows {
		res[domain.DedupKey{Title: k.Title, Location: k.Location, Organizer: k.Organizer, SourceID: k.SourceID, Date: k.StartDay}] = true
	}
	return res, nil
}

// CountEvents returns the number of stored events
func (r *EventRepository) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM events"); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func toEventSQL(e *domain.Event) *eventSQL {
	return &eventSQL{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    string(e.Category),
		Location:    e.Location,
		Organizer:   e.Organizer,
		StartDate:   e.StartDate.UTC(),
		EndDate:     e.EndDate.UTC(),
		StartDay:    e.Key().Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Attendees:   e.Attendees,
		ImageURL:    e.ImageURL,
		IsFree:      e.IsFree,
		SourceID:    e.SourceID,
		URL:         e.URL,
	}
}

func (s *eventSQL) toDomain() *domain.Event {
	return &domain.Event{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    domain.Category(s.Category),
		Location:    s.Location,
		Organizer:   s.Organizer,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Attendees:   s.Attendees,
		ImageURL:    s.ImageURL,
		IsFree:      s.IsFree,
		SourceID:    s.SourceID,
		URL:         s.URL,
	}
}

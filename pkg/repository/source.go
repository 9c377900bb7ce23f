package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/civicfeed/pkg/domain"
)

const sourceColumns = `id, name, city, state, org_type, feed_url, website_url, feed_format, active, last_sync, priority`

// SourceRepository is the SQLite source registry, safe for concurrent use
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a calendar source for SQL operations
type sourceSQL struct {
	ID         string       `db:"id"`
	Name       string       `db:"name"`
	City       string       `db:"city"`
	State      string       `db:"state"`
	OrgType    string       `db:"org_type"`
	FeedURL    string       `db:"feed_url"`
	WebsiteURL string       `db:"website_url"`
	FeedFormat string       `db:"feed_format"`
	Active     bool         `db:"active"`
	LastSync   sql.NullTime `db:"last_sync"`
	Priority   int          `db:"priority"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// List returns sources matching the filter, preferred (lowest priority) first, then in registration order
func (r *SourceRepository) List(ctx context.Context, filter domain.SourceFilter) ([]domain.CalendarSource, error) {
	var where []string
	var args []any
	if filter.State != "" {
		where = append(where, "state = ? COLLATE NOCASE")
		args = append(args, filter.State)
	}
	if filter.Type != "" {
		where = append(where, "org_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.ActiveOnly {
		where = append(where, "active = 1")
	}

	query := "SELECT " + sourceColumns + " FROM sources"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY priority, rowid"

	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	res := make([]domain.CalendarSource, len(rows))
	for i := range rows {
		res[i] = rows[i].toDomain()
	}
	return res, nil
}

// Get returns the source by id
func (r *SourceRepository) Get(ctx context.Context, id string) (domain.CalendarSource, error) {
	var row sourceSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CalendarSource{}, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.CalendarSource{}, fmt.Errorf("get source: %w", err)
	}
	return row.toDomain(), nil
}

// Add stores the source. The unique constraints on feed_url and (name, city, state)
// decide duplicates, in which case the registered source is returned with added=false.
func (r *SourceRepository) Add(ctx context.Context, src domain.CalendarSource) (domain.CalendarSource, bool, error) {
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	row := toSourceSQL(src)
	query := `
		INSERT INTO sources (id, name, city, state, org_type, feed_url, website_url, feed_format, active, last_sync, priority)
		VALUES (:id, :name, :city, :state, :org_type, :feed_url, :website_url, :feed_format, :active, :last_sync, :priority)
	`
	var duplicate bool
	err := withLockRetry(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			if isUniqueError(err) {
				duplicate = true
				return nil
			}
			return fmt.Errorf("add source: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.CalendarSource{}, false, err
	}
	if !duplicate {
		return src, true, nil
	}

	var existing sourceSQL
	err = r.db.GetContext(ctx, &existing, "SELECT "+sourceColumns+` FROM sources
		WHERE feed_url = ? OR (name = ? AND city = ? AND state = ?) ORDER BY rowid LIMIT 1`,
		src.FeedURL, src.Name, src.City, src.State)
	if err != nil {
		return domain.CalendarSource{}, false, fmt.Errorf("get existing source: %w", err)
	}
	return existing.toDomain(), false, nil
}

// Toggle flips the active flag and returns the new value
func (r *SourceRepository) Toggle(ctx context.Context, id string) (bool, error) {
	var active bool
	err := withLockRetry(ctx, func() error {
		err := r.db.GetContext(ctx, &active, "UPDATE sources SET active = NOT active WHERE id = ? RETURNING active", id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("toggle source: %w", err)
		}
		return nil
	})
	return active, err
}

// UpdateLastSync sets the last sync time
func (r *SourceRepository) UpdateLastSync(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, "UPDATE sources SET last_sync = ? WHERE id = ?", at.UTC(), id)
}

// SetPriority sets the preference rank of the source
func (r *SourceRepository) SetPriority(ctx context.Context, id string, priority int) error {
	return r.update(ctx, id, "UPDATE sources SET priority = ? WHERE id = ?", priority, id)
}

func (r *SourceRepository) update(ctx context.Context, id, query string, args ...any) error {
	return withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update source: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func toSourceSQL(s domain.CalendarSource) *sourceSQL {
	row := &sourceSQL{
		ID:         s.ID,
		Name:       s.Name,
		City:       s.City,
		State:      s.State,
		OrgType:    string(s.Type),
		FeedURL:    s.FeedURL,
		WebsiteURL: s.WebsiteURL,
		FeedFormat: string(s.FeedFormat),
		Active:     s.Active,
		Priority:   s.Priority,
	}
	if s.LastSync != nil {
		row.LastSync = sql.NullTime{Time: s.LastSync.UTC(), Valid: true}
	}
	return row
}

func (s *sourceSQL) toDomain() domain.CalendarSource {
	src := domain.CalendarSource{
		ID:         s.ID,
		Name:       s.Name,
		City:       s.City,
		State:      s.State,
		Type:       domain.OrgType(s.OrgType),
		FeedURL:    s.FeedURL,
		WebsiteURL: s.WebsiteURL,
		FeedFormat: domain.FeedFormat(s.FeedFormat),
		Active:     s.Active,
		Priority:   s.Priority,
	}
	if s.LastSync.Valid {
		t := s.LastSync.Time
		src.LastSync = &t
	}
	return src
}

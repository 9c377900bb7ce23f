// Package registry provides the in-memory source registry
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/umputun/civicfeed/pkg/domain"
)

// Memory is a thread-safe in-memory source registry, sources are kept in insertion order
type Memory struct {
	mu      sync.RWMutex
	sources []domain.CalendarSource
}

// NewMemory makes an empty registry
func NewMemory() *Memory {
	return &Memory{}
}

// List returns copies of sources matching the filter, preferred (lowest priority) first,
// then in insertion order
func (m *Memory) List(_ context.Context, filter domain.SourceFilter) ([]domain.CalendarSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.CalendarSource, 0, len(m.sources))
	for _, s := range m.sources {
		if filter.Match(s) {
			res = append(res, copySource(s))
		}
	}
	slices.SortStableFunc(res, func(a, b domain.CalendarSource) int { return a.Priority - b.Priority })
	return res, nil
}

// Get returns the source by id
func (m *Memory) Get(_ context.Context, id string) (domain.CalendarSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.index(id)
	if i < 0 {
		return domain.CalendarSource{}, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	return copySource(m.sources[i]), nil
}

// Add appends the source if no registered one shares its feed URL or (name, city, state).
// The duplicate check and the append happen under one lock.
func (m *Memory) Add(_ context.Context, src domain.CalendarSource) (domain.CalendarSource, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sources {
		if s.SameAs(src) {
			return copySource(s), false, nil
		}
	}
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	m.sources = append(m.sources, copySource(src))
	return copySource(src), true, nil
}

// Toggle flips the active flag and returns the new value
func (m *Memory) Toggle(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return false, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	m.sources[i].Active = !m.sources[i].Active
	return m.sources[i].Active, nil
}

// UpdateLastSync sets the last sync time
func (m *Memory) UpdateLastSync(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	m.sources[i].LastSync = &at
	return nil
}

// SetPriority sets the preference rank of the source
func (m *Memory) SetPriority(_ context.Context, id string, priority int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}
	m.sources[i].Priority = priority
	return nil
}

// index must be called with the lock held
func (m *Memory) index(id string) int {
	for i, s := range m.sources {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// copySource detaches the LastSync pointer from registry state
func copySource(s domain.CalendarSource) domain.CalendarSource {
	if s.LastSync != nil {
		t := *s.LastSync
		s.LastSync = &t
	}
	return s
}

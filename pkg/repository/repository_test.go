package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/domain"
)

func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "civicfeed-test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	repos, err = NewRepositories(context.Background(), Config{DSN: "file:" + tmpFile.Name() + "?mode=rwc&_txlock=immediate"})
	require.NoError(t, err)

	cleanup = func() {
		repos.Close()
		os.Remove(tmpFile.Name())
		os.Remove(tmpFile.Name() + "-wal")
		os.Remove(tmpFile.Name() + "-shm")
	}
	return repos, cleanup
}

func TestRepositories_Integration(t *testing.T) {
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}

	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, repos.Close())
	}()
	require.NoError(t, repos.Ping(context.Background()))

	src, added, err := repos.Source.Add(context.Background(), domain.CalendarSource{Name: "City of Peoria", City: "Peoria",
		State: "IL", Type: domain.OrgCity, FeedURL: "https://peoriagov.org/cal.ics", FeedFormat: domain.FormatICal, Active: true})
	require.NoError(t, err)
	assert.True(t, added)

	ev := &domain.Event{Title: "Council", Category: domain.CategoryGovernment, SourceID: src.ID,
		StartDate: time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 6, 3, 20, 0, 0, 0, time.UTC)}
	require.NoError(t, repos.Event.CreateEvent(context.Background(), ev))
	assert.NotZero(t, ev.ID)

	count, err := repos.Event.CountEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "invalid://database/url"})
	assert.Error(t, err)
}

func TestRepositories_Close(t *testing.T) {
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	assert.NoError(t, repos.Close())
	assert.NoError(t, repos.Close())
}

func TestWithLockRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return assert.AnError
			}
			return nil
		})
		require.Error(t, err, "plain errors are not retried")
		assert.Equal(t, 1, calls)

		calls = 0
		err = withLockRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errLocked
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			return errLocked
		})
		require.Error(t, err)
		assert.Greater(t, calls, 1)
		assert.LessOrEqual(t, calls, 5)
	})
}

type lockErr struct{}

func (lockErr) Error() string { return "database is locked (5) (SQLITE_BUSY)" }

var errLocked = lockErr{}

func TestRepositories_ConcurrentWrites(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	var wg sync.WaitGroup
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := &domain.Event{Title: "Event", SourceID: "src", Category: domain.CategoryCommunity,
				StartDate: base.AddDate(0, 0, i), EndDate: base.AddDate(0, 0, i)}
			assert.NoError(t, repos.Event.CreateEvent(context.Background(), ev))
		}(i)
	}
	wg.Wait()

	count, err := repos.Event.CountEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

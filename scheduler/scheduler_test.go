package scheduler_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/scheduler"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestCatchupDueWhenNeverRun(t *testing.T) {
	c := scheduler.NewCoordinator(scheduler.NewMemoryStateStore(), 21, 0,
		scheduler.WithClock(scheduler.FixedClock{At: at(22, 0)}))

	due, b := c.CatchupDue()
	require.Nil(t, b)
	assert.True(t, due)
}

func TestCatchupDueWhenBoundaryMissed(t *testing.T) {
	store := scheduler.NewMemoryStateStore()
	// Succeeded yesterday morning; yesterday's 21:00 boundary was missed.
	require.Nil(t, store.RecordSuccess(at(9, 0).AddDate(0, 0, -1)))

	c := scheduler.NewCoordinator(store, 21, 0,
		scheduler.WithClock(scheduler.FixedClock{At: at(8, 0)}))

	due, b := c.CatchupDue()
	require.Nil(t, b)
	assert.True(t, due)
}

func TestCatchupNotDueAfterRecentRun(t *testing.T) {
	store := scheduler.NewMemoryStateStore()
	// Ran at 21:05, just after today's boundary.
	require.Nil(t, store.RecordSuccess(at(21, 5)))

	c := scheduler.NewCoordinator(store, 21, 0,
		scheduler.WithClock(scheduler.FixedClock{At: at(23, 0)}))

	due, b := c.CatchupDue()
	require.Nil(t, b)
	assert.False(t, due)
}

func TestCatchupBoundaryBeforeTodayClock(t *testing.T) {
	store := scheduler.NewMemoryStateStore()
	// Ran just after yesterday's boundary; today's has not arrived yet.
	require.Nil(t, store.RecordSuccess(at(21, 30).AddDate(0, 0, -1)))

	c := scheduler.NewCoordinator(store, 21, 0,
		scheduler.WithClock(scheduler.FixedClock{At: at(10, 0)}))

	due, b := c.CatchupDue()
	require.Nil(t, b)
	assert.False(t, due)
}

func TestMarkSuccessPersists(t *testing.T) {
	store := scheduler.NewMemoryStateStore()
	now := at(21, 1)
	c := scheduler.NewCoordinator(store, 21, 0,
		scheduler.WithClock(scheduler.FixedClock{At: now}))

	require.Nil(t, c.MarkSuccess())

	last, ok, b := store.LastSuccess()
	require.Nil(t, b)
	require.True(t, ok)
	assert.True(t, last.Equal(now))
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "last_success_iso.txt")
	store := scheduler.NewFileStateStore(path)

	_, ok, b := store.LastSuccess()
	require.Nil(t, b)
	assert.False(t, ok)

	ts := time.Date(2025, 6, 10, 21, 0, 5, 0, time.UTC)
	require.Nil(t, store.RecordSuccess(ts))

	got, ok, b := store.LastSuccess()
	require.Nil(t, b)
	require.True(t, ok)
	assert.True(t, got.Equal(ts))
}

func TestFileStateStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_success_iso.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a timestamp"), 0o644))

	store := scheduler.NewFileStateStore(path)
	_, _, b := store.LastSuccess()
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrStateUnavailable, b.FetchErrCode())
}

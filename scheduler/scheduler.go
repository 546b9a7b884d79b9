package scheduler

import (
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
)

// Clock supplies the current time. The real clock is used in production;
// tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Coordinator decides whether a catch-up reminder run is due and records
// successful runs.
type Coordinator struct {
	store  StateStore
	clock  Clock
	hour   int
	minute int
	log    *log.Log
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithClock overrides the system clock.
func WithClock(c Clock) CoordinatorOption {
	return func(co *Coordinator) { co.clock = c }
}

// WithLog attaches a logger.
func WithLog(l *log.Log) CoordinatorOption {
	return func(co *Coordinator) { co.log = l }
}

// NewCoordinator creates a coordinator around a state store and the
// configured daily boundary (hour:minute, local time).
func NewCoordinator(store StateStore, hour, minute int, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:  store,
		clock:  SystemClock{},
		hour:   hour,
		minute: minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// lastBoundary returns the most recent scheduled boundary at or before now.
func (c *Coordinator) lastBoundary(now time.Time) time.Time {
	boundary := time.Date(now.Year(), now.Month(), now.Day(), c.hour, c.minute, 0, 0, now.Location())
	if boundary.After(now) {
		boundary = boundary.AddDate(0, 0, -1)
	}
	return boundary
}

// CatchupDue reports whether a scheduled boundary has passed since the last
// successful run. A store with no record means a run is due.
func (c *Coordinator) CatchupDue() (bool, blame.Blame) {
	now := c.clock.Now()
	boundary := c.lastBoundary(now)

	last, ok, b := c.store.LastSuccess()
	if b != nil {
		return false, b
	}
	if !ok {
		if c.log != nil {
			c.log.Info("no previous successful run, catch-up due")
		}
		return true, nil
	}

	due := last.Before(boundary)
	if c.log != nil {
		c.log.Debug("catch-up check",
			log.Time("last_success", last),
			log.Time("boundary", boundary),
			log.Bool("due", due),
		)
	}
	return due, nil
}

// MarkSuccess records the current time as the last successful run.
func (c *Coordinator) MarkSuccess() blame.Blame {
	now := c.clock.Now()
	if b := c.store.RecordSuccess(now); b != nil {
		return b
	}
	if c.log != nil {
		c.log.Info("run recorded", log.Time("at", now))
	}
	return nil
}

package schedule

import (
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
)

// Option is a functional option type for configuring the Schedule.
type Option func(*Schedule)

// WithName sets the name of the scheduler.
func WithName(name string) Option {
	return func(s *Schedule) {
		s.name = name
	}
}

// WithLocation sets the timezone the daily boundary is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Schedule) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Log) Option {
	return func(s *Schedule) {
		s.log = logger
	}
}

// WithTimeSource substitutes the clock and timer, for tests.
func WithTimeSource(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(s *Schedule) {
		if now != nil {
			s.now = now
		}
		if after != nil {
			s.after = after
		}
	}
}

// Package schedule runs a processor once per day at a fixed clock time. It
// backs the long-running watch mode; one-shot runs go through the scheduler
// coordinator instead.
package schedule

import (
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
)

const DefaultName = "Schedule"

// ScheduleProcessor defines an interface for types that can be scheduled.
type ScheduleProcessor interface {
	Start()
}

// Schedule fires its processor at hour:minute every day until stopped.
type Schedule struct {
	name        string
	hour        int
	minute      int
	location    *time.Location
	processor   ScheduleProcessor
	log         *log.Log
	now         func() time.Time
	after       func(time.Duration) <-chan time.Time
	StopChannel chan struct{}
}

// NewSchedule creates a new Schedule with functional options.
func NewSchedule(processor ScheduleProcessor, hour, minute int, opts ...Option) *Schedule {
	s := &Schedule{
		StopChannel: make(chan struct{}),
		processor:   processor,
		name:        DefaultName,
		hour:        hour,
		minute:      minute,
		location:    time.Local,
		log:         log.NewBasicLogger(false),
		now:         time.Now,
		after:       time.After,
	}

	// Apply functional options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NextFiring returns the next hour:minute boundary strictly after now.
func (s *Schedule) NextFiring(now time.Time) time.Time {
	now = now.In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, s.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run starts the schedule loop in a goroutine. Each iteration sleeps until
// the next boundary, then invokes the processor once.
func (s *Schedule) Run() {
	if s.processor == nil {
		s.log.Error("schedule processor is nil")
		return
	}

	go func() {
		for {
			next := s.NextFiring(s.now())
			s.log.Info("next run scheduled",
				log.String("schedule", s.name),
				log.Time("at", next),
			)

			select {
			case <-s.after(next.Sub(s.now())):
				s.processor.Start()
			case <-s.StopChannel:
				return
			}
		}
	}()
}

// Stop gracefully shuts down the schedule.
func (s *Schedule) Stop() {
	select {
	case <-s.StopChannel: // Prevent closing twice
	default:
		close(s.StopChannel)
	}
}

// Package engine wires the data source, record building, reminder selection,
// composition, delivery, and reporting into the operations the CLI exposes.
package engine

import (
	"time"

	"github.com/abhissng/expirywatch/adapters/csvsource"
	"github.com/abhissng/expirywatch/adapters/email"
	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/config"
	"github.com/abhissng/expirywatch/record"
	"github.com/abhissng/expirywatch/report"
	"github.com/abhissng/expirywatch/result"
	"github.com/abhissng/expirywatch/rules"
	"github.com/abhissng/expirywatch/scheduler"
)

// Sender is the delivery surface the pipeline needs. email.Engine is the
// production implementation; tests script one.
type Sender interface {
	Send(msg *email.Message, recipients []string) (email.DeliveryResult, blame.Blame)
}

// ReminderOutcome is the terminal result of a reminder run.
type ReminderOutcome struct {
	Summary  rules.Summary
	Skipped  int
	Sent     bool
	Delivery email.DeliveryResult
}

// ReportOutcome is the terminal result of a report run.
type ReportOutcome struct {
	Summary rules.Summary
	Skipped int
	Path    string
}

// Engine holds the run dependencies. Everything side-effectful is injected
// so tests run against temp files and scripted dialers.
type Engine struct {
	cfg    *config.Config
	log    *log.Log
	reader *csvsource.Reader
	sender Sender
	coord  *scheduler.Coordinator
	clock  scheduler.Clock
}

// Option mutates an Engine during construction.
type Option func(*Engine)

// WithSender substitutes the delivery engine.
func WithSender(s Sender) Option {
	return func(e *Engine) { e.sender = s }
}

// WithClock overrides the system clock.
func WithClock(c scheduler.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithCoordinator attaches the run-state coordinator. Without one, successful
// runs are not recorded and catch-up is never due.
func WithCoordinator(c *scheduler.Coordinator) Option {
	return func(e *Engine) { e.coord = c }
}

// New creates the pipeline engine from a validated configuration.
func New(cfg *config.Config, logger *log.Log, opts ...Option) (*Engine, blame.Blame) {
	e := &Engine{
		cfg:    cfg,
		log:    logger,
		reader: csvsource.NewReader(logger),
		clock:  scheduler.SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.sender == nil {
		sender, b := email.NewEngine(cfg.SMTPServers,
			email.WithMaxAttempts(cfg.MaxAttemptsPerServer),
			email.WithLog(logger),
		)
		if b != nil {
			return nil, b
		}
		e.sender = sender
	}
	return e, nil
}

// load reads the data file and builds the record set for the reference date.
func (e *Engine) load(today time.Time) ([]record.DocumentRecord, []record.SkippedRow, blame.Blame) {
	rows, b := e.reader.Read(e.cfg.DataFile)
	if b != nil {
		return nil, nil, b
	}

	builder := record.NewBuilder(record.BuildParams{
		ReferenceDate: today,
		DateLayout:    e.cfg.DateFormat,
		Threshold:     e.cfg.Report.ExpiringThreshold,
		Offsets:       e.cfg.Reminder.Offsets,
	}, e.log)
	records, skipped := builder.BuildAll(rows)
	return records, skipped, nil
}

// RunReminder executes the full reminder pipeline: load, select, compose,
// deliver. An empty batch is a success with nothing sent; the run is still
// recorded so catch-up does not re-fire.
func (e *Engine) RunReminder() result.Result[ReminderOutcome] {
	today := e.clock.Now()

	records, skipped, b := e.load(today)
	if b != nil {
		return result.NewFailure[ReminderOutcome](b)
	}

	outcome := ReminderOutcome{
		Summary: rules.Summarize(records),
		Skipped: len(skipped),
	}
	e.log.Info("records evaluated",
		log.Int("total", outcome.Summary.Total),
		log.Int("expired", outcome.Summary.Expired),
		log.Int("expiring_soon", outcome.Summary.ExpiringSoon),
		log.Int("valid", outcome.Summary.Valid),
		log.Int("reminders", outcome.Summary.Reminders),
		log.Int("skipped", outcome.Skipped),
	)

	batch := rules.Select(records)
	composer := email.NewComposer(e.cfg.MailTemplate, e.cfg.DateFormat)
	msg, ok := composer.Compose(batch, today)
	if !ok {
		e.log.Info("no reminders due today")
		e.markSuccess()
		return result.NewSuccess(&outcome)
	}

	delivery, b := e.sender.Send(msg, e.cfg.Recipients)
	outcome.Delivery = delivery
	if b != nil {
		return result.NewFailure[ReminderOutcome](b)
	}
	outcome.Sent = true

	e.markSuccess()
	return result.NewSuccess(&outcome)
}

// RunCatchup runs the reminder pipeline only when a scheduled boundary has
// passed since the last recorded success. The outcome of a skipped run is a
// success with Sent false and an empty summary.
func (e *Engine) RunCatchup() result.Result[ReminderOutcome] {
	if e.coord == nil {
		return result.NewFailure[ReminderOutcome](
			blame.NewBlame(blame.ErrStateUnavailable, "catch-up requires a run-state coordinator").
				WithComponent(blame.Configuration))
	}

	due, b := e.coord.CatchupDue()
	if b != nil {
		return result.NewFailure[ReminderOutcome](b)
	}
	if !due {
		e.log.Info("catch-up not needed, last run is current")
		return result.NewSuccess(&ReminderOutcome{})
	}

	e.log.Info("catch-up run starting")
	return e.RunReminder()
}

// RunReport loads the record set and writes the status report CSV. The
// output path template comes from configuration unless overridden.
func (e *Engine) RunReport(outputOverride string) result.Result[ReportOutcome] {
	today := e.clock.Now()

	records, skipped, b := e.load(today)
	if b != nil {
		return result.NewFailure[ReportOutcome](b)
	}

	path := outputOverride
	if path == "" {
		path = report.Filename(e.cfg.Report.OutputFilename, today)
	}

	rows := report.Project(records, e.cfg.DateFormat)
	if b := report.NewWriter(e.log).Write(rows, path); b != nil {
		return result.NewFailure[ReportOutcome](b)
	}

	outcome := ReportOutcome{
		Summary: rules.Summarize(records),
		Skipped: len(skipped),
		Path:    path,
	}
	return result.NewSuccess(&outcome)
}

// SendTestEmail pushes a diagnostic mail through the real failover chain.
func (e *Engine) SendTestEmail() result.Result[email.DeliveryResult] {
	msg := email.DiagnosticMessage(e.clock.Now())
	delivery, b := e.sender.Send(msg, e.cfg.Recipients)
	if b != nil {
		return result.NewFailure[email.DeliveryResult](b)
	}
	return result.NewSuccess(&delivery)
}

// CreateSample writes a starter data file at the configured data_file path.
func (e *Engine) CreateSample() blame.Blame {
	return csvsource.WriteSample(e.cfg.DataFile, e.clock.Now(), e.cfg.DateFormat)
}

// markSuccess records a successful run when a coordinator is attached.
// Failing to persist the timestamp must not fail the run itself; the worst
// case is one redundant catch-up.
func (e *Engine) markSuccess() {
	if e.coord == nil {
		return
	}
	if b := e.coord.MarkSuccess(); b != nil {
		e.log.Warn("could not record run state", log.Blame(b))
	}
}

package email

import (
	"fmt"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
	gomail "gopkg.in/mail.v2"
)

// DefaultMaxAttempts is how many times a single server is tried before the
// chain moves on to the next one.
const DefaultMaxAttempts = 3

// deliveryState tracks the failover sequence:
//
//	Idle -> Connecting(server,attempt) -> Sending -> Sent
//	                                   \-> Failed -> Connecting(next attempt or next server)
//	                                              \-> AllFailed
type deliveryState int

const (
	stateIdle deliveryState = iota
	stateConnecting
	stateSending
	stateSent
	stateFailed
	stateAllFailed
)

func (s deliveryState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateConnecting:
		return "connecting"
	case stateSending:
		return "sending"
	case stateSent:
		return "sent"
	case stateFailed:
		return "failed"
	case stateAllFailed:
		return "all-failed"
	}
	return "unknown"
}

// AttemptError is one failed attempt in the failover history.
type AttemptError struct {
	Server  string
	Attempt int
	Err     error
}

func (a AttemptError) Error() string {
	return fmt.Sprintf("server %s attempt %d: %v", a.Server, a.Attempt, a.Err)
}

// DeliveryResult is the terminal outcome of one Send. Attempts counts every
// dial actually made, across all servers; History holds one entry per
// failure, in the order they happened.
type DeliveryResult struct {
	Sent     bool
	Server   string // name of the server that accepted the message
	Attempts int
	History  []AttemptError
}

// Engine sends a composed message through an ordered failover chain. The
// sequence is strictly sequential: two servers never race on the same
// message, so at most one transmission can succeed per run.
type Engine struct {
	servers     []ServerConfig
	maxAttempts int
	dial        DialerFactory
	log         *log.Log
}

// EngineOption mutates an Engine during construction.
type EngineOption func(*Engine)

// WithDialerFactory substitutes the dialer factory. Tests use this to script
// per-server outcomes without a network.
func WithDialerFactory(factory DialerFactory) EngineOption {
	return func(e *Engine) {
		e.dial = factory
	}
}

// WithMaxAttempts overrides the per-server attempt budget.
func WithMaxAttempts(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithLog sets the logger for the engine.
func WithLog(logger *log.Log) EngineOption {
	return func(e *Engine) {
		e.log = logger
	}
}

// NewEngine creates a delivery engine over the ordered server list.
func NewEngine(servers []ServerConfig, opts ...EngineOption) (*Engine, blame.Blame) {
	if len(servers) == 0 {
		return nil, blame.NewBlame(blame.ErrInvalidConfig, "no SMTP servers configured").
			WithComponent(blame.Configuration)
	}
	e := &Engine{
		servers:     servers,
		maxAttempts: DefaultMaxAttempts,
		dial:        NewDialer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Send walks the failover chain: each server gets up to maxAttempts tries
// before the next one is dialed, and the first success short-circuits the
// rest. Every failure is recorded and logged, never raised mid-chain; only
// full exhaustion returns an error, carrying the complete attempt history.
func (e *Engine) Send(msg *Message, recipients []string) (DeliveryResult, blame.Blame) {
	res := DeliveryResult{}
	e.trace(stateIdle, "", 0)

	for _, server := range e.servers {
		dialer := e.dial(server)
		m := e.buildMessage(server, msg, recipients)

		for attempt := 1; attempt <= e.maxAttempts; attempt++ {
			res.Attempts++
			e.trace(stateConnecting, server.Name, attempt)
			e.trace(stateSending, server.Name, attempt)

			if err := dialer.DialAndSend(m); err != nil {
				e.trace(stateFailed, server.Name, attempt)
				res.History = append(res.History, AttemptError{
					Server:  server.Name,
					Attempt: attempt,
					Err:     err,
				})
				if e.log != nil {
					e.log.Warn("send attempt failed",
						log.String("server", server.Name),
						log.Int("attempt", attempt),
						log.Err(err),
					)
				}
				continue
			}

			e.trace(stateSent, server.Name, attempt)
			res.Sent = true
			res.Server = server.Name
			if e.log != nil {
				e.log.Info("reminder mail delivered",
					log.String("server", server.Name),
					log.Int("attempt", attempt),
					log.Int("total_attempts", res.Attempts),
				)
			}
			return res, nil
		}
	}

	e.trace(stateAllFailed, "", res.Attempts)
	b := blame.NewBlame(blame.ErrAllServersFailed,
		fmt.Sprintf("all %d servers exhausted after %d attempts", len(e.servers), res.Attempts)).
		WithComponent(blame.Transport).
		WithField("attempts", res.Attempts)
	for _, ae := range res.History {
		b = b.WithCause(ae)
	}
	return res, b
}

// trace logs a state transition at debug level.
func (e *Engine) trace(s deliveryState, server string, attempt int) {
	if e.log == nil {
		return
	}
	e.log.Debug("delivery state",
		log.Stringer("state", s),
		log.String("server", server),
		log.Int("attempt", attempt),
	)
}

// buildMessage assembles the wire message with this server's sender identity.
func (e *Engine) buildMessage(server ServerConfig, msg *Message, recipients []string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", server.FromHeader())
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	return m
}

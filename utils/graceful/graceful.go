// Package graceful blocks a long-running process until a termination signal
// arrives, then shuts it down within a deadline.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
)

// Shutdowner is an interface that defines a Shutdown method.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ShutdownFunc is a function type that matches the Shutdown method signature.
type ShutdownFunc func(ctx context.Context) error

// Shutdown implements the Shutdowner interface for ShutdownFunc.
func (f ShutdownFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// GracefulShutdown blocks until SIGINT or SIGTERM, then calls Shutdown with
// the given timeout.
func GracefulShutdown(service Shutdowner, timeout time.Duration, logger *log.Log) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := service.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", log.Err(err))
		return
	}
	logger.Info("service stopped")
}

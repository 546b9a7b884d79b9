package log

import (
	"fmt"
	"time"

	"github.com/abhissng/expirywatch/blame"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message.
type LogLevel string

const (
	// DebugLevel is the lowest severity level, used for detailed debugging information.
	DebugLevel LogLevel = "debug"
	// InfoLevel is used for general informational messages.
	InfoLevel LogLevel = "info"
	// WarnLevel is used for warnings and potential problems.
	WarnLevel LogLevel = "warn"
	// ErrorLevel is used for errors that have occurred.
	ErrorLevel LogLevel = "error"
)

// Helper functions to create fields without directly using zap

// String creates a single field (string) for a given key-value pair.
func String(key string, value string) zap.Field {
	return zap.String(key, value)
}

// Int creates a single field (int) for a given key-value pair.
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Bool creates a single field (bool) for a given key-value pair.
func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

// Time creates a single field (time.Time) for a given key-value pair.
func Time(key string, value time.Time) zap.Field {
	return zap.Time(key, value)
}

// Duration creates a single field (time.Duration) for a given key-value pair.
func Duration(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}

// Any creates a single field (any) for a given key-value pair.
func Any(key string, value any) zap.Field {
	return zap.Any(key, value)
}

// Err creates a single field (error) for a given error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

type errorArray []error

func (a errorArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, e := range a {
		if e == nil {
			enc.AppendString("<nil>")
		} else {
			enc.AppendString(e.Error())
		}
	}
	return nil
}

// Blame creates a field carrying the causes accumulated in a Blame instance.
func Blame(b blame.Blame) zap.Field {
	cs := b.FetchCauses()
	switch len(cs) {
	case 0:
		return zap.Error(b)
	case 1:
		return zap.Error(cs[0])
	default:
		return zap.Array("causes", errorArray(cs))
	}
}

// Stringer creates a single field (fmt.Stringer) for a given key-value pair.
func Stringer(key string, value fmt.Stringer) zap.Field {
	return zap.Stringer(key, value)
}

// LoggerConfig holds the knobs NewLogger understands.
type LoggerConfig struct {
	// IsProd enables production mode (JSON output, Info level)
	IsProd bool

	// Level overrides the level implied by IsProd when non-empty
	Level LogLevel

	// FilePath enables a rotated file sink when non-empty
	FilePath string

	// ServiceName overrides the default service name
	ServiceName string
}

// LoggerOption defines a function that modifies LoggerConfig
type LoggerOption func(*LoggerConfig)

// NewLoggerConfig creates a new LoggerConfig with default values
func NewLoggerConfig(isProd bool, opts ...LoggerOption) *LoggerConfig {
	cfg := &LoggerConfig{
		ServiceName: "expirywatch",
		IsProd:      isProd,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithLevel sets the log level
func WithLevel(level LogLevel) LoggerOption {
	return func(c *LoggerConfig) {
		c.Level = level
	}
}

// WithFilePath enables the rotated file sink at the given path
func WithFilePath(path string) LoggerOption {
	return func(c *LoggerConfig) {
		c.FilePath = path
	}
}

// WithServiceName sets the service name
func WithServiceName(name string) LoggerOption {
	return func(c *LoggerConfig) {
		if name != "" {
			c.ServiceName = name
		}
	}
}

// zapLevel converts the configured LogLevel to a zapcore.Level, falling back
// to the level implied by IsProd.
func (c *LoggerConfig) zapLevel() zapcore.Level {
	switch c.Level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	}
	if c.IsProd {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

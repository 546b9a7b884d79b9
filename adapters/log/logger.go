// Package log wraps zap with the field helpers and configuration used across
// the application. File output rotates via lumberjack.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log struct holds the zap Logger instance.
type Log struct {
	*zap.Logger
}

// NewBasicLogger creates a console-only logger with default configuration.
func NewBasicLogger(isProd bool) *Log {
	l, _ := NewLogger(NewLoggerConfig(isProd))
	return l
}

// NewLogger creates a new Log instance with the specified configuration.
func NewLogger(cfg *LoggerConfig) (*Log, error) {
	atomicLevel := zap.NewAtomicLevel()
	atomicLevel.SetLevel(cfg.zapLevel())

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "log",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		EncodeLevel: func() zapcore.LevelEncoder {
			if cfg.IsProd {
				return zapcore.CapitalLevelEncoder
			}
			return zapcore.CapitalColorLevelEncoder
		}(),
		EncodeTime:     zapcore.ISO8601TimeEncoder, // 2025-02-22T13:43:42.977+0530
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	options := []zap.Option{
		zap.Fields(zap.String("service", cfg.ServiceName)),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	}

	var encoder zapcore.Encoder
	if cfg.IsProd {
		encoder = zapcore.NewJSONEncoder(encoderConfig) // JSON logs for production
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig) // Readable console logs
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), atomicLevel),
	}

	// File sink, rotated by lumberjack, when a log file is configured.
	if cfg.FilePath != "" {
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			getLumberjackSyncer(cfg.FilePath),
			atomicLevel,
		)
		cores = append(cores, fileCore)
	}

	finalCore := zapcore.NewTee(cores...)
	return &Log{Logger: zap.New(finalCore, options...)}, nil
}

// Debug logs a message at the DebugLevel.
func (l *Log) Debug(msg string, fields ...zap.Field) {
	l.Logger.Debug(msg, fields...)
}

// Info logs a message at the InfoLevel.
func (l *Log) Info(msg string, fields ...zap.Field) {
	l.Logger.Info(msg, fields...)
}

// Warn logs a message at the WarnLevel.
func (l *Log) Warn(msg string, fields ...zap.Field) {
	l.Logger.Warn(msg, fields...)
}

// Error logs a message at the ErrorLevel.
func (l *Log) Error(msg string, fields ...zap.Field) {
	l.Logger.Error(msg, fields...)
}

// Fatal logs a message at the FatalLevel and then exits the program.
func (l *Log) Fatal(msg string, fields ...zap.Field) {
	l.Logger.Fatal(msg, fields...)
}

// With creates a child Log with the specified fields.
func (l *Log) With(fields ...zap.Field) *Log {
	return &Log{Logger: l.Logger.With(fields...)}
}

// Sync flushes any buffered log entries. Applications should take care to call
// Sync before exiting.
func (l *Log) Sync() error {
	return l.Logger.Sync()
}

// getLumberjackSyncer returns a WriteSyncer for rotated file logging.
func getLumberjackSyncer(path string) zapcore.WriteSyncer {
	lumberjackLogger := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // Max size in MB before rotating
		MaxBackups: 5,  // Max old log files
		MaxAge:     30, // Max days to retain logs
		Compress:   true,
	}
	return zapcore.AddSync(lumberjackLogger)
}

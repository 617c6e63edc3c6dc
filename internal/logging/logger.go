package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger = &SafeLogger{}
)

// SafeLogger wraps a zap logger. A nil receiver or zero value discards everything,
// so components can be constructed before InitLogger runs.
type SafeLogger struct {
	logger *zap.Logger
}

// NewSafeLogger wraps an existing zap logger
func NewSafeLogger(l *zap.Logger) *SafeLogger {
	return &SafeLogger{logger: l}
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	l, err := config.Build(
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", "sindauto-agendamento"),
			zap.String("version", "v1"),
		),
	)
	if err != nil {
		return err
	}

	Logger = &SafeLogger{logger: l}
	return nil
}

func (l *SafeLogger) zap() *zap.Logger {
	if l == nil || l.logger == nil {
		return nil
	}
	return l.logger
}

// Debug logs at debug level
func (l *SafeLogger) Debug(msg string, fields ...zap.Field) {
	if z := l.zap(); z != nil {
		z.Debug(msg, fields...)
	}
}

// Info logs at info level
func (l *SafeLogger) Info(msg string, fields ...zap.Field) {
	if z := l.zap(); z != nil {
		z.Info(msg, fields...)
	}
}

// Warn logs at warn level
func (l *SafeLogger) Warn(msg string, fields ...zap.Field) {
	if z := l.zap(); z != nil {
		z.Warn(msg, fields...)
	}
}

// Error logs at error level
func (l *SafeLogger) Error(msg string, fields ...zap.Field) {
	if z := l.zap(); z != nil {
		z.Error(msg, fields...)
	}
}

// Fatal logs and exits. Without an underlying logger it still exits.
func (l *SafeLogger) Fatal(msg string, fields ...zap.Field) {
	if z := l.zap(); z != nil {
		z.Fatal(msg, fields...)
	}
	os.Exit(1)
}

// With returns a child logger carrying the given fields
func (l *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	if z := l.zap(); z != nil {
		return &SafeLogger{logger: z.With(fields...)}
	}
	return &SafeLogger{}
}

// Sync flushes buffered entries
func (l *SafeLogger) Sync() error {
	if z := l.zap(); z != nil {
		return z.Sync()
	}
	return nil
}

package logger

import (
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// NoopLogger implements the Logger interface but discards every entry.
// Selected with logger.output "none".
type NoopLogger struct {
	level core.LogLevel
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{level: core.LogLevelInfo}
}

// SetLevel sets the minimum log level to output
func (l *NoopLogger) SetLevel(level core.LogLevel) { l.level = level }

// GetLevel gets the current log level
func (l *NoopLogger) GetLevel() core.LogLevel { return l.level }

func (l *NoopLogger) Debug(string, map[string]any) {}
func (l *NoopLogger) Info(string, map[string]any)  {}
func (l *NoopLogger) Warn(string, map[string]any)  {}
func (l *NoopLogger) Error(string, map[string]any) {}

// Flush has nothing to write
func (l *NoopLogger) Flush() error { return nil }

// New builds the logger selected by opts
func New(opts Options) (core.Logger, error) {
	if opts.Output == "none" {
		l := NewNoopLogger()
		l.SetLevel(ParseLevel(opts.Level))
		return l, nil
	}
	return NewZapLogger(opts)
}

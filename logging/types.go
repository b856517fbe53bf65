// Package logging provides structured, leveled logging backed by zap.
//
// Components accept a Logger explicitly; anything constructed without one
// falls back to the process-wide logger, which InitGlobalLogger configures
// from the application's log level.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
)

// LogLevel is the minimum severity a logger emits
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the level's canonical upper-case name
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to its LogLevel. Matching is case-insensitive
// and unknown names fall back to InfoLevel.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is one structured key-value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the interface the cache components log through
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	WithFields(fields ...Field) Logger
	WithContext(ctx context.Context) Logger
}

// LogConfig holds logger construction options
type LogConfig struct {
	Level LogLevel

	// Output receives the encoded entries. Nil means stdout.
	Output io.Writer

	// Prefix names the logger; empty leaves it unnamed.
	Prefix string
}

// DefaultLogConfig returns a stdout configuration at the level named by the
// LOG_LEVEL environment variable, defaulting to info
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level: ParseLevel(os.Getenv("LOG_LEVEL")),
	}
}

var (
	globalLogger Logger
	globalMu     sync.RWMutex
	initOnce     sync.Once
)

// SetGlobalLogger replaces the process-wide fallback logger
func SetGlobalLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide fallback logger, building the
// default one on first use. A logger installed through SetGlobalLogger or
// InitGlobalLogger beforehand is kept.
func GetGlobalLogger() Logger {
	initOnce.Do(func() {
		globalMu.Lock()
		if globalLogger == nil {
			globalLogger = NewDefaultLogger()
		}
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

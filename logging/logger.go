package logging

import "fmt"

// NewDefaultLogger creates a zap logger from DefaultLogConfig
func NewDefaultLogger() Logger {
	config := DefaultLogConfig()
	logger, err := NewZapLogger(config)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default zap logger: %v", err))
	}
	return logger
}

// InitGlobalLogger builds a logger at the named level, typically the
// application's configured LogLevel, and installs it as the process-wide
// fallback. Components constructed without an explicit logger share the
// returned instance.
func InitGlobalLogger(levelStr string) Logger {
	config := DefaultLogConfig()
	config.Level = ParseLevel(levelStr)

	logger, err := NewZapLogger(config)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize zap logger: %v", err))
	}

	SetGlobalLogger(logger)
	return logger
}

// MustSync flushes any buffered entries on the global logger. Call it before
// the application exits.
func MustSync() {
	logger := GetGlobalLogger()
	if zapLogger, ok := logger.(*ZapAdapter); ok {
		_ = zapLogger.Sync()
	}
}

// Strings creates a string slice field
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: values}
}

// Err creates an error field with key "error"
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// NamedError creates an error field with a custom key
func NamedError(key string, err error) Field {
	return Field{Key: key, Value: err}
}

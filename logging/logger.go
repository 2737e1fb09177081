package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for MemTrail. Users can
// provide their own implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// MemTrailLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods for the memory engine. It should be cheap to
// copy via With* methods. Its level methods take alternating key/value pairs
// exactly as log/slog does, so it satisfies the Logger interface with the
// same calling convention as every other implementation.
type MemTrailLogger struct {
	logger    *slog.Logger
	level     LogLevel
	context   map[string]any
	component string
	subjectID string
	turnID    string
}

// LoggerConfig configures construction of a MemTrailLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	SubjectID string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:  LogLevelInfo,
		Format: "json",
		Output: os.Stderr,
	}
}

// NewMemTrailLogger constructs a MemTrailLogger from the given configuration.
func NewMemTrailLogger(cfg *LoggerConfig) *MemTrailLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &MemTrailLogger{
		logger:    slog.New(handler),
		level:     cfg.Level,
		context:   map[string]any{},
		component: cfg.Component,
		subjectID: cfg.SubjectID,
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *MemTrailLogger) clone() *MemTrailLogger {
	nl := *l
	nl.context = map[string]any{}
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute that will be attached to every log entry.
func (l *MemTrailLogger) WithContext(key string, value any) *MemTrailLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (agent, classifier, archive, etc.).
func (l *MemTrailLogger) WithComponent(c string) *MemTrailLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithTurn attaches subject and turn identifiers.
func (l *MemTrailLogger) WithTurn(subjectID, turnID string) *MemTrailLogger {
	nl := l.clone()
	nl.subjectID = subjectID
	nl.turnID = turnID
	return nl
}

func (l *MemTrailLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+4)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.subjectID != "" {
		attrs = append(attrs, slog.String("subject_id", l.subjectID))
	}
	if l.turnID != "" {
		attrs = append(attrs, slog.String("turn_id", l.turnID))
	}
	attrs = append(attrs, slog.Time("timestamp", time.Now()))
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

var _ Logger = (*MemTrailLogger)(nil)

// log emits msg with the logger's contextual attributes followed by args,
// alternating key/value pairs as in log/slog.
func (l *MemTrailLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	attrs := l.buildAttrs()
	kv := make([]any, 0, len(attrs)+len(args))
	for _, attr := range attrs {
		kv = append(kv, attr)
	}
	kv = append(kv, args...)
	l.logger.Log(context.Background(), level, msg, kv...)
}

// Debug logs at debug level.
func (l *MemTrailLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *MemTrailLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *MemTrailLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *MemTrailLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogMutation records a committed state mutation without any turn text.
func (l *MemTrailLogger) LogMutation(entity, kind, status, recordID string, chainLen int) {
	attrs := l.buildAttrs()
	attrs = append(attrs,
		slog.String("entity", entity),
		slog.String("mutation", kind),
		slog.String("status", status),
		slog.String("record_id", recordID),
		slog.Int("chain_length", chainLen),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Mutation committed", attrs...)
}

// LogChainVerification records the outcome of a chain audit.
func (l *MemTrailLogger) LogChainVerification(entity string, ok bool, err error) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.String("entity", entity), slog.Bool("intact", ok))
	level := slog.LevelInfo
	msg := "Chain verification passed"
	if !ok {
		level = slog.LevelError
		msg = "Chain verification failed"
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// LogRedaction records a redaction hit by rule name only, never the value.
func (l *MemTrailLogger) LogRedaction(rule string) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.String("rule", rule))
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Sensitive value detected and redacted", attrs...)
}

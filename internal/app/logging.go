package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelOff suppresses every message.
	LogLevelOff
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
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "off", "none":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// logSink is shared by a logger and every logger derived from it, so
// SetLevel and SetOutput on the root apply to component loggers too.
type logSink struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
	closer io.Closer
}

// Logger provides structured logging for the application.
type Logger struct {
	sink   *logSink
	prefix string
	fields map[string]any
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Nil discards output.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: io.Discard,
		Prefix: "boxselect",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	return &Logger{
		sink:   &logSink{level: cfg.Level, output: cfg.Output},
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// OpenLogger creates a logger appending to the file at path. An empty
// path yields a logger that discards output; the terminal belongs to the
// UI while the application runs.
func OpenLogger(path string, level LogLevel) (*Logger, error) {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	l := NewLogger(cfg)
	if err := l.SetFile(path); err != nil {
		return nil, err
	}
	return l, nil
}

// SetFile redirects output to the file at path, closing any file opened
// by a previous call. An empty path discards output.
func (l *Logger) SetFile(path string) error {
	var (
		out    io.Writer = io.Discard
		closer io.Closer
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	l.sink.mu.Lock()
	old := l.sink.closer
	l.sink.output = out
	l.sink.closer = closer
	l.sink.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Close closes the log file, if any, and discards further output.
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	closer := l.sink.closer
	l.sink.output = io.Discard
	l.sink.closer = nil
	l.sink.mu.Unlock()

	if closer != nil {
		return closer.Close()
	}
	return nil
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	newFields := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		sink:   l.sink,
		prefix: l.prefix,
		fields: newFields,
	}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// log writes a log message if the level is enabled.
func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if level < l.sink.level || l.sink.level == LogLevelOff {
		return
	}

	timestamp := time.Now().Format("2006-01-02T15:04:05.000")

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(timestamp)
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("}")
	}
	b.WriteString("\n")

	_, _ = io.WriteString(l.sink.output, b.String())
}

// NullLogger is a logger that discards all output.
var NullLogger = NewLogger(LoggerConfig{Level: LogLevelOff, Output: io.Discard})

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// logComponentError logs an error with component context.
func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.logger.WithComponent(component).Error("error: %v", err)
	}
}

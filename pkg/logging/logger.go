package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents different logging levels
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of Level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name into a Level, defaulting to INFO
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Field is a structured logging field
type Field struct {
	Key   string
	Value any
}

// String creates a string field
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an integer field
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Float creates a float field
func Float(key string, value float64) Field { return Field{Key: key, Value: value} }

// Component tags the log entry with the emitting component
func Component(name string) Field { return Field{Key: "component", Value: name} }

// RequestID tags the log entry with the request id
func RequestID(id string) Field { return Field{Key: "request_id", Value: id} }

// entry is the serialized form of a log record
type entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Service   string         `json:"service,omitempty"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Logger provides structured leveled logging
type Logger struct {
	mu      sync.Mutex
	level   Level
	format  string // "json" or "text"
	output  io.Writer
	service string
}

// New creates a logger writing text records to stdout at INFO
func New(service string) *Logger {
	return &Logger{
		level:   INFO,
		format:  "text",
		output:  os.Stdout,
		service: service,
	}
}

// SetLevel sets the minimum level that will be emitted
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetFormat sets the output format ("json" or "text")
func (l *Logger) SetFormat(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = strings.ToLower(format)
}

// SetOutput sets the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) { l.log(DEBUG, msg, nil, fields) }

// Info logs an informational message
func (l *Logger) Info(msg string, fields ...Field) { l.log(INFO, msg, nil, fields) }

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) { l.log(WARN, msg, nil, fields) }

// Error logs an error message with its cause
func (l *Logger) Error(msg string, err error, fields ...Field) { l.log(ERROR, msg, err, fields) }

func (l *Logger) log(level Level, msg string, err error, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Service:   l.service,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if len(fields) > 0 {
		e.Fields = make(map[string]any, len(fields))
		for _, f := range fields {
			e.Fields[f.Key] = f.Value
		}
	}

	if l.format == "json" {
		data, marshalErr := json.Marshal(e)
		if marshalErr != nil {
			fmt.Fprintf(l.output, "%s [%s] %s (log marshal failed: %v)\n", e.Timestamp, e.Level, e.Message, marshalErr)
			return
		}
		fmt.Fprintln(l.output, string(data))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s", e.Timestamp, e.Level, e.Message)
	if e.Error != "" {
		fmt.Fprintf(&sb, " error=%q", e.Error)
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.output, sb.String())
}

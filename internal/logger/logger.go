package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger provides structured key=value logging for journald
type Logger struct {
	writer io.Writer
	debug  bool
}

// New creates a new logger instance
func New() *Logger {
	return &Logger{
		writer: os.Stdout,
	}
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		writer: w,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard)
}

// SetDebug toggles emission of DEBUG lines.
func (l *Logger) SetDebug(enabled bool) {
	l.debug = enabled
}

// DebugEnabled reports whether DEBUG lines are written.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...Field) {
	l.log("INFO", msg, fields...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log("WARNING", msg, fields...)
}

// Debug logs debug messages when debug output is enabled
func (l *Logger) Debug(msg string, fields ...Field) {
	if !l.debug {
		return
	}
	l.log("DEBUG", msg, fields...)
}

func (l *Logger) log(level, msg string, fields ...Field) {
	output := fmt.Sprintf("LEVEL=%s MESSAGE=%s", level, msg)
	for _, field := range fields {
		output += fmt.Sprintf(" %s=%v", field.Key, field.Value)
	}
	_, _ = fmt.Fprintln(l.writer, output)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new field (shorthand)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Common field constructors
func Action(value string) Field     { return F("ACTION", value) }
func Status(value string) Field     { return F("STATUS", value) }
func Count(value int) Field         { return F("COUNT", value) }
func Error(value error) Field       { return F("ERROR", value) }
func Reason(value string) Field     { return F("REASON", value) }
func Method(value string) Field     { return F("METHOD", value) }
func Path(value string) Field       { return F("PATH", value) }
func HTTPStatus(value int) Field    { return F("HTTP_STATUS", value) }
func RequestID(value string) Field  { return F("REQUEST_ID", value) }
func Guest(value string) Field      { return F("GUEST", value) }
func Room(value string) Field       { return F("ROOM", value) }
func Reservation(value int64) Field { return F("RESERVATION", value) }
func Query(value string) Field      { return F("QUERY", value) }
func Mode(value string) Field       { return F("MODE", value) }
func Total(value float64) Field     { return F("TOTAL", fmt.Sprintf("%.2f", value)) }

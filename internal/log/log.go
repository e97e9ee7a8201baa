// Package log is a levelled wrapper around the standard logger that accepts
// structured fields.
package log

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	}
	return "UNKNOWN"
}

func LevelFromString(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "WARN":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelNone
	}
	return LevelInfo
}

// Fields are key value pairs appended to a log line.
type Fields map[string]interface{}

type Logger struct {
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{logger: log.New(out, "", log.LstdFlags), level: level}
}

// Discard drops everything, for tests and sessions without a log file.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) print(level Level, msg string, fields Fields) {
	if nil == l || level < l.level {
		return
	}
	l.logger.Printf("[%s] %s%s", level, msg, formatFields(fields))
}

func (l *Logger) Debug(msg string, fields Fields) { l.print(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields Fields)  { l.print(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields Fields)  { l.print(LevelWarn, msg, fields) }

func (l *Logger) Error(msg string, err error, fields Fields) {
	l.print(LevelError, fmt.Sprintf("%s: %v", msg, err), fields)
}

func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString("=")
		switch v := fields[k].(type) {
		case float32, float64:
			fmt.Fprintf(&b, "%.3f", v)
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	b.WriteString("}")
	return b.String()
}

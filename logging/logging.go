// Package logging defines the structured logging interface used by the
// estimation packages.
//
// The library never logs on its own behalf unless a logger is injected;
// the default is [Nop]. Applications can adapt their own logger by
// implementing [Logger].
package logging

import (
	"fmt"
	"log"
	"maps"
	"os"
	"sort"
)

// Fields holds structured key/value pairs attached to a log entry.
type Fields map[string]any

// Logger is the interface the library expects for diagnostics.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger with preset fields merged into every entry.
	WithFields(fields Fields) Logger
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Fields)        {}
func (nopLogger) Info(string, ...Fields)         {}
func (nopLogger) Warn(string, ...Fields)         {}
func (nopLogger) Error(error, string, ...Fields) {}
func (nopLogger) WithFields(Fields) Logger       { return nopLogger{} }

// Level selects the minimum severity emitted by the standard logger.
type Level int

// Severity levels, lowest first.
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
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

// StdLogger writes structured entries through a standard library logger.
type StdLogger struct {
	out    *log.Logger
	level  Level
	preset Fields
}

// NewStdLogger returns a logger writing to stderr at the given level.
func NewStdLogger(level Level) *StdLogger {
	return &StdLogger{
		out:   log.New(os.Stderr, "", log.LstdFlags),
		level: level,
	}
}

// Debug logs at debug severity.
func (s *StdLogger) Debug(msg string, fields ...Fields) { s.emit(DebugLevel, msg, fields) }

// Info logs at info severity.
func (s *StdLogger) Info(msg string, fields ...Fields) { s.emit(InfoLevel, msg, fields) }

// Warn logs at warning severity.
func (s *StdLogger) Warn(msg string, fields ...Fields) { s.emit(WarnLevel, msg, fields) }

// Error logs an error at error severity.
func (s *StdLogger) Error(err error, msg string, fields ...Fields) {
	merged := s.merge(fields)
	if err != nil {
		merged["error"] = err.Error()
	}

	s.write(ErrorLevel, msg, merged)
}

// WithFields returns a logger carrying additional preset fields.
func (s *StdLogger) WithFields(fields Fields) Logger {
	preset := make(Fields, len(s.preset)+len(fields))
	maps.Copy(preset, s.preset)
	maps.Copy(preset, fields)

	return &StdLogger{out: s.out, level: s.level, preset: preset}
}

func (s *StdLogger) emit(level Level, msg string, fields []Fields) {
	if level < s.level {
		return
	}

	s.write(level, msg, s.merge(fields))
}

func (s *StdLogger) merge(fields []Fields) Fields {
	merged := make(Fields, len(s.preset)+4)
	maps.Copy(merged, s.preset)

	for _, f := range fields {
		maps.Copy(merged, f)
	}

	return merged
}

func (s *StdLogger) write(level Level, msg string, fields Fields) {
	if level < s.level {
		return
	}

	if len(fields) == 0 {
		s.out.Printf("%s %s", level, msg)
		return
	}

	// Deterministic field order keeps log lines diffable.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	line := ""
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, fields[k])
	}

	s.out.Printf("%s %s%s", level, msg, line)
}

package netsim

//
// Logger: apex/log-backed implementation
//

import (
	"io"

	alog "github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// ApexLogger adapts an [*github.com/apex/log.Logger] to the [Logger]
// interface. The zero value is invalid; use [NewApexLogger] or
// [NewApexTraceLogger].
type ApexLogger struct {
	entry *alog.Entry
}

var _ Logger = &ApexLogger{}

// NewApexLogger creates an [ApexLogger] that writes human-readable messages
// to w using apex/log's text handler, the same handler family the teacher's
// CLI commands use for operator-facing output.
func NewApexLogger(w io.Writer, level alog.Level) *ApexLogger {
	logger := &alog.Logger{
		Handler: text.New(w),
		Level:   level,
	}
	return &ApexLogger{entry: alog.NewEntry(logger)}
}

// NewApexTraceLogger creates an [ApexLogger] that writes one JSON object
// per log call to w using apex/log's JSON handler. This is the writer
// behind the simulator's packet trace file (spec §6): every field passed
// via [ApexLogger.WithField] ends up as a top-level key in the emitted
// JSON-lines record.
func NewApexTraceLogger(w io.Writer) *ApexLogger {
	logger := &alog.Logger{
		Handler: json.New(w),
		Level:   alog.DebugLevel,
	}
	return &ApexLogger{entry: alog.NewEntry(logger)}
}

// WithField implements [Logger], matching apex/log's fielded-logger idiom.
func (a *ApexLogger) WithField(key string, value any) Logger {
	return &ApexLogger{entry: a.entry.WithField(key, value)}
}

// WithFields implements [Logger].
func (a *ApexLogger) WithFields(fields map[string]any) Logger {
	return &ApexLogger{entry: a.entry.WithFields(alog.Fields(fields))}
}

// Debugf implements [Logger].
func (a *ApexLogger) Debugf(format string, v ...any) { a.entry.Debugf(format, v...) }

// Debug implements [Logger].
func (a *ApexLogger) Debug(message string) { a.entry.Debug(message) }

// Infof implements [Logger].
func (a *ApexLogger) Infof(format string, v ...any) { a.entry.Infof(format, v...) }

// Info implements [Logger].
func (a *ApexLogger) Info(message string) { a.entry.Info(message) }

// Warnf implements [Logger].
func (a *ApexLogger) Warnf(format string, v ...any) { a.entry.Warnf(format, v...) }

// Warn implements [Logger].
func (a *ApexLogger) Warn(message string) { a.entry.Warn(message) }

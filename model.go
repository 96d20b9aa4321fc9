package netsim

//
// Data model: time and logging
//

// Nanos is simulated time, expressed in nanoseconds. It never reflects
// wall-clock time; the executor advances it strictly by event deltas.
type Nanos int64

// Logger is the logger interface used throughout the simulator. The default
// implementation wraps github.com/apex/log; see [NewApexLogger].
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)

	// WithField returns a logger that annotates every subsequent message
	// with the given key/value, the way apex/log's fielded loggers do.
	WithField(key string, value any) Logger

	// WithFields returns a logger annotated with multiple fields.
	WithFields(fields map[string]any) Logger
}

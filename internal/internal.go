// Package internal contains internal implementation details.
package internal

import "github.com/dcflow/netsim"

// NullLogger is a [netsim.Logger] that does not emit logs. Used in tests.
type NullLogger struct{}

// Debug implements netsim.Logger
func (nl *NullLogger) Debug(message string) {
	// nothing
}

// Debugf implements netsim.Logger
func (nl *NullLogger) Debugf(format string, v ...any) {
	// nothing
}

// Info implements netsim.Logger
func (nl *NullLogger) Info(message string) {
	// nothing
}

// Infof implements netsim.Logger
func (nl *NullLogger) Infof(format string, v ...any) {
	// nothing
}

// Warn implements netsim.Logger
func (nl *NullLogger) Warn(message string) {
	// nothing
}

// Warnf implements netsim.Logger
func (nl *NullLogger) Warnf(format string, v ...any) {
	// nothing
}

// WithField implements netsim.Logger
func (nl *NullLogger) WithField(key string, value any) netsim.Logger {
	return nl
}

// WithFields implements netsim.Logger
func (nl *NullLogger) WithFields(fields map[string]any) netsim.Logger {
	return nl
}

var _ netsim.Logger = &NullLogger{}

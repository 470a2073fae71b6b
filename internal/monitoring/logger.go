// Package monitoring carries the progress logging emitted by the report
// pipeline as it loads starts, aggregates metrics, and writes documents.
package monitoring

import "log"

// Logf reports pipeline progress, one line per completed stage. The
// default writes through log.Printf; SetLogger swaps it out, which tests
// use to mute the output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the progress logger. A nil argument installs a
// discard logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

package monitoring

import "log"

// Logf is the package-level diagnostic logger for run summaries (cluster
// counts, rejected clusters). It defaults to log.Printf but may be replaced
// by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives per-trajectory and per-cluster detail. It is a no-op until
// SetDebugLogger installs a sink.
var Debugf func(format string, v ...interface{}) = noop

func noop(string, ...interface{}) {}

// SetLogger replaces the summary logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = noop
		return
	}
	Logf = f
}

// SetDebugLogger replaces the detail logger. Passing nil mutes it.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = noop
		return
	}
	Debugf = f
}

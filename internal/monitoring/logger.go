package monitoring

import "log"

// Logf is the package-level diagnostic logger shared by the codec and the
// station pipeline. It defaults to log.Printf but may be replaced by
// SetLogger; decode-path warnings (dropped lidar points, watcher skips) go
// through it so tests can capture or mute them.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

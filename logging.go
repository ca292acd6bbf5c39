// Package hcitest holds the pieces shared by every component: process-wide
// logging, panic recovery and scenario configuration loading.
//
// Grounded on the teacher's root logging.go, generalised from a single
// process to a coordinator plus N worker goroutines that each want their own
// named logger instance rather than one shared global (§9 "each worker must
// initialise a logger in its own start-up" once fork-inherited handlers are
// gone).
package hcitest

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var stderrFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.6s} %{module} ▶ %{message}`,
)

var (
	backendOnce sync.Once
	leveled     logging.LeveledBackend
)

func ensureBackend() {
	backendOnce.Do(func() {
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		formatted := logging.NewBackendFormatter(backend, stderrFormat)
		leveled = logging.AddModuleLevel(formatted)
		logging.SetBackend(leveled)
	})
}

// SetupLogging returns a named, levelled logger writing to stderr. module
// names the component (e.g. "coordinator", or a worker's name) so that
// interleaved output from several workers stays attributable (§6: "format
// includes process name, level, and message"). Every call shares one
// underlying backend — initialised on first use — and just attaches its own
// level to module, since a worker goroutine initialising its own logger (§9)
// must not clobber the coordinator's.
//
// The level can be overridden process-wide via HCITEST_LOG_LEVEL, matching
// the teacher's KR_LOG_LEVEL convention.
func SetupLogging(module string, defaultLevel logging.Level) *logging.Logger {
	ensureBackend()
	leveled.SetLevel(levelFromEnv(defaultLevel), module)
	return logging.MustGetLogger(module)
}

func levelFromEnv(def logging.Level) logging.Level {
	switch os.Getenv("HCITEST_LOG_LEVEL") {
	case "CRITICAL":
		return logging.CRITICAL
	case "ERROR":
		return logging.ERROR
	case "WARNING":
		return logging.WARNING
	case "NOTICE":
		return logging.NOTICE
	case "INFO":
		return logging.INFO
	case "DEBUG":
		return logging.DEBUG
	default:
		return def
	}
}

// Package launcher resolves application identifiers to running
// processes, launching when needed.
package launcher

import (
	"errors"
	"time"
)

// ErrTargetNotFound is returned when an application identifier resolves
// to nothing, running or launchable. Callers decide whether to retry
// after a launch attempt of their own.
var ErrTargetNotFound = errors.New("application not found")

// OpenedApp is the outcome of a successful Open.
type OpenedApp struct {
	PID     int           `yaml:"pid"        json:"pid"`
	Name    string        `yaml:"name"       json:"name"`
	Elapsed time.Duration `yaml:"elapsed_ns" json:"elapsed_ns"`
}

// Launcher opens applications. The identifier may be a display name, a
// bundle identifier, or a filesystem path. An already-running instance's
// pid is preferred over launching a second copy.
type Launcher interface {
	Open(identifier string, activate bool) (OpenedApp, error)
}

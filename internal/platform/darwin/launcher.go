//go:build darwin

package darwin

import (
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/launcher"
)

// launchTimeout bounds the wait for a freshly launched app's process
// record to appear.
const launchTimeout = 10 * time.Second

// Launcher implements launcher.Launcher using the running-application
// registry and the macOS `open` command.
type Launcher struct {
	sys *System
}

// NewLauncher creates the macOS launcher.
func NewLauncher(sys *System) *Launcher {
	return &Launcher{sys: sys}
}

// Open resolves an identifier (display name, bundle id, or path) to a
// pid, preferring an already-running instance over launching a second
// copy.
func (l *Launcher) Open(identifier string, activate bool) (launcher.OpenedApp, error) {
	start := time.Now()

	if app, ok := findRunning(l.sys.RunningApplications(), identifier); ok {
		if activate {
			if err := l.sys.ActivateApplication(app.PID); err != nil {
				return launcher.OpenedApp{}, err
			}
		}
		return launcher.OpenedApp{PID: app.PID, Name: app.Name, Elapsed: time.Since(start)}, nil
	}

	args := []string{"-a", identifier}
	if strings.HasPrefix(identifier, "/") {
		args = []string{identifier}
	}
	if out, err := exec.Command("open", args...).CombinedOutput(); err != nil {
		return launcher.OpenedApp{}, errors.Wrapf(launcher.ErrTargetNotFound,
			"open %q: %s", identifier, strings.TrimSpace(string(out)))
	}

	deadline := time.Now().Add(launchTimeout)
	for time.Now().Before(deadline) {
		if app, ok := findRunning(l.sys.RunningApplications(), identifier); ok {
			if activate {
				// Activation failure right after launch is not fatal;
				// the pid is what the caller needs.
				_ = l.sys.ActivateApplication(app.PID)
			}
			return launcher.OpenedApp{PID: app.PID, Name: app.Name, Elapsed: time.Since(start)}, nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return launcher.OpenedApp{}, errors.Wrapf(launcher.ErrTargetNotFound,
		"%q launched but no process record appeared within %s", identifier, launchTimeout)
}

func findRunning(apps []ax.AppInfo, identifier string) (ax.AppInfo, bool) {
	for _, app := range apps {
		if strings.EqualFold(app.Name, identifier) || app.BundleID == identifier {
			return app, true
		}
	}
	// A path identifier matches on its base name.
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		base := strings.TrimSuffix(identifier[i+1:], ".app")
		for _, app := range apps {
			if strings.EqualFold(app.Name, base) {
				return app, true
			}
		}
	}
	return ax.AppInfo{}, false
}

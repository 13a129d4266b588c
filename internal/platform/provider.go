// Package platform bundles the OS-specific backends behind one provider.
package platform

import (
	"fmt"
	"runtime"

	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/input"
	"github.com/uiprobe/uiprobe/internal/launcher"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	System    ax.System
	Input     input.Simulator
	Presenter highlight.Presenter
	Launcher  launcher.Launcher
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("uiprobe is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (accessibility) at startup.
var RequestPermissionsFunc func()

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

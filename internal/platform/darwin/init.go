//go:build darwin && cgo

package darwin

import "github.com/uiprobe/uiprobe/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		sys := NewSystem()
		return &platform.Provider{
			System:    sys,
			Input:     NewSimulator(),
			Presenter: NewPresenter(),
			Launcher:  NewLauncher(sys),
		}, nil
	}
	platform.RequestPermissionsFunc = func() {
		IsTrusted(true)
	}
}

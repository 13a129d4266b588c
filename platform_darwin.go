//go:build darwin && cgo

package main

// Registers the macOS backends with internal/platform.
import _ "github.com/uiprobe/uiprobe/internal/platform/darwin"

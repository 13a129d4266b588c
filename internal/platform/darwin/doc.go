//go:build darwin

// Package darwin provides macOS platform support using the Accessibility,
// CoreGraphics, and AppKit APIs. All functionality requires CGo.
package darwin

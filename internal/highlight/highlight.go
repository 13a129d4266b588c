// Package highlight draws transient visual feedback over other apps'
// windows.
package highlight

import (
	"image/color"
	"time"

	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/ui"
)

// DefaultDuration is how long an overlay stays on screen when the caller
// doesn't say.
const DefaultDuration = 2 * time.Second

// Style controls how one overlay rectangle is drawn.
type Style struct {
	Color       color.RGBA
	BorderWidth int
	// Label is an optional short badge drawn at the frame's corner.
	Label string
}

// DefaultStyle is a red two-pixel border with no label.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{R: 0xFF, A: 0xFF}, BorderWidth: 2}
}

// Overlay is one rectangle to draw.
type Overlay struct {
	Frame model.Bounds
	Style Style
}

// Presenter creates and destroys the actual overlay windows. Show
// returns a teardown function that removes every window it created;
// teardown must be safe to call exactly once from any goroutine (the
// darwin implementation marshals back to the UI context itself). Overlay
// windows never intercept input events.
type Presenter interface {
	Show(tok ui.Token, overlays []Overlay) (teardown func(), err error)
}

// FromDiff builds overlays marking a diff's changes on screen: added
// elements green, removed red, modified yellow. Elements without
// geometry are skipped.
func FromDiff(diff *model.SnapshotDiff) []Overlay {
	var overlays []Overlay
	add := func(e *model.Element, c color.RGBA) {
		if !e.HasGeometry() {
			return
		}
		overlays = append(overlays, Overlay{
			Frame: e.Frame(),
			Style: Style{Color: c, BorderWidth: 2},
		})
	}
	for i := range diff.Added {
		add(&diff.Added[i], color.RGBA{G: 0xC0, A: 0xFF})
	}
	for i := range diff.Removed {
		add(&diff.Removed[i], color.RGBA{R: 0xC0, A: 0xFF})
	}
	for i := range diff.Modified {
		add(&diff.Modified[i].After, color.RGBA{R: 0xC0, G: 0xA0, A: 0xFF})
	}
	return overlays
}

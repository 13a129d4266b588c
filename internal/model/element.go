package model

import (
	"math"

	"github.com/uiprobe/uiprobe/internal/ax"
)

// PathMainWindow is the reserved path index marking the hop through an
// application's designated main-window reference. Ordinary children use
// their non-negative index; entries in the window list use -(index+1).
const PathMainWindow = math.MinInt32

// Element is one collected node of an accessibility-tree snapshot.
//
// Geometry is all-or-nothing: either X and Y are set and at least one of
// Width/Height is set, or all four are nil. A dimension whose raw value
// was zero is stored as nil, never 0.
type Element struct {
	Role    string   `yaml:"role"              json:"role"`
	Text    string   `yaml:"text,omitempty"    json:"text,omitempty"`
	X       *float64 `yaml:"x,omitempty"       json:"x,omitempty"`
	Y       *float64 `yaml:"y,omitempty"       json:"y,omitempty"`
	Width   *float64 `yaml:"width,omitempty"   json:"width,omitempty"`
	Height  *float64 `yaml:"height,omitempty"  json:"height,omitempty"`
	Enabled bool     `yaml:"enabled"           json:"enabled"`
	Focused bool     `yaml:"focused,omitempty" json:"focused,omitempty"`

	// Attributes is the open map of extra attributes copied verbatim
	// from the live tree.
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// Path is the route of signed indices from the application root.
	Path []int `yaml:"path" json:"path"`

	// Handle is the live accessibility reference this element was read
	// from. Its lifetime is owned by the OS; it may be invalid by the
	// time the snapshot is consumed. Never serialized.
	Handle ax.Element `yaml:"-" json:"-"`
}

// HasGeometry reports whether the element carries a valid on-screen
// position.
func (e *Element) HasGeometry() bool {
	return e.X != nil && e.Y != nil
}

// ApplyGeometry records a successfully read position and size. It
// returns false, leaving the element without geometry, when both size
// dimensions are zero. A single zero dimension is dropped to nil while
// the other is kept.
func (e *Element) ApplyGeometry(pos ax.Point, size ax.Size) bool {
	if size.Width == 0 && size.Height == 0 {
		return false
	}
	x, y := pos.X, pos.Y
	e.X, e.Y = &x, &y
	if size.Width != 0 {
		w := size.Width
		e.Width = &w
	}
	if size.Height != 0 {
		h := size.Height
		e.Height = &h
	}
	return true
}

// Frame returns the element's bounds, using zero for a missing width or
// height. Only meaningful when HasGeometry is true.
func (e *Element) Frame() Bounds {
	var b Bounds
	if e.X != nil {
		b.X = *e.X
	}
	if e.Y != nil {
		b.Y = *e.Y
	}
	if e.Width != nil {
		b.Width = *e.Width
	}
	if e.Height != nil {
		b.Height = *e.Height
	}
	return b
}

// Package ax defines the abstraction over the OS accessibility layer.
// The darwin implementation lives in internal/platform/darwin; tests use
// the in-memory implementation in internal/ax/axtest.
package ax

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in screen units.
type Size struct {
	Width, Height float64
}

// Element is a live reference into an application's accessibility tree.
// Its lifetime is controlled by the OS, not the caller: a handle obtained
// during one traversal may be invalid by the next. Every attribute read
// is best-effort and may fail at any time.
type Element interface {
	// Identity returns an identifier derived from the underlying platform
	// handle, stable for the handle's lifetime. Two Elements referring to
	// the same live node return the same value regardless of the route
	// used to reach them. Used for cycle detection, never persisted.
	Identity() uint64

	// String reads a string-valued attribute.
	String(attr string) (string, error)

	// Bool reads a boolean-valued attribute.
	Bool(attr string) (bool, error)

	// Point reads a position-valued attribute.
	Point(attr string) (Point, error)

	// Size reads a size-valued attribute.
	Size(attr string) (Size, error)

	// Element reads a single-element attribute (e.g. the main window).
	Element(attr string) (Element, error)

	// Elements reads an element-list attribute (e.g. windows, children).
	Elements(attr string) ([]Element, error)
}

// AppInfo describes a running application as reported by the OS process
// registry.
type AppInfo struct {
	PID        int
	Name       string
	BundleID   string
	// Foreground is true for ordinary windowed apps, false for agents and
	// background-only processes that cannot be activated.
	Foreground bool
	Frontmost  bool
}

// WindowInfo is the result of one batched read of a window element's
// identifying attributes. The resolver reads all five in a single round
// trip because candidate windows can vanish between individual reads.
type WindowInfo struct {
	Position  Point
	Size      Size
	Title     string
	Minimized bool
	Main      bool
	Focused   bool
}

// System is the entry point into the accessibility layer.
type System interface {
	// Trusted reports whether the process holds the accessibility
	// permission. When prompt is true the OS may show its grant dialog
	// once; the call still returns the current state.
	Trusted(prompt bool) bool

	// ApplicationElement constructs the root accessibility element for a
	// pid. This succeeds even for pids with no confirmed process record;
	// attribute reads on the result simply fail.
	ApplicationElement(pid int) Element

	// RunningApplication looks up the process record for a pid.
	RunningApplication(pid int) (AppInfo, bool)

	// RunningApplications lists all running applications.
	RunningApplications() []AppInfo

	// ActivateApplication brings an application to the foreground.
	ActivateApplication(pid int) error

	// FrontmostPID returns the pid of the frontmost application, or 0.
	FrontmostPID() int

	// NativeWindowID maps a window element to its OS window identifier.
	// The second result is false when the mapping is unavailable — either
	// the OS does not expose it (it is resolved once at process start) or
	// the call failed for this element. Absence is a normal branch, not
	// an error: callers must be fully correct without it.
	NativeWindowID(el Element) (uint32, bool)

	// WindowInfo batch-reads a window element's identifying attributes.
	WindowInfo(el Element) (WindowInfo, error)
}

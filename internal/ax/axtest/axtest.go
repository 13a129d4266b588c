// Package axtest provides in-memory ax.System and ax.Element
// implementations for tests.
package axtest

import (
	"fmt"
	"sync/atomic"

	"github.com/uiprobe/uiprobe/internal/ax"
)

var nextID uint64

// Node is a scriptable fake accessibility element. Attribute values are
// stored in Attrs keyed by attribute name; a missing key reads as a
// failure, mirroring the live tree's behavior. Failures for present keys
// can be forced via Broken.
type Node struct {
	id     uint64
	Attrs  map[string]any
	Broken map[string]bool
}

// NewNode creates a node with the given attribute values.
func NewNode(attrs map[string]any) *Node {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &Node{id: atomic.AddUint64(&nextID, 1), Attrs: attrs}
}

// El creates a node with role, title and geometry — the common test shape.
func El(role, title string, x, y, w, h float64) *Node {
	return NewNode(map[string]any{
		ax.AttrRole:     role,
		ax.AttrTitle:    title,
		ax.AttrPosition: ax.Point{X: x, Y: y},
		ax.AttrSize:     ax.Size{Width: w, Height: h},
		ax.AttrEnabled:  true,
	})
}

// SetChildren sets the ordinary children list.
func (n *Node) SetChildren(children ...*Node) *Node {
	n.Attrs[ax.AttrChildren] = children
	return n
}

// SetWindows sets the window list.
func (n *Node) SetWindows(windows ...*Node) *Node {
	n.Attrs[ax.AttrWindows] = windows
	return n
}

// SetMainWindow sets the main-window reference.
func (n *Node) SetMainWindow(w *Node) *Node {
	n.Attrs[ax.AttrMainWindow] = w
	return n
}

// Break forces reads of the named attribute to fail.
func (n *Node) Break(attr string) *Node {
	if n.Broken == nil {
		n.Broken = map[string]bool{}
	}
	n.Broken[attr] = true
	return n
}

func (n *Node) Identity() uint64 { return n.id }

func (n *Node) read(attr string) (any, error) {
	if n.Broken[attr] {
		return nil, fmt.Errorf("read %s: %w", attr, ax.ErrAttributeUnavailable)
	}
	v, ok := n.Attrs[attr]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", attr, ax.ErrAttributeUnavailable)
	}
	return v, nil
}

func (n *Node) String(attr string) (string, error) {
	v, err := n.read(attr)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("attribute %s is %T, not string", attr, v)
	}
	return s, nil
}

func (n *Node) Bool(attr string) (bool, error) {
	v, err := n.read(attr)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("attribute %s is %T, not bool", attr, v)
	}
	return b, nil
}

func (n *Node) Point(attr string) (ax.Point, error) {
	v, err := n.read(attr)
	if err != nil {
		return ax.Point{}, err
	}
	p, ok := v.(ax.Point)
	if !ok {
		return ax.Point{}, fmt.Errorf("attribute %s is %T, not point", attr, v)
	}
	return p, nil
}

func (n *Node) Size(attr string) (ax.Size, error) {
	v, err := n.read(attr)
	if err != nil {
		return ax.Size{}, err
	}
	s, ok := v.(ax.Size)
	if !ok {
		return ax.Size{}, fmt.Errorf("attribute %s is %T, not size", attr, v)
	}
	return s, nil
}

func (n *Node) Element(attr string) (ax.Element, error) {
	v, err := n.read(attr)
	if err != nil {
		return nil, err
	}
	el, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("attribute %s is %T, not element", attr, v)
	}
	return el, nil
}

func (n *Node) Elements(attr string) ([]ax.Element, error) {
	v, err := n.read(attr)
	if err != nil {
		return nil, err
	}
	nodes, ok := v.([]*Node)
	if !ok {
		return nil, fmt.Errorf("attribute %s is %T, not element list", attr, v)
	}
	els := make([]ax.Element, len(nodes))
	for i, c := range nodes {
		els[i] = c
	}
	return els, nil
}

// System is a scriptable fake ax.System.
type System struct {
	TrustedValue bool
	Apps         map[int]ax.AppInfo
	Roots        map[int]*Node
	Frontmost    int
	// WindowIDs maps node identity to the OS window id for the fast path.
	// A nil map means the fast-path function is unavailable.
	WindowIDs map[uint64]uint32

	// Activated records pids passed to ActivateApplication.
	Activated []int
}

// NewSystem returns a trusted fake system with no applications.
func NewSystem() *System {
	return &System{
		TrustedValue: true,
		Apps:         map[int]ax.AppInfo{},
		Roots:        map[int]*Node{},
	}
}

func (s *System) Trusted(prompt bool) bool { return s.TrustedValue }

func (s *System) ApplicationElement(pid int) ax.Element {
	if root, ok := s.Roots[pid]; ok {
		return root
	}
	// Real systems hand back a handle even for unknown pids; reads on it
	// just fail.
	return NewNode(nil)
}

func (s *System) RunningApplication(pid int) (ax.AppInfo, bool) {
	app, ok := s.Apps[pid]
	return app, ok
}

func (s *System) RunningApplications() []ax.AppInfo {
	var apps []ax.AppInfo
	for _, a := range s.Apps {
		apps = append(apps, a)
	}
	return apps
}

func (s *System) ActivateApplication(pid int) error {
	s.Activated = append(s.Activated, pid)
	s.Frontmost = pid
	return nil
}

func (s *System) FrontmostPID() int { return s.Frontmost }

func (s *System) NativeWindowID(el ax.Element) (uint32, bool) {
	if s.WindowIDs == nil {
		return 0, false
	}
	id, ok := s.WindowIDs[el.Identity()]
	return id, ok
}

func (s *System) WindowInfo(el ax.Element) (ax.WindowInfo, error) {
	var info ax.WindowInfo
	var err error
	if info.Position, err = el.Point(ax.AttrPosition); err != nil {
		return info, err
	}
	if info.Size, err = el.Size(ax.AttrSize); err != nil {
		return info, err
	}
	info.Title, _ = el.String(ax.AttrTitle)
	info.Minimized, _ = el.Bool(ax.AttrMinimized)
	info.Main, _ = el.Bool(ax.AttrMain)
	info.Focused, _ = el.Bool(ax.AttrFocused)
	return info, nil
}

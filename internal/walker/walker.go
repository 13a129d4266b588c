// Package walker turns a live accessibility tree into an immutable
// snapshot.
package walker

import (
	"fmt"
	"strings"
	"time"

	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/model"
)

// MaxDepth is the hard recursion ceiling. The visited set is the primary
// cycle guard; the ceiling is an independent second safety net.
const MaxDepth = 100

// activationSettle is how long to wait after bringing the target app to
// the foreground before reading its tree.
const activationSettle = 300 * time.Millisecond

// Options configures one traversal.
type Options struct {
	PID int
	// AppName labels the snapshot; when empty the process record's name
	// is used if one exists.
	AppName string
	// VisibleOnly keeps only elements with valid on-screen geometry.
	VisibleOnly bool
	// Activate brings the target app to the foreground first. Applied
	// only when a confirmed, foreground-capable process record exists
	// and the app is not already frontmost.
	Activate bool
	// PromptPermission lets the OS show its accessibility grant dialog
	// if permission is missing.
	PromptPermission bool
}

// Walk traverses the accessibility tree of the target process and
// returns one snapshot. The only fatal error is a missing accessibility
// permission; every per-attribute read failure inside the tree is
// treated as "value absent". All traversal state is owned by this call.
func Walk(sys ax.System, opts Options) (*model.Snapshot, error) {
	start := time.Now()

	if !sys.Trusted(opts.PromptPermission) {
		return nil, ax.ErrPermissionDenied
	}

	label := opts.AppName
	app, known := sys.RunningApplication(opts.PID)
	if known && label == "" {
		label = app.Name
	}
	if label == "" {
		label = fmt.Sprintf("pid %d", opts.PID)
	}

	if opts.Activate && known && app.Foreground && sys.FrontmostPID() != opts.PID {
		if err := sys.ActivateApplication(opts.PID); err == nil {
			time.Sleep(activationSettle)
		}
	}

	// The root handle does not require a confirmed process record; for a
	// dead pid the first reads fail and the snapshot comes back empty.
	root := sys.ApplicationElement(opts.PID)

	w := &walk{
		visibleOnly: opts.VisibleOnly,
		visited:     make(map[uint64]bool),
		stats:       model.TraversalStats{RoleCounts: make(map[string]int)},
	}
	w.visit(root, nil, 0)

	model.SortElements(w.elements)
	w.stats.Count = len(w.elements)

	return &model.Snapshot{
		App:      label,
		Elements: w.elements,
		Stats:    w.stats,
		Elapsed:  time.Since(start),
	}, nil
}

type walk struct {
	visibleOnly bool
	visited     map[uint64]bool
	elements    []model.Element
	stats       model.TraversalStats
}

func (w *walk) visit(el ax.Element, path []int, depth int) {
	if el == nil || depth > MaxDepth {
		return
	}
	id := el.Identity()
	if w.visited[id] {
		return
	}
	w.visited[id] = true

	e := extract(el, path)
	w.collect(e)

	// Fixed recursion order: window list, main-window reference, then
	// ordinary children. The visited set makes revisits through the main
	// window or child edges no-ops.
	if windows, err := el.Elements(ax.AttrWindows); err == nil {
		for i, win := range windows {
			w.visit(win, childPath(path, -(i + 1)), depth+1)
		}
	}
	if main, err := el.Element(ax.AttrMainWindow); err == nil && main != nil {
		w.visit(main, childPath(path, model.PathMainWindow), depth+1)
	}
	if children, err := el.Elements(ax.AttrChildren); err == nil {
		for i, child := range children {
			w.visit(child, childPath(path, i), depth+1)
		}
	}
}

// collect applies the inclusion rule and statistics. Each exclusion is
// attributed to exactly one proximate cause: the role/text rule first,
// then visibility.
func (w *walk) collect(e model.Element) {
	if !ax.Interactable(e.Role) && e.Text == "" {
		w.stats.Excluded++
		if e.Role == "" {
			w.stats.NoText++
		} else {
			w.stats.NonInteractable++
		}
		return
	}
	if w.visibleOnly && !e.HasGeometry() {
		w.stats.Excluded++
		w.stats.NotVisible++
		return
	}

	if e.HasGeometry() {
		w.stats.VisibleCount++
	}
	if e.Text != "" {
		w.stats.WithText++
	} else {
		w.stats.WithoutText++
	}
	w.stats.RoleCounts[e.Role]++
	w.elements = append(w.elements, e)
}

// extract best-effort-reads one node. Any single failed attribute read
// leaves that value absent and never aborts the walk: elements vanish
// mid-traversal and a snapshot with a few holes beats no snapshot.
func extract(el ax.Element, path []int) model.Element {
	e := model.Element{Path: path, Handle: el}

	e.Role, _ = el.String(ax.AttrRole)

	var texts []string
	for _, attr := range ax.TextAttributes {
		if s, err := el.String(attr); err == nil && s != "" {
			texts = append(texts, s)
		}
	}
	e.Text = strings.Join(texts, " ")

	pos, posErr := el.Point(ax.AttrPosition)
	size, sizeErr := el.Size(ax.AttrSize)
	if posErr == nil && sizeErr == nil {
		e.ApplyGeometry(pos, size)
	}

	if enabled, err := el.Bool(ax.AttrEnabled); err == nil {
		e.Enabled = enabled
	}
	if focused, err := el.Bool(ax.AttrFocused); err == nil {
		e.Focused = focused
	}

	for _, attr := range ax.ExtraAttributes {
		if s, err := el.String(attr); err == nil && s != "" {
			if e.Attributes == nil {
				e.Attributes = make(map[string]string)
			}
			e.Attributes[attr] = s
		} else if b, err := el.Bool(attr); err == nil {
			if e.Attributes == nil {
				e.Attributes = make(map[string]string)
			}
			e.Attributes[attr] = fmt.Sprintf("%v", b)
		}
	}

	return e
}

// childPath returns path + [index] without aliasing the parent's slice.
func childPath(path []int, index int) []int {
	p := make([]int, len(path)+1)
	copy(p, path)
	p[len(path)] = index
	return p
}

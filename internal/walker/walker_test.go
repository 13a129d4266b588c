package walker

import (
	"errors"
	"testing"

	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/ax/axtest"
	"github.com/uiprobe/uiprobe/internal/model"
)

const testPID = 4242

func newSystem(root *axtest.Node) *axtest.System {
	sys := axtest.NewSystem()
	sys.Apps[testPID] = ax.AppInfo{PID: testPID, Name: "TestApp", Foreground: true}
	sys.Roots[testPID] = root
	return sys
}

func findByText(snap *model.Snapshot, text string) *model.Element {
	for i := range snap.Elements {
		if snap.Elements[i].Text == text {
			return &snap.Elements[i]
		}
	}
	return nil
}

func TestWalk_CollectsAndSorts(t *testing.T) {
	win := axtest.El("AXWindow", "Main", 0, 0, 800, 600).SetChildren(
		axtest.El("AXButton", "Lower", 10, 200, 80, 24),
		axtest.El("AXButton", "Upper", 10, 50, 80, 24),
	)
	sys := newSystem(axtest.NewNode(nil).SetWindows(win))

	snap, err := Walk(sys, Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if snap.App != "TestApp" {
		t.Fatalf("App = %q", snap.App)
	}
	if len(snap.Elements) != 3 {
		t.Fatalf("collected %d elements, want 3", len(snap.Elements))
	}
	// Top-to-bottom: window (y=0), Upper (y=50), Lower (y=200).
	if snap.Elements[1].Text != "Upper" || snap.Elements[2].Text != "Lower" {
		t.Fatalf("order = %q, %q", snap.Elements[1].Text, snap.Elements[2].Text)
	}
	if snap.Stats.Count != 3 {
		t.Fatalf("Count = %d", snap.Stats.Count)
	}
}

func TestWalk_PermissionDenied(t *testing.T) {
	sys := newSystem(axtest.NewNode(nil))
	sys.TrustedValue = false

	_, err := Walk(sys, Options{PID: testPID})
	if !errors.Is(err, ax.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestWalk_CycleTerminates(t *testing.T) {
	parent := axtest.El("AXWindow", "W", 0, 0, 100, 100)
	child := axtest.El("AXButton", "B", 10, 10, 20, 20)
	parent.SetChildren(child)
	child.SetChildren(parent) // cycle back to the window

	sys := newSystem(axtest.NewNode(nil).SetWindows(parent))
	snap, err := Walk(sys, Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Elements) != 2 {
		t.Fatalf("cycle produced %d elements, want 2", len(snap.Elements))
	}
}

// The main-window reference points at a window already seen through the
// window list; it must not be collected twice.
func TestWalk_MainWindowRevisitIsNoOp(t *testing.T) {
	win := axtest.El("AXWindow", "Main", 0, 0, 100, 100)
	root := axtest.NewNode(nil).SetWindows(win).SetMainWindow(win)

	snap, err := Walk(newSystem(root), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("window collected %d times", len(snap.Elements))
	}
	// The window-list route wins: index -(0+1).
	if p := snap.Elements[0].Path; len(p) != 1 || p[0] != -1 {
		t.Fatalf("path = %v", p)
	}
}

func TestWalk_MainWindowOnlyPath(t *testing.T) {
	win := axtest.El("AXWindow", "Main", 0, 0, 100, 100)
	root := axtest.NewNode(nil).SetMainWindow(win)

	snap, err := Walk(newSystem(root), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("collected %d elements", len(snap.Elements))
	}
	if p := snap.Elements[0].Path; len(p) != 1 || p[0] != model.PathMainWindow {
		t.Fatalf("path = %v", p)
	}
}

func TestWalk_ChildPaths(t *testing.T) {
	inner := axtest.El("AXButton", "Inner", 10, 10, 20, 20)
	win := axtest.El("AXWindow", "W", 0, 0, 100, 100).SetChildren(
		axtest.El("AXButton", "First", 5, 5, 10, 10),
		axtest.El("AXGroup", "Box", 0, 0, 50, 50).SetChildren(inner),
	)
	second := axtest.El("AXWindow", "W2", 500, 0, 100, 100)
	root := axtest.NewNode(nil).SetWindows(win, second)

	snap, err := Walk(newSystem(root), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string][]int{
		"W":     {-1},
		"First": {-1, 0},
		"Box":   {-1, 1},
		"Inner": {-1, 1, 0},
		"W2":    {-2},
	}
	for text, path := range want {
		e := findByText(snap, text)
		if e == nil {
			t.Fatalf("%q not collected", text)
		}
		if len(e.Path) != len(path) {
			t.Fatalf("%q path = %v, want %v", text, e.Path, path)
		}
		for i := range path {
			if e.Path[i] != path[i] {
				t.Fatalf("%q path = %v, want %v", text, e.Path, path)
			}
		}
	}
}

func TestWalk_ExclusionAttribution(t *testing.T) {
	win := axtest.El("AXWindow", "W", 0, 0, 200, 200).SetChildren(
		axtest.El("AXGroup", "", 0, 0, 100, 100),   // non-interactable, no text
		axtest.El("AXGroup", "Named", 0, 0, 50, 50), // text rescues it
		axtest.NewNode(map[string]any{ // role read fails entirely
			ax.AttrPosition: ax.Point{X: 1, Y: 1},
			ax.AttrSize:     ax.Size{Width: 5, Height: 5},
		}),
	)
	snap, err := Walk(newSystem(axtest.NewNode(nil).SetWindows(win)), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}

	if snap.Stats.Excluded != 3 { // app root + bare group + roleless node
		t.Fatalf("Excluded = %d", snap.Stats.Excluded)
	}
	if snap.Stats.NonInteractable != 1 {
		t.Fatalf("NonInteractable = %d", snap.Stats.NonInteractable)
	}
	if snap.Stats.NoText != 2 {
		t.Fatalf("NoText = %d", snap.Stats.NoText)
	}
	if findByText(snap, "Named") == nil {
		t.Fatal("text-bearing group was excluded")
	}
}

func TestWalk_VisibleOnly(t *testing.T) {
	sized := axtest.El("AXButton", "Sized", 10, 10, 80, 24)
	sizeless := axtest.NewNode(map[string]any{
		ax.AttrRole:  "AXButton",
		ax.AttrTitle: "Sizeless",
	})
	zeroSize := axtest.El("AXButton", "Zero", 10, 10, 0, 0)
	win := axtest.El("AXWindow", "W", 0, 0, 200, 200).SetChildren(sized, sizeless, zeroSize)
	sys := newSystem(axtest.NewNode(nil).SetWindows(win))

	snap, err := Walk(sys, Options{PID: testPID, VisibleOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if findByText(snap, "Sized") == nil {
		t.Fatal("geometry-bearing element excluded")
	}
	if findByText(snap, "Sizeless") != nil || findByText(snap, "Zero") != nil {
		t.Fatal("geometry-less element included under visible-only")
	}
	if snap.Stats.NotVisible != 2 {
		t.Fatalf("NotVisible = %d", snap.Stats.NotVisible)
	}

	// Without the filter both stay, counted as not-visible never.
	full, err := Walk(sys, Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if findByText(full, "Sizeless") == nil || findByText(full, "Zero") == nil {
		t.Fatal("geometry-less element missing from unfiltered walk")
	}
	if full.Stats.NotVisible != 0 {
		t.Fatalf("NotVisible = %d on unfiltered walk", full.Stats.NotVisible)
	}
}

func TestWalk_BrokenAttributeReadsTolerated(t *testing.T) {
	flaky := axtest.El("AXButton", "Flaky", 10, 10, 80, 24).
		Break(ax.AttrPosition).
		Break(ax.AttrEnabled)
	win := axtest.El("AXWindow", "W", 0, 0, 200, 200).SetChildren(flaky)

	snap, err := Walk(newSystem(axtest.NewNode(nil).SetWindows(win)), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	e := findByText(snap, "Flaky")
	if e == nil {
		t.Fatal("element with failing reads dropped")
	}
	if e.HasGeometry() {
		t.Fatal("geometry present despite failed position read")
	}
	if e.Enabled {
		t.Fatal("enabled defaulted to true on failed read")
	}
}

func TestWalk_TextConcatenationOrder(t *testing.T) {
	node := axtest.NewNode(map[string]any{
		ax.AttrRole:        "AXTextField",
		ax.AttrTitle:       "Name",
		ax.AttrValue:       "Ada",
		ax.AttrPlaceholder: "Enter name",
	})
	win := axtest.El("AXWindow", "W", 0, 0, 200, 200).SetChildren(node)

	snap, err := Walk(newSystem(axtest.NewNode(nil).SetWindows(win)), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	e := findByText(snap, "Name Ada Enter name")
	if e == nil {
		t.Fatalf("text not concatenated in attribute order: %+v", snap.Elements)
	}
}

func TestWalk_ExtraAttributes(t *testing.T) {
	node := axtest.NewNode(map[string]any{
		ax.AttrRole:     "AXButton",
		ax.AttrTitle:    "OK",
		ax.AttrSubrole:  "AXCloseButton",
		ax.AttrSelected: true,
	})
	win := axtest.El("AXWindow", "W", 0, 0, 200, 200).SetChildren(node)

	snap, err := Walk(newSystem(axtest.NewNode(nil).SetWindows(win)), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	e := findByText(snap, "OK")
	if e == nil {
		t.Fatal("element not collected")
	}
	if e.Attributes[ax.AttrSubrole] != "AXCloseButton" {
		t.Fatalf("Attributes = %v", e.Attributes)
	}
	if e.Attributes[ax.AttrSelected] != "true" {
		t.Fatalf("Attributes = %v", e.Attributes)
	}
}

func TestWalk_Activation(t *testing.T) {
	win := axtest.El("AXWindow", "W", 0, 0, 100, 100)
	sys := newSystem(axtest.NewNode(nil).SetWindows(win))
	sys.Frontmost = 1 // something else is frontmost

	if _, err := Walk(sys, Options{PID: testPID, Activate: true}); err != nil {
		t.Fatal(err)
	}
	if len(sys.Activated) != 1 || sys.Activated[0] != testPID {
		t.Fatalf("Activated = %v", sys.Activated)
	}
}

func TestWalk_NoActivationWhenFrontmost(t *testing.T) {
	win := axtest.El("AXWindow", "W", 0, 0, 100, 100)
	sys := newSystem(axtest.NewNode(nil).SetWindows(win))
	sys.Frontmost = testPID

	if _, err := Walk(sys, Options{PID: testPID, Activate: true}); err != nil {
		t.Fatal(err)
	}
	if len(sys.Activated) != 0 {
		t.Fatalf("frontmost app activated anyway: %v", sys.Activated)
	}
}

func TestWalk_NoActivationForBackgroundProcess(t *testing.T) {
	sys := newSystem(axtest.NewNode(nil))
	sys.Apps[testPID] = ax.AppInfo{PID: testPID, Name: "agent", Foreground: false}
	sys.Frontmost = 1

	if _, err := Walk(sys, Options{PID: testPID, Activate: true}); err != nil {
		t.Fatal(err)
	}
	if len(sys.Activated) != 0 {
		t.Fatalf("background process activated: %v", sys.Activated)
	}
}

func TestWalk_UnknownPIDLabel(t *testing.T) {
	sys := axtest.NewSystem()
	snap, err := Walk(sys, Options{PID: 999})
	if err != nil {
		t.Fatal(err)
	}
	if snap.App != "pid 999" {
		t.Fatalf("App = %q", snap.App)
	}
	if len(snap.Elements) != 0 {
		t.Fatalf("dead pid produced elements: %+v", snap.Elements)
	}
}

func TestWalk_DepthCeiling(t *testing.T) {
	// A linear chain twice the ceiling; without the guard the visited
	// set alone would happily collect all of it.
	leafCount := 2 * MaxDepth
	bottom := axtest.El("AXButton", "bottom", 0, float64(leafCount), 10, 10)
	node := bottom
	for i := leafCount - 1; i > 0; i-- {
		node = axtest.El("AXGroup", "g", 0, float64(i), 10, 10).SetChildren(node)
	}
	root := axtest.NewNode(nil).SetChildren(node)

	snap, err := Walk(newSystem(root), Options{PID: testPID})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Elements) > MaxDepth+1 {
		t.Fatalf("collected %d elements past the depth ceiling", len(snap.Elements))
	}
	if findByText(snap, "bottom") != nil {
		t.Fatal("element below the depth ceiling collected")
	}
}

package model

import (
	"testing"
)

func btn(text string, x, y float64) Element {
	return Element{Role: "AXButton", Text: text, X: f(x), Y: f(y), Width: f(80), Height: f(24)}
}

func TestDiffSnapshots_Identical(t *testing.T) {
	before := []Element{btn("OK", 10, 10), btn("Cancel", 100, 10)}
	after := []Element{btn("OK", 10, 10), btn("Cancel", 100, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Added)+len(diff.Removed)+len(diff.Modified) != 0 {
		t.Fatalf("identical snapshots produced a non-empty diff: %+v", diff)
	}
}

func TestDiffSnapshots_AddedAndRemoved(t *testing.T) {
	before := []Element{btn("OK", 10, 10)}
	after := []Element{btn("Save", 300, 200)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Removed) != 1 || diff.Removed[0].Text != "OK" {
		t.Fatalf("Removed = %+v", diff.Removed)
	}
	if len(diff.Added) != 1 || diff.Added[0].Text != "Save" {
		t.Fatalf("Added = %+v", diff.Added)
	}
	if len(diff.Modified) != 0 {
		t.Fatalf("Modified = %+v", diff.Modified)
	}
}

// A move within the pairing tolerance but beyond the attribute
// tolerance pairs, then reports the moved coordinate.
func TestDiffSnapshots_SmallMoveIsModification(t *testing.T) {
	before := []Element{btn("OK", 10, 10)}
	after := []Element{btn("OK", 13, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Fatalf("small move reported as add/remove: %+v", diff)
	}
	if len(diff.Modified) != 1 {
		t.Fatalf("Modified = %+v", diff.Modified)
	}
	changes := diff.Modified[0].Changes
	if len(changes) != 1 || changes[0].Attribute != "x" || changes[0].Old != "10" || changes[0].New != "13" {
		t.Fatalf("Changes = %+v", changes)
	}
}

func TestDiffSnapshots_LargeMoveIsAddRemove(t *testing.T) {
	before := []Element{btn("OK", 10, 10)}
	after := []Element{btn("OK", 30, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Modified) != 0 {
		t.Fatalf("over-tolerance move paired: %+v", diff.Modified)
	}
	if len(diff.Removed) != 1 || len(diff.Added) != 1 {
		t.Fatalf("diff = %+v", diff)
	}
}

// Movement below the attribute tolerance on a matched pair is not a
// change at all: the pair vanishes from the diff.
func TestDiffSnapshots_SubAttributeToleranceMove(t *testing.T) {
	before := []Element{btn("OK", 10, 10)}
	after := []Element{btn("OK", 11.5, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Added)+len(diff.Removed)+len(diff.Modified) != 0 {
		t.Fatalf("sub-tolerance move reported: %+v", diff)
	}
}

func TestDiffSnapshots_TextChange(t *testing.T) {
	before := []Element{btn("Hello", 10, 10)}
	after := []Element{btn("Hello World", 10, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Modified) != 1 {
		t.Fatalf("Modified = %+v", diff.Modified)
	}
	changes := diff.Modified[0].Changes
	if len(changes) != 1 || changes[0].Attribute != "text" {
		t.Fatalf("Changes = %+v", changes)
	}
	if changes[0].Inserted != " World" || changes[0].Removed != "" {
		t.Fatalf("text change = %+v", changes[0])
	}
}

// Elements in a different role never pair, however close.
func TestDiffSnapshots_RoleMismatchNeverPairs(t *testing.T) {
	before := []Element{{Role: "AXButton", Text: "OK", X: f(10), Y: f(10), Width: f(80), Height: f(24)}}
	after := []Element{{Role: "AXCheckBox", Text: "OK", X: f(10), Y: f(10), Width: f(80), Height: f(24)}}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Removed) != 1 || len(diff.Added) != 1 {
		t.Fatalf("cross-role pair formed: %+v", diff)
	}
}

// Two equally close candidates: the closer one is consumed by the first
// before element, the second before element pairs with what remains.
func TestDiffSnapshots_GreedyConsumption(t *testing.T) {
	before := []Element{btn("A", 10, 10), btn("B", 14, 10)}
	after := []Element{btn("A", 10, 10), btn("B", 14, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Added)+len(diff.Removed)+len(diff.Modified) != 0 {
		t.Fatalf("stable pair set produced diff: %+v", diff)
	}
}

func TestDiffSnapshots_NoGeometryPairsByRoleAndText(t *testing.T) {
	before := []Element{{Role: "AXMenuItem", Text: "Copy"}, {Role: "AXMenuItem", Text: "Paste"}}
	after := []Element{{Role: "AXMenuItem", Text: "Paste"}, {Role: "AXMenuItem", Text: "Cut"}}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Removed) != 1 || diff.Removed[0].Text != "Copy" {
		t.Fatalf("Removed = %+v", diff.Removed)
	}
	if len(diff.Added) != 1 || diff.Added[0].Text != "Cut" {
		t.Fatalf("Added = %+v", diff.Added)
	}
}

// A geometry element never pairs with a geometry-less one, even with the
// same role and text.
func TestDiffSnapshots_GeometryPresenceSplitsCandidates(t *testing.T) {
	before := []Element{{Role: "AXButton", Text: "OK"}}
	after := []Element{btn("OK", 10, 10)}

	diff := DiffSnapshots(before, after, DiffOptions{})
	if len(diff.Removed) != 1 || len(diff.Added) != 1 {
		t.Fatalf("diff = %+v", diff)
	}
}

// Paths are routes, not identity: the same element reached via a
// different route must not show up as changed.
func TestDiffSnapshots_PathIgnored(t *testing.T) {
	b := btn("OK", 10, 10)
	b.Path = []int{0, 1, 2}
	a := btn("OK", 10, 10)
	a.Path = []int{PathMainWindow, 2}

	diff := DiffSnapshots([]Element{b}, []Element{a}, DiffOptions{})
	if len(diff.Added)+len(diff.Removed)+len(diff.Modified) != 0 {
		t.Fatalf("path difference reported: %+v", diff)
	}
}

func TestDiffSnapshots_ZeroOptionsUseDefaults(t *testing.T) {
	before := []Element{btn("OK", 10, 10)}
	after := []Element{btn("OK", 14, 10)}

	// 4 units exceeds an explicit tolerance of 3 but fits the default 5.
	strict := DiffSnapshots(before, after, DiffOptions{PairingTolerance: 3, AttributeTolerance: 1})
	if len(strict.Removed) != 1 {
		t.Fatalf("explicit tolerance ignored: %+v", strict)
	}
	def := DiffSnapshots(before, after, DiffOptions{})
	if len(def.Modified) != 1 {
		t.Fatalf("defaults not applied: %+v", def)
	}
}

func TestDiffSnapshots_AddedSorted(t *testing.T) {
	after := []Element{btn("bottom", 10, 100), btn("top", 10, 5)}

	diff := DiffSnapshots(nil, after, DiffOptions{})
	if len(diff.Added) != 2 || diff.Added[0].Text != "top" {
		t.Fatalf("Added not sorted: %+v", diff.Added)
	}
}

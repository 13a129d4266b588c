package model

import (
	"math"
	"strconv"
)

// DiffOptions holds the two independent matching tolerances.
//
// PairingTolerance is the maximum positional distance (in screen units)
// for treating a before/after pair as the same logical element.
// AttributeTolerance is the maximum numeric drift for reporting a matched
// pair's coordinate as unchanged; it is deliberately finer than the
// pairing tolerance (default ratio 5:2) so that small real movements are
// still reported on pairs that matched.
type DiffOptions struct {
	PairingTolerance   float64
	AttributeTolerance float64
}

// DefaultDiffOptions returns the standard tolerances.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{PairingTolerance: 5.0, AttributeTolerance: 2.0}
}

// AttributeChange records one changed attribute of a matched pair.
// Coordinates are reported as formatted old/new values; text is reported
// as inserted/removed substrings from a character-level diff. The two
// representations are never both populated.
type AttributeChange struct {
	Attribute string `yaml:"attribute"          json:"attribute"`
	Old       string `yaml:"old,omitempty"      json:"old,omitempty"`
	New       string `yaml:"new,omitempty"      json:"new,omitempty"`
	Inserted  string `yaml:"inserted,omitempty" json:"inserted,omitempty"`
	Removed   string `yaml:"removed,omitempty"  json:"removed,omitempty"`
}

// ModifiedElement is a matched pair with at least one attribute change.
type ModifiedElement struct {
	Before  Element           `yaml:"before"  json:"before"`
	After   Element           `yaml:"after"   json:"after"`
	Changes []AttributeChange `yaml:"changes" json:"changes"`
}

// SnapshotDiff is the structural difference between two snapshots.
type SnapshotDiff struct {
	Added    []Element         `yaml:"added,omitempty"    json:"added,omitempty"`
	Removed  []Element         `yaml:"removed,omitempty"  json:"removed,omitempty"`
	Modified []ModifiedElement `yaml:"modified,omitempty" json:"modified,omitempty"`
}

// DiffSnapshots matches elements across two snapshots and reports what
// changed. Matching is greedy nearest-neighbor in one pass over before:
// candidates must share the before element's role; when both carry
// geometry the minimum-squared-distance candidate within
// PairingTolerance wins, when neither does an exact role+text equal
// candidate wins. A chosen candidate is consumed and never reconsidered.
// Unmatched before elements are removed, unmatched after elements added,
// both sorted top-to-bottom then left-to-right. Matched pairs with zero
// attribute changes are reported nowhere.
func DiffSnapshots(before, after []Element, opts DiffOptions) SnapshotDiff {
	if opts.PairingTolerance == 0 && opts.AttributeTolerance == 0 {
		opts = DefaultDiffOptions()
	}

	consumed := make([]bool, len(after))
	var diff SnapshotDiff

	for i := range before {
		b := &before[i]
		j := matchCandidate(b, after, consumed, opts.PairingTolerance)
		if j < 0 {
			diff.Removed = append(diff.Removed, before[i])
			continue
		}
		consumed[j] = true
		changes := compareElements(b, &after[j], opts.AttributeTolerance)
		if len(changes) > 0 {
			diff.Modified = append(diff.Modified, ModifiedElement{
				Before:  before[i],
				After:   after[j],
				Changes: changes,
			})
		}
	}

	for j := range after {
		if !consumed[j] {
			diff.Added = append(diff.Added, after[j])
		}
	}

	SortElements(diff.Added)
	SortElements(diff.Removed)
	return diff
}

// matchCandidate finds the index of the unconsumed after element pairing
// with b, or -1.
func matchCandidate(b *Element, after []Element, consumed []bool, tolerance float64) int {
	if b.HasGeometry() {
		best := -1
		bestDist := tolerance * tolerance
		for j := range after {
			a := &after[j]
			if consumed[j] || a.Role != b.Role || !a.HasGeometry() {
				continue
			}
			dx := *a.X - *b.X
			dy := *a.Y - *b.Y
			if d := dx*dx + dy*dy; d <= bestDist {
				best, bestDist = j, d
			}
		}
		return best
	}
	for j := range after {
		a := &after[j]
		if consumed[j] || a.Role != b.Role || a.HasGeometry() {
			continue
		}
		if a.Text == b.Text {
			return j
		}
	}
	return -1
}

func compareElements(b, a *Element, tolerance float64) []AttributeChange {
	var changes []AttributeChange
	changes = appendCoordChange(changes, "x", b.X, a.X, tolerance)
	changes = appendCoordChange(changes, "y", b.Y, a.Y, tolerance)
	changes = appendCoordChange(changes, "width", b.Width, a.Width, tolerance)
	changes = appendCoordChange(changes, "height", b.Height, a.Height, tolerance)
	if b.Text != a.Text {
		ins, rem := TextDiff(b.Text, a.Text)
		changes = append(changes, AttributeChange{
			Attribute: "text",
			Inserted:  ins,
			Removed:   rem,
		})
	}
	return changes
}

func appendCoordChange(changes []AttributeChange, name string, old, new *float64, tolerance float64) []AttributeChange {
	switch {
	case old == nil && new == nil:
		return changes
	case old != nil && new != nil && math.Abs(*old-*new) <= tolerance:
		return changes
	}
	return append(changes, AttributeChange{
		Attribute: name,
		Old:       formatCoord(old),
		New:       formatCoord(new),
	})
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

package model

import (
	"sort"
	"time"
)

// TraversalStats summarizes one traversal. Each excluded node is
// attributed to exactly one cause: a node failing the role/text rule
// counts under NonInteractable when its role is in the non-interactable
// set, under NoText when its role was unreadable; a node passing the
// role/text rule but lacking valid geometry under visible-only filtering
// counts under NotVisible.
type TraversalStats struct {
	Count           int `yaml:"count"             json:"count"`
	Excluded        int `yaml:"excluded"          json:"excluded"`
	NonInteractable int `yaml:"non_interactable"  json:"non_interactable"`
	NoText          int `yaml:"no_text"           json:"no_text"`
	NotVisible      int `yaml:"not_visible"       json:"not_visible"`
	VisibleCount    int `yaml:"visible_count"     json:"visible_count"`
	WithText        int `yaml:"with_text"         json:"with_text"`
	WithoutText     int `yaml:"without_text"      json:"without_text"`

	RoleCounts map[string]int `yaml:"role_counts,omitempty" json:"role_counts,omitempty"`
}

// Snapshot is one complete traversal's output at a point in time.
type Snapshot struct {
	App      string         `yaml:"app"        json:"app"`
	Elements []Element      `yaml:"elements"   json:"elements"`
	Stats    TraversalStats `yaml:"stats"      json:"stats"`
	Elapsed  time.Duration  `yaml:"elapsed_ns" json:"elapsed_ns"`
}

// SortElements orders elements top-to-bottom then left-to-right.
// Elements without coordinates sort last, preserving their relative
// order.
func SortElements(els []Element) {
	sort.SliceStable(els, func(i, j int) bool {
		return elementLess(&els[i], &els[j])
	})
}

func elementLess(a, b *Element) bool {
	switch {
	case a.Y == nil:
		return false
	case b.Y == nil:
		return true
	case *a.Y != *b.Y:
		return *a.Y < *b.Y
	}
	switch {
	case a.X == nil:
		return false
	case b.X == nil:
		return true
	}
	return *a.X < *b.X
}

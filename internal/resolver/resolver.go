// Package resolver bridges OS window identifiers and accessibility
// window handles. The two identifier spaces are assigned independently
// by the compositor and the accessibility layer; when the OS exposes no
// direct mapping the bridge falls back to heuristic scoring against the
// window geometry the caller already knows.
package resolver

import (
	"math"

	"github.com/uiprobe/uiprobe/internal/ax"
	"github.com/uiprobe/uiprobe/internal/model"
)

// ScoreCeiling is the maximum heuristic score still accepted as a match.
// It absorbs window chrome and shadow offsets and brief animation lag
// while rejecting same-size windows on another monitor, which score in
// the thousands.
const ScoreCeiling = 1000.0

// titleMatchFactor halves a candidate's score on an exact title match.
const titleMatchFactor = 0.5

// Resolve finds the accessibility window handle matching an OS window
// identifier. A nil result means no match; that is an expected outcome,
// not an error, and Resolve never fails otherwise.
func Resolve(sys ax.System, pid int, windowID uint32, expected model.Bounds, expectedTitle string) *model.WindowIdentity {
	candidates := candidateWindows(sys, pid)
	if len(candidates) == 0 {
		return nil
	}

	// Fast path: a direct handle-to-id mapping, when the OS exposes one.
	// An exact id match needs no scoring. Absence of the mapping is a
	// normal branch; the heuristic below must stand on its own.
	for _, cand := range candidates {
		if id, ok := sys.NativeWindowID(cand); ok && id == windowID {
			return identity(sys, cand, windowID)
		}
	}

	var best ax.Element
	bestScore := math.Inf(1)
	for _, cand := range candidates {
		info, err := sys.WindowInfo(cand)
		if err != nil {
			continue
		}
		score := distance(info.Position.X, info.Position.Y, expected.X, expected.Y) +
			distance(info.Size.Width, info.Size.Height, expected.Width, expected.Height)
		if expectedTitle != "" && info.Title == expectedTitle {
			score *= titleMatchFactor
		}
		if score < bestScore {
			best, bestScore = cand, score
		}
	}
	// A sole candidate is an unambiguous answer even when its geometry
	// is stale, unreadable, or the score arbitrarily bad.
	if len(candidates) == 1 {
		return identity(sys, candidates[0], windowID)
	}
	if best == nil || bestScore >= ScoreCeiling {
		return nil
	}
	return identity(sys, best, windowID)
}

// candidateWindows enumerates the app's window handles. The windows
// attribute is transiently empty right after a window appears; the
// children list filtered to the window role covers that staleness race.
func candidateWindows(sys ax.System, pid int) []ax.Element {
	app := sys.ApplicationElement(pid)
	if app == nil {
		return nil
	}
	if windows, err := app.Elements(ax.AttrWindows); err == nil && len(windows) > 0 {
		return windows
	}
	children, err := app.Elements(ax.AttrChildren)
	if err != nil {
		return nil
	}
	var windows []ax.Element
	for _, child := range children {
		if role, err := child.String(ax.AttrRole); err == nil && role == ax.RoleWindow {
			windows = append(windows, child)
		}
	}
	return windows
}

func identity(sys ax.System, win ax.Element, windowID uint32) *model.WindowIdentity {
	wi := &model.WindowIdentity{Handle: win, WindowID: windowID}
	if info, err := sys.WindowInfo(win); err == nil {
		wi.Bounds = model.Bounds{
			X:      info.Position.X,
			Y:      info.Position.Y,
			Width:  info.Size.Width,
			Height: info.Size.Height,
		}
		wi.Title = info.Title
		wi.Minimized = info.Minimized
		wi.Main = info.Main
		wi.Focused = info.Focused
	}
	return wi
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// Package runner sequences traversals, input simulation, diffing, and
// highlighting around one primary action.
package runner

import (
	"time"

	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/input"
	"github.com/uiprobe/uiprobe/internal/launcher"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/ui"
)

// ActionKind discriminates the primary action.
type ActionKind string

const (
	// ActionOpen launches or activates an application by identifier.
	ActionOpen ActionKind = "open"
	// ActionInput performs one input operation.
	ActionInput ActionKind = "input"
	// ActionTraverse takes snapshots with no side-effecting step.
	ActionTraverse ActionKind = "traverse"
)

// Action is the primary action of one run.
type Action struct {
	Kind       ActionKind `yaml:"kind"                 json:"kind"`
	Identifier string     `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Input      *input.Op  `yaml:"input,omitempty"      json:"input,omitempty"`
}

// Options configures which optional steps run and how.
type Options struct {
	// PID targets traversal when the action doesn't produce a pid.
	PID            int
	TraverseBefore bool
	TraverseAfter  bool
	// ShowDiff forces both traversals on regardless of their individual
	// settings.
	ShowDiff    bool
	VisibleOnly bool
	Highlight   bool
	// AwaitHighlight blocks the run until the highlight session's
	// windows are torn down instead of dispatching fire-and-forget.
	AwaitHighlight    bool
	HighlightDuration time.Duration
	// SettleDelay runs between the primary action and the after
	// traversal, giving the target UI time to react.
	SettleDelay time.Duration
	Diff        model.DiffOptions
}

// ActionResult aggregates every step's outcome independently: one
// field's absence or error never implies another step didn't run.
type ActionResult struct {
	Error          string              `yaml:"error,omitempty"           json:"error,omitempty"`
	Open           *launcher.OpenedApp `yaml:"open,omitempty"            json:"open,omitempty"`
	OpenError      string              `yaml:"open_error,omitempty"      json:"open_error,omitempty"`
	Before         *model.Snapshot     `yaml:"before,omitempty"          json:"before,omitempty"`
	BeforeError    string              `yaml:"before_error,omitempty"    json:"before_error,omitempty"`
	InputError     string              `yaml:"input_error,omitempty"     json:"input_error,omitempty"`
	After          *model.Snapshot     `yaml:"after,omitempty"           json:"after,omitempty"`
	AfterError     string              `yaml:"after_error,omitempty"     json:"after_error,omitempty"`
	Diff           *model.SnapshotDiff `yaml:"diff,omitempty"            json:"diff,omitempty"`
	DiffError      string              `yaml:"diff_error,omitempty"      json:"diff_error,omitempty"`
	HighlightError string              `yaml:"highlight_error,omitempty" json:"highlight_error,omitempty"`
}

// Traverser takes one snapshot of a process. activate requests bringing
// the app frontmost first.
type Traverser interface {
	Traverse(pid int, visibleOnly, activate bool) (*model.Snapshot, error)
}

// Runner wires the orchestrator's collaborators together. All methods
// must run on the UI context: traversal and resolution are read-only in
// principle, but activation, input, and overlay windows are not.
type Runner struct {
	traverser  Traverser
	launcher   launcher.Launcher
	sim        input.Simulator
	highlights *highlight.Manager
}

// New creates a Runner. Collaborators a deployment lacks may be nil;
// steps needing them record an error instead of running.
func New(traverser Traverser, launch launcher.Launcher, sim input.Simulator, highlights *highlight.Manager) *Runner {
	return &Runner{traverser: traverser, launcher: launch, sim: sim, highlights: highlights}
}

// Run executes the step sequence around one primary action. Ordering:
// launch/activate, before-traversal, primary action, settle delay,
// after-traversal, diff, highlight. Each optional step's failure is
// recorded in the result and never suppresses an unrelated later step.
func (r *Runner) Run(tok ui.Token, action Action, opts Options) *ActionResult {
	res := &ActionResult{}

	if opts.ShowDiff {
		opts.TraverseBefore = true
		opts.TraverseAfter = true
	}

	pid := opts.PID
	if action.Kind == ActionOpen {
		if r.launcher == nil {
			res.OpenError = "launcher not available"
		} else if opened, err := r.launcher.Open(action.Identifier, true); err != nil {
			res.OpenError = err.Error()
		} else {
			res.Open = &opened
			pid = opened.PID
		}
		if pid == 0 {
			// Nothing to traverse or act on without a target.
			return res
		}
	}
	if pid == 0 {
		res.Error = "no target pid: action produced none and none was configured"
		return res
	}

	if opts.TraverseBefore {
		// A successful open already activated the app.
		activate := action.Kind != ActionOpen
		if snap, err := r.traverse(pid, opts.VisibleOnly, activate); err != nil {
			res.BeforeError = err.Error()
		} else {
			res.Before = snap
		}
	}

	if action.Kind == ActionInput {
		switch {
		case r.sim == nil:
			res.InputError = "input simulation not available"
		case action.Input == nil:
			res.InputError = "no input operation specified"
		default:
			if err := input.Perform(r.sim, tok, *action.Input); err != nil {
				res.InputError = err.Error()
			}
		}
	}

	if opts.SettleDelay > 0 {
		time.Sleep(opts.SettleDelay)
	}

	if opts.TraverseAfter {
		if snap, err := r.traverse(pid, opts.VisibleOnly, false); err != nil {
			res.AfterError = err.Error()
		} else {
			res.After = snap
		}
	}

	if opts.ShowDiff {
		if res.Before != nil && res.After != nil {
			diff := model.DiffSnapshots(res.Before.Elements, res.After.Elements, opts.Diff)
			res.Diff = &diff
		} else {
			res.DiffError = "diff skipped: before or after snapshot unavailable"
		}
	}

	if opts.Highlight && res.After != nil {
		r.dispatchHighlight(tok, res, opts)
	}

	return res
}

func (r *Runner) traverse(pid int, visibleOnly, activate bool) (*model.Snapshot, error) {
	if r.traverser == nil {
		return nil, errNoTraverser
	}
	return r.traverser.Traverse(pid, visibleOnly, activate)
}

func (r *Runner) dispatchHighlight(tok ui.Token, res *ActionResult, opts Options) {
	if r.highlights == nil {
		res.HighlightError = "highlighting not available"
		return
	}

	var overlays []highlight.Overlay
	if res.Diff != nil {
		overlays = highlight.FromDiff(res.Diff)
	} else {
		for i := range res.After.Elements {
			e := &res.After.Elements[i]
			if !e.HasGeometry() {
				continue
			}
			overlays = append(overlays, highlight.Overlay{Frame: e.Frame(), Style: highlight.DefaultStyle()})
		}
	}
	if len(overlays) == 0 {
		return
	}

	var err error
	if opts.AwaitHighlight {
		err = r.highlights.Present(tok, overlays, opts.HighlightDuration)
	} else {
		_, err = r.highlights.Launch(tok, overlays, opts.HighlightDuration)
	}
	if err != nil {
		res.HighlightError = err.Error()
	}
}

type noTraverserError struct{}

func (noTraverserError) Error() string { return "traversal not available" }

var errNoTraverser = noTraverserError{}

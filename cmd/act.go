package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/input"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/platform"
	"github.com/uiprobe/uiprobe/internal/runner"
	"github.com/uiprobe/uiprobe/internal/ui"
	"github.com/uiprobe/uiprobe/internal/walker"
)

var actCmd = &cobra.Command{
	Use:   "act",
	Short: "Perform an action with snapshots, diff, and highlighting around it",
	Long: `Run one primary action against an application, optionally bracketed by
before/after snapshots, a diff of the two, and on-screen highlighting of
what changed. Every step's outcome is reported independently.

Examples:
  uiprobe act --app TextEdit --click 420,315 --show-diff
  uiprobe act --app Safari --key cmd+t --show-diff --highlight
  uiprobe act --open TextEdit --after
  uiprobe act --pid 4242 --type "hello" --settle 500ms`,
	RunE: runAct,
}

func init() {
	rootCmd.AddCommand(actCmd)
	actCmd.Flags().Int("pid", 0, "Target process by PID")
	actCmd.Flags().String("app", "", "Target application by name or bundle ID")
	actCmd.Flags().String("open", "", "Open this application as the primary action")

	actCmd.Flags().String("click", "", "Click at x,y")
	actCmd.Flags().String("double-click", "", "Double-click at x,y")
	actCmd.Flags().String("right-click", "", "Right-click at x,y")
	actCmd.Flags().String("move", "", "Move the pointer to x,y")
	actCmd.Flags().String("drag-from", "", "Drag start at x,y (requires --drag-to)")
	actCmd.Flags().String("drag-to", "", "Drag end at x,y")
	actCmd.Flags().String("button", "left", "Mouse button for --drag-from: left, right, middle")
	actCmd.Flags().Duration("drag-duration", 300*time.Millisecond, "Duration of the drag gesture")
	actCmd.Flags().String("key", "", "Press a key combo (e.g. 'cmd+shift+s', 'enter')")
	actCmd.Flags().String("type", "", "Type text into the focused element")

	actCmd.Flags().Bool("before", false, "Take a snapshot before the action")
	actCmd.Flags().Bool("after", false, "Take a snapshot after the action")
	actCmd.Flags().Bool("show-diff", false, "Diff before/after snapshots (forces both)")
	actCmd.Flags().Bool("visible-only", false, "Only include elements with on-screen geometry")
	actCmd.Flags().Duration("settle", 0, "Delay between the action and the after snapshot")
	actCmd.Flags().Float64("pairing-tolerance", model.DefaultDiffOptions().PairingTolerance,
		"Max per-axis movement for two elements to count as the same element")
	actCmd.Flags().Float64("attribute-tolerance", model.DefaultDiffOptions().AttributeTolerance,
		"Geometry change below this is not reported as a modification")

	actCmd.Flags().Bool("highlight", false, "Highlight changed (or all) elements on screen")
	actCmd.Flags().Bool("await-highlight", false, "Block until highlight overlays are torn down")
	actCmd.Flags().Duration("highlight-duration", highlight.DefaultDuration, "How long overlays stay on screen")
}

func runAct(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")
	openTarget, _ := cmd.Flags().GetString("open")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	action, err := buildAction(cmd, openTarget)
	if err != nil {
		return err
	}
	if action.Kind != runner.ActionOpen {
		if pid, err = resolvePID(provider, pid, appName); err != nil {
			return err
		}
	}

	opts := runner.Options{PID: pid}
	opts.TraverseBefore, _ = cmd.Flags().GetBool("before")
	opts.TraverseAfter, _ = cmd.Flags().GetBool("after")
	opts.ShowDiff, _ = cmd.Flags().GetBool("show-diff")
	opts.VisibleOnly, _ = cmd.Flags().GetBool("visible-only")
	opts.SettleDelay, _ = cmd.Flags().GetDuration("settle")
	opts.Highlight, _ = cmd.Flags().GetBool("highlight")
	opts.AwaitHighlight, _ = cmd.Flags().GetBool("await-highlight")
	opts.HighlightDuration, _ = cmd.Flags().GetDuration("highlight-duration")
	opts.Diff.PairingTolerance, _ = cmd.Flags().GetFloat64("pairing-tolerance")
	opts.Diff.AttributeTolerance, _ = cmd.Flags().GetFloat64("attribute-tolerance")

	var highlights *highlight.Manager
	if provider.Presenter != nil {
		highlights = highlight.NewManager(provider.Presenter, 0)
	}
	r := runner.New(
		walker.Traverser{Sys: provider.System},
		provider.Launcher,
		provider.Input,
		highlights,
	)
	res := r.Run(ui.Init(), action, opts)
	return output.Print(res)
}

// buildAction translates the mutually exclusive action flags into one
// primary action. No action flag at all is valid: the run is then pure
// observation (snapshots and diff only).
func buildAction(cmd *cobra.Command, openTarget string) (runner.Action, error) {
	if openTarget != "" {
		return runner.Action{Kind: runner.ActionOpen, Identifier: openTarget}, nil
	}

	op, err := buildInputOp(cmd)
	if err != nil {
		return runner.Action{}, err
	}
	if op == nil {
		return runner.Action{Kind: runner.ActionTraverse}, nil
	}
	return runner.Action{Kind: runner.ActionInput, Input: op}, nil
}

func buildInputOp(cmd *cobra.Command) (*input.Op, error) {
	var ops []*input.Op

	pointFlag := func(name string, kind input.OpKind) error {
		s, _ := cmd.Flags().GetString(name)
		if s == "" {
			return nil
		}
		x, y, err := parsePoint(s)
		if err != nil {
			return err
		}
		ops = append(ops, &input.Op{Kind: kind, Point: input.Point{X: x, Y: y}})
		return nil
	}
	if err := pointFlag("click", input.OpClick); err != nil {
		return nil, err
	}
	if err := pointFlag("double-click", input.OpDoubleClick); err != nil {
		return nil, err
	}
	if err := pointFlag("right-click", input.OpRightClick); err != nil {
		return nil, err
	}
	if err := pointFlag("move", input.OpMove); err != nil {
		return nil, err
	}

	if from, _ := cmd.Flags().GetString("drag-from"); from != "" {
		to, _ := cmd.Flags().GetString("drag-to")
		if to == "" {
			return nil, fmt.Errorf("--drag-from requires --drag-to")
		}
		fx, fy, err := parsePoint(from)
		if err != nil {
			return nil, err
		}
		tx, ty, err := parsePoint(to)
		if err != nil {
			return nil, err
		}
		buttonName, _ := cmd.Flags().GetString("button")
		button, err := input.ParseButton(buttonName)
		if err != nil {
			return nil, err
		}
		duration, _ := cmd.Flags().GetDuration("drag-duration")
		ops = append(ops, &input.Op{
			Kind:     input.OpDrag,
			Point:    input.Point{X: fx, Y: fy},
			To:       input.Point{X: tx, Y: ty},
			Button:   button,
			Duration: duration,
		})
	}

	if combo, _ := cmd.Flags().GetString("key"); combo != "" {
		code, modifiers, err := input.ParseKeyCombo(combo)
		if err != nil {
			return nil, err
		}
		ops = append(ops, &input.Op{Kind: input.OpKeyPress, KeyCode: code, Modifiers: modifiers})
	}
	if text, _ := cmd.Flags().GetString("type"); text != "" {
		ops = append(ops, &input.Op{Kind: input.OpTypeText, Text: text})
	}

	switch len(ops) {
	case 0:
		return nil, nil
	case 1:
		return ops[0], nil
	default:
		return nil, fmt.Errorf("exactly one action flag may be given")
	}
}

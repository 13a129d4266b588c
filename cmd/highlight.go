package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/highlight"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/platform"
	"github.com/uiprobe/uiprobe/internal/ui"
	"github.com/uiprobe/uiprobe/internal/walker"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Draw borders around an application's elements",
	Long: `Draw transient overlay borders around a running application's elements,
or around the changes between two saved snapshots. The command blocks
until the overlays are torn down.

Examples:
  uiprobe highlight --app Safari --duration 3s
  uiprobe highlight --diff before.json,after.json`,
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	highlightCmd.Flags().Int("pid", 0, "Target process by PID")
	highlightCmd.Flags().String("app", "", "Target application by name or bundle ID")
	highlightCmd.Flags().String("diff", "", "Highlight a diff of two snapshot files: before.json,after.json")
	highlightCmd.Flags().Duration("duration", highlight.DefaultDuration, "How long overlays stay on screen")
	highlightCmd.Flags().Bool("visible-only", true, "Only highlight elements with on-screen geometry")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")
	diffArg, _ := cmd.Flags().GetString("diff")
	duration, _ := cmd.Flags().GetDuration("duration")
	visibleOnly, _ := cmd.Flags().GetBool("visible-only")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Presenter == nil {
		return fmt.Errorf("highlighting not available on this platform")
	}

	var overlays []highlight.Overlay
	if diffArg != "" {
		if overlays, err = diffOverlays(diffArg); err != nil {
			return err
		}
	} else {
		if pid, err = resolvePID(provider, pid, appName); err != nil {
			return err
		}
		snap, err := walker.Walk(provider.System, walker.Options{
			PID:              pid,
			VisibleOnly:      visibleOnly,
			PromptPermission: true,
		})
		if err != nil {
			return err
		}
		for i := range snap.Elements {
			e := &snap.Elements[i]
			if !e.HasGeometry() {
				continue
			}
			overlays = append(overlays, highlight.Overlay{Frame: e.Frame(), Style: highlight.DefaultStyle()})
		}
	}
	if len(overlays) == 0 {
		return fmt.Errorf("nothing to highlight")
	}

	manager := highlight.NewManager(provider.Presenter, 0)
	return manager.Present(ui.Init(), overlays, duration)
}

func diffOverlays(arg string) ([]highlight.Overlay, error) {
	paths := strings.Split(arg, ",")
	if len(paths) != 2 {
		return nil, fmt.Errorf("invalid --diff value %q: expected before.json,after.json", arg)
	}

	before, err := model.LoadSnapshot(paths[0])
	if err != nil {
		return nil, err
	}
	after, err := model.LoadSnapshot(paths[1])
	if err != nil {
		return nil, err
	}
	diff := model.DiffSnapshots(before.Elements, after.Elements, model.DiffOptions{})
	return highlight.FromDiff(&diff), nil
}

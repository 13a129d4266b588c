package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/platform"
	"github.com/uiprobe/uiprobe/internal/walker"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Walk an application's accessibility tree into a snapshot",
	Long: `Walk the accessibility tree of a running application and output a flat,
ordered snapshot of its interactable elements.

Examples:
  uiprobe snapshot --app Safari
  uiprobe snapshot --pid 4242 --visible-only
  uiprobe snapshot --app TextEdit --out before.json`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().Int("pid", 0, "Target process by PID")
	snapshotCmd.Flags().String("app", "", "Target application by name or bundle ID")
	snapshotCmd.Flags().Bool("visible-only", false, "Only include elements with on-screen geometry")
	snapshotCmd.Flags().Bool("activate", false, "Bring the application to the foreground first")
	snapshotCmd.Flags().String("out", "", "Also save the snapshot as JSON to this path")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")
	visibleOnly, _ := cmd.Flags().GetBool("visible-only")
	activate, _ := cmd.Flags().GetBool("activate")
	outPath, _ := cmd.Flags().GetString("out")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	pid, err = resolvePID(provider, pid, appName)
	if err != nil {
		return err
	}

	snap, err := walker.Walk(provider.System, walker.Options{
		PID:              pid,
		AppName:          appName,
		VisibleOnly:      visibleOnly,
		Activate:         activate,
		PromptPermission: true,
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := model.SaveSnapshot(outPath, snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	return output.Print(snap)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/platform"
	"github.com/uiprobe/uiprobe/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an OS window ID to an accessibility window",
	Long: `Find the accessibility window handle matching an OS window identifier,
using the window's last known bounds (and optionally title) when the OS
exposes no direct mapping.

Examples:
  uiprobe resolve --app Safari --window-id 1193 --bounds 0,25,1440,875
  uiprobe resolve --pid 4242 --window-id 1193 --bounds 100,100,800,600 --title "Untitled"`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Int("pid", 0, "Owning process by PID")
	resolveCmd.Flags().String("app", "", "Owning application by name or bundle ID")
	resolveCmd.Flags().Uint32("window-id", 0, "OS window identifier to resolve")
	resolveCmd.Flags().String("bounds", "", "Expected window bounds as x,y,w,h")
	resolveCmd.Flags().String("title", "", "Expected window title")
	resolveCmd.MarkFlagRequired("window-id")
	resolveCmd.MarkFlagRequired("bounds")
}

func runResolve(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	appName, _ := cmd.Flags().GetString("app")
	windowID, _ := cmd.Flags().GetUint32("window-id")
	boundsStr, _ := cmd.Flags().GetString("bounds")
	title, _ := cmd.Flags().GetString("title")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	pid, err = resolvePID(provider, pid, appName)
	if err != nil {
		return err
	}
	bounds, err := parseBounds(boundsStr)
	if err != nil {
		return err
	}

	identity := resolver.Resolve(provider.System, pid, windowID, bounds, title)
	if identity == nil {
		return fmt.Errorf("no accessibility window matches window id %d", windowID)
	}
	return output.Print(identity)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/platform"
)

var openCmd = &cobra.Command{
	Use:   "open <identifier>",
	Short: "Open or activate an application",
	Long: `Open an application by name, bundle ID, or path. A running instance is
activated instead of launching a second copy.

Examples:
  uiprobe open Safari
  uiprobe open com.apple.TextEdit`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().Bool("activate", true, "Bring the application to the foreground")
}

func runOpen(cmd *cobra.Command, args []string) error {
	activate, _ := cmd.Flags().GetBool("activate")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Launcher == nil {
		return fmt.Errorf("launching not available on this platform")
	}

	opened, err := provider.Launcher.Open(args[0], activate)
	if err != nil {
		return err
	}
	return output.Print(opened)
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/output"
	"github.com/uiprobe/uiprobe/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List running applications",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("all", false, "Include background-only processes")
}

type listedApp struct {
	PID       int    `yaml:"pid"                 json:"pid"`
	Name      string `yaml:"name"                json:"name"`
	BundleID  string `yaml:"bundle_id,omitempty" json:"bundle_id,omitempty"`
	Frontmost bool   `yaml:"frontmost,omitempty" json:"frontmost,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	var entries []listedApp
	for _, app := range provider.System.RunningApplications() {
		if !all && !app.Foreground {
			continue
		}
		entries = append(entries, listedApp{
			PID:       app.PID,
			Name:      app.Name,
			BundleID:  app.BundleID,
			Frontmost: app.Frontmost,
		})
	}
	return output.Print(entries)
}

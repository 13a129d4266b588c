package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uiprobe/uiprobe/internal/model"
	"github.com/uiprobe/uiprobe/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Diff two saved snapshots",
	Long: `Compare two snapshots previously written by 'uiprobe snapshot --out' and
report added, removed, and modified elements.

Examples:
  uiprobe diff before.json after.json
  uiprobe diff before.json after.json --pairing-tolerance 10`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Float64("pairing-tolerance", model.DefaultDiffOptions().PairingTolerance,
		"Max per-axis movement for two elements to count as the same element")
	diffCmd.Flags().Float64("attribute-tolerance", model.DefaultDiffOptions().AttributeTolerance,
		"Geometry change below this is not reported as a modification")
}

func runDiff(cmd *cobra.Command, args []string) error {
	before, err := model.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	after, err := model.LoadSnapshot(args[1])
	if err != nil {
		return err
	}

	opts := model.DiffOptions{}
	opts.PairingTolerance, _ = cmd.Flags().GetFloat64("pairing-tolerance")
	opts.AttributeTolerance, _ = cmd.Flags().GetFloat64("attribute-tolerance")

	diff := model.DiffSnapshots(before.Elements, after.Elements, opts)
	return output.Print(diff)
}

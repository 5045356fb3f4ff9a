package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/report"
)

var reportOpts = report.DefaultOptions()

var reportCmd = &cobra.Command{
	Use:   "report <folder>",
	Short: "Generate synthetic CANoe XML test reports",
	Long: `Generates a batch of CANoe-style XML test reports into a folder,
for exercising report-processing pipelines.

Reports carry weighted verdicts (pass/fail/inconclusive), per-step
timestamps, and failure detail tables. With --seed, generation is
reproducible: file i uses seed + i.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVarP(&reportOpts.Count, "count", "c", reportOpts.Count, "Number of XML files to generate")
	reportCmd.Flags().IntVarP(&reportOpts.Groups, "groups", "g", reportOpts.Groups, "Test groups per file")
	reportCmd.Flags().BoolVarP(&reportOpts.Nested, "nested", "n", false, "Enable nested test groups")
	reportCmd.Flags().StringVarP(&reportOpts.Prefix, "prefix", "p", reportOpts.Prefix, "Filename prefix")
	reportCmd.Flags().Int64VarP(&reportOpts.Seed, "seed", "s", 0, "Base random seed (each file gets seed + index)")
	reportCmd.Flags().BoolVar(&reportOpts.RandomGroups, "random-groups", false, "Randomize group count per file (between 1 and --groups)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	reportOpts.Seeded = cmd.Flags().Changed("seed")

	paths, err := report.Generate(args[0], reportOpts)
	if err != nil {
		return errors.ReportError("report generation failed", err)
	}

	logSuccess("Generated %d report files in %s", len(paths), args[0])
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/combine"
)

var (
	combineDir    string
	combineOutput string
)

var combineCmd = &cobra.Command{
	Use:   "combine <extension>",
	Short: "Concatenate files of one extension into a single file",
	Long: `Collects every file with the given extension under a directory
(recursively), sorted by path, and writes them into one annotated
output file with a header per section.

The output file defaults to combined_<ext>_files.txt in the scanned
directory and is never folded into itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runCombine,
}

func init() {
	combineCmd.Flags().StringVar(&combineDir, "dir", ".", "Directory to scan")
	combineCmd.Flags().StringVarP(&combineOutput, "output", "o", "", "Output filename (default: combined_<ext>_files.txt)")
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
	result, err := combine.Run(combineDir, args[0], combineOutput)
	if err != nil {
		return err
	}

	logSuccess("Combined %d files into %s", result.FileCount, result.OutputPath)
	return nil
}

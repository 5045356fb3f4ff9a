package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/discovery"
	"github.com/devflow-tools/wtm/internal/errors"
)

var showWidth int

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a markdown document in the terminal",
	Long: `Renders a markdown file for terminal reading. The front-matter
block, when present, is stripped before rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&showWidth, "width", 100, "Word wrap width")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.DiscoveryError("cannot read "+args[0], err)
	}

	content := discovery.StripFrontMatter(string(data))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(showWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", args[0], err)
	}

	fmt.Print(out)
	return nil
}

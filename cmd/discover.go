package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/discovery"
	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/logging"
)

var (
	discoverAI   bool
	discoverRoot string
	discoverDirs []string
	discoverName string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Index documentation by front matter",
	Long: `Scans the configured documentation directories for markdown files
carrying a YAML front-matter block with a summary and read_when list,
and prints an index of what to read when.

Files without the block are skipped, as are common noise files
(changelog, license, contributing).

With --ai, output switches to a machine-friendly FILE:/DESC:/WHEN:
record format.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverAI, "ai", false, "Machine-friendly output format")
	discoverCmd.Flags().StringVar(&discoverRoot, "root", ".", "Directory to scan from")
	discoverCmd.Flags().StringSliceVar(&discoverDirs, "dirs", nil, "Documentation directories (overrides config)")
	discoverCmd.Flags().StringVar(&discoverName, "name", "", "Project name for the index header (default: root directory name)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := discovery.Options{
		Dirs:   cfg.Discovery.Dirs,
		Ignore: cfg.Discovery.Ignore,
	}
	if len(discoverDirs) > 0 {
		opts.Dirs = discoverDirs
	}

	logging.Debug("scanning documentation", "root", discoverRoot, "dirs", opts.Dirs)

	docs, err := discovery.Scan(discoverRoot, opts)
	if err != nil {
		return errors.DiscoveryError("documentation scan failed", err)
	}

	if discoverAI {
		fmt.Print(discovery.RenderAI(docs))
		return nil
	}

	name := discoverName
	if name == "" {
		abs, err := filepath.Abs(discoverRoot)
		if err == nil {
			name = filepath.Base(abs)
		}
	}
	fmt.Print(discovery.RenderList(docs, name))
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/editor"
	"github.com/devflow-tools/wtm/internal/logging"
)

var createOpen bool

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a worktree on a new branch",
	Long: `Creates a worktree next to the main checkout on a fresh branch.

Without a name, a chronological one is generated (fix-<MonDD>-<HHMM>-<n>
where n is the number of existing linked worktrees). The configured
branch_prefix is prepended to the branch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&createOpen, "open", false, "Open the new worktree in the editor")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := repoClient(ctx)
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = defaultWorktreeName(time.Now(), len(snap.Linked))
	}

	branch := cfg.Worktree.BranchPrefix + name

	root, err := client.RepoRoot(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(root, cfg.Worktree.BaseDir, name)

	logging.Debug("creating worktree", "path", path, "branch", branch)

	if err := client.AddWorktree(ctx, path, branch); err != nil {
		return err
	}

	logSuccess("Created worktree %s on branch %s", path, branch)

	if createOpen {
		return editor.Open(ctx, editor.Resolve(cfg.Worktree.Editor), path)
	}
	return nil
}

// defaultWorktreeName builds the chronological fallback name, suffixed
// with the current linked worktree count to keep same-minute names
// distinct.
func defaultWorktreeName(now time.Time, existing int) string {
	return fmt.Sprintf("fix-%s-%d", now.Format("Jan02-1504"), existing)
}

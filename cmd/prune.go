package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devflow-tools/wtm/internal/git"
	"github.com/devflow-tools/wtm/internal/logging"
	"github.com/devflow-tools/wtm/internal/system"
)

var pruneForce bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Clean up stale worktree entries and orphaned branches",
	Long: `Reconciles worktree records with what is actually on disk.

Without --force, prints what would be cleaned (dry run).
With --force, prunes stale entries and force-deletes orphaned branches.

Detects:
  - Stale entries: worktree records whose directory is gone
  - Orphaned branches: branches carrying the configured prefix with no
    backing worktree`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Actually clean up (default is dry run)")
	rootCmd.AddCommand(pruneCmd)
}

// pruneResult tracks what prune found and would/did clean up.
type pruneResult struct {
	stale    []*git.Worktree // records whose directory no longer exists
	orphaned []string        // prefixed branches with no backing worktree
}

func (r *pruneResult) empty() bool {
	return len(r.stale) == 0 && len(r.orphaned) == 0
}

func runPrune(cmd *cobra.Command, args []string) error {
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

	branches, err := client.LocalBranches(ctx)
	if err != nil {
		return err
	}

	// Branch prefix identifies branches this tool owns. Without one
	// configured, fall back to the chronological default's stem so
	// unrelated branches are never touched.
	prefix := cfg.Worktree.BranchPrefix
	if prefix == "" {
		prefix = "fix-"
	}

	fs := system.DefaultFS()

	// Every checked-out branch has a backing worktree: the parent, the
	// main checkout's branch (distinct from the parent when running
	// inside a linked worktree), and each linked worktree's branch.
	checkedOut := map[string]bool{snap.Parent: true}
	if snap.Main.Branch != "" {
		checkedOut[snap.Main.Branch] = true
	}

	result := &pruneResult{}
	for i := range snap.Linked {
		wt := &snap.Linked[i]
		if wt.Branch != "" {
			checkedOut[wt.Branch] = true
		}
		if !fs.Exists(wt.Path) {
			result.stale = append(result.stale, wt)
		}
	}

	for _, branch := range branches {
		if strings.HasPrefix(branch, prefix) && !checkedOut[branch] {
			result.orphaned = append(result.orphaned, branch)
		}
	}

	if result.empty() {
		logInfo("No stale worktree entries or orphaned branches found")
		return nil
	}

	if !pruneForce {
		printPruneDryRun(result, prefix)
		return nil
	}

	return executePrune(ctx, client, result)
}

func printPruneDryRun(result *pruneResult, prefix string) {
	fmt.Println("Dry run (use --force to actually clean up):")
	fmt.Println()

	if len(result.stale) > 0 {
		fmt.Println("Stale worktree entries (directory gone):")
		for _, wt := range result.stale {
			fmt.Printf("  %s (%s)\n", worktreeLabel(wt), wt.Path)
		}
		fmt.Println()
	}

	if len(result.orphaned) > 0 {
		fmt.Printf("Orphaned %s* branches (no backing worktree):\n", prefix)
		for _, branch := range result.orphaned {
			fmt.Printf("  %s\n", branch)
		}
		fmt.Println()
	}
}

func executePrune(ctx context.Context, client *git.Client, result *pruneResult) error {
	if len(result.stale) > 0 {
		logInfo("Pruning %d stale worktree entries", len(result.stale))
		if err := client.PruneWorktrees(ctx); err != nil {
			return err
		}
	}

	for _, branch := range result.orphaned {
		logInfo("Deleting orphaned branch: %s", branch)
		if err := client.ForceDeleteBranch(ctx, branch); err != nil {
			logWarning("Failed to delete branch %s: %v", branch, err)
		} else {
			logging.Debug("deleted orphaned branch", "branch", branch)
		}
	}

	logSuccess("Prune complete")
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List linked worktrees with merge status",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := repoClient(ctx)
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return err
	}

	if len(snap.Linked) == 0 {
		logInfo("No linked worktrees found. Create one with: wtm create [name]")
		return nil
	}

	fmt.Printf("Worktrees of %s (current branch: %s)\n\n", snap.Main.Path, snap.Parent)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tBRANCH\tSTATUS\tAGE\tPATH")
	fmt.Fprintln(w, "-\t------\t------\t---\t----")

	for i, wt := range snap.Linked {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\n",
			i+1, worktreeLabel(&wt), wt.Status.Icon(), wt.Status, wt.Age, wt.Path)
	}

	return w.Flush()
}

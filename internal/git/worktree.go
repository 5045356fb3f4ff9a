package git

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Status classifies a linked worktree against the current branch.
type Status string

const (
	// StatusMerged means the worktree branch is contained in the
	// current branch.
	StatusMerged Status = "merged"

	// StatusNotMerged means the worktree branch has commits the
	// current branch lacks (or shares no history with it).
	StatusNotMerged Status = "not-merged"

	// StatusDetached means the worktree has no branch checked out.
	StatusDetached Status = "detached"
)

// Icon returns the single-character status indicator used in listings.
func (s Status) Icon() string {
	switch s {
	case StatusMerged:
		return "✓"
	case StatusNotMerged:
		return "⚠"
	case StatusDetached:
		return "●"
	default:
		return "?"
	}
}

// Worktree is one entry of `git worktree list`.
type Worktree struct {
	Path     string
	Head     string
	Branch   string // empty when detached
	Detached bool

	// Filled in by Snapshot:
	Status Status
	Age    string
}

// Snapshot is the state of all worktrees relative to the current branch.
type Snapshot struct {
	// Parent is the branch checked out in the main working tree;
	// statuses are computed against it.
	Parent string

	// Main is the primary checkout.
	Main Worktree

	// Linked are the additional worktrees, in git's listing order.
	Linked []Worktree
}

// Snapshot lists all worktrees and classifies each linked one against
// the current branch.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	parent, err := c.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	output, err := c.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	trees, err := parseWorktreePorcelain(output)
	if err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("git reported no worktrees")
	}

	snap := &Snapshot{
		Parent: parent,
		Main:   trees[0],
		Linked: trees[1:],
	}

	var merged map[string]bool
	if len(snap.Linked) > 0 {
		merged, err = c.MergedBranches(ctx, parent)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	for i := range snap.Linked {
		wt := &snap.Linked[i]
		wt.Status = classify(wt, parent, merged)
		wt.Age = c.age(wt.Path, now)
	}

	return snap, nil
}

// classify applies the original status rules: detached worktrees are
// flagged, a branch equal to the parent is never "merged", and
// everything else follows git's own --merged comparison.
func classify(wt *Worktree, parent string, merged map[string]bool) Status {
	if wt.Detached || wt.Branch == "" {
		return StatusDetached
	}
	if wt.Branch != parent && merged[wt.Branch] {
		return StatusMerged
	}
	return StatusNotMerged
}

// age formats the worktree directory's modification age, "?" when the
// path cannot be inspected.
func (c *Client) age(path string, now time.Time) string {
	info, err := c.fs.Stat(path)
	if err != nil {
		return "?"
	}
	return FormatAge(now.Sub(info.ModTime()))
}

// FormatAge buckets a duration into minutes, hours, days, or weeks.
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	}
}

// parseWorktreePorcelain parses `git worktree list --porcelain` output.
// Entries are stanzas separated by blank lines:
//
//	worktree <path>
//	HEAD <sha>
//	branch refs/heads/<name> | detached
func parseWorktreePorcelain(output string) ([]Worktree, error) {
	var trees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			trees = append(trees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			return nil, fmt.Errorf("unexpected worktree list line: %q", line)
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			current.Detached = true
		case line == "bare":
			// The main checkout of a bare repo has no status to report.
		}
	}
	flush()

	return trees, nil
}

package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/logging"
	"github.com/devflow-tools/wtm/internal/system"
)

// Client runs git commands against one repository.
type Client struct {
	dir  string
	exec system.CommandExecutor
	fs   system.FileSystem
}

// NewClient returns a Client operating on the repository at dir.
// Empty dir means the process working directory.
func NewClient(dir string) *Client {
	return &Client{
		dir:  dir,
		exec: system.DefaultExecutor(),
		fs:   system.DefaultFS(),
	}
}

// run executes a git command and returns its trimmed combined output.
// On failure the output is folded into the error so the caller surfaces
// git's own message.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	full := args
	if c.dir != "" {
		full = append([]string{"-C", c.dir}, args...)
	}

	logging.Debug("running git", "args", strings.Join(args, " "))

	output, err := c.exec.Execute(ctx, "git", full...)
	text := strings.TrimSpace(string(output))
	if err != nil {
		if text != "" {
			return "", errors.GitError(args[0], fmt.Errorf("%s: %w", text, err))
		}
		return "", errors.GitError(args[0], err)
	}
	return text, nil
}

// IsRepo reports whether the client points at a git repository.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the absolute path of the repository's top-level
// directory.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--show-toplevel")
}

// CurrentBranch returns the branch checked out in the main working tree.
// A detached HEAD is reported as "HEAD".
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// MergedBranches returns the set of local branches already merged into
// parent.
func (c *Client) MergedBranches(ctx context.Context, parent string) (map[string]bool, error) {
	output, err := c.run(ctx, "branch", "--merged", parent, "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	merged := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			merged[name] = true
		}
	}
	return merged, nil
}

// AddWorktree creates a worktree at path on a new branch off the current
// HEAD.
func (c *Client) AddWorktree(ctx context.Context, path, branch string) error {
	_, err := c.run(ctx, "worktree", "add", path, "-b", branch)
	return err
}

// RemoveWorktree removes the worktree at path. It tries a plain remove
// first and falls back to --force, matching a manual cleanup.
func (c *Client) RemoveWorktree(ctx context.Context, path string) error {
	if _, err := c.run(ctx, "worktree", "remove", path); err == nil {
		return nil
	}
	_, err := c.run(ctx, "worktree", "remove", "--force", path)
	return err
}

// DeleteBranch deletes a branch, trying the safe -d first and falling
// back to -D.
func (c *Client) DeleteBranch(ctx context.Context, branch string) error {
	if _, err := c.run(ctx, "branch", "-d", branch); err == nil {
		return nil
	}
	_, err := c.run(ctx, "branch", "-D", branch)
	return err
}

// ForceDeleteBranch deletes a branch regardless of merge state.
func (c *Client) ForceDeleteBranch(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "branch", "-D", branch)
	return err
}

// Merge merges branch into the currently checked-out branch.
func (c *Client) Merge(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "merge", branch)
	return err
}

// PruneWorktrees drops worktree administrative files whose directories
// are gone.
func (c *Client) PruneWorktrees(ctx context.Context) error {
	_, err := c.run(ctx, "worktree", "prune")
	return err
}

// LocalBranches returns all local branch names.
func (c *Client) LocalBranches(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(output, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

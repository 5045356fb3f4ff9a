package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	wtmerrors "github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/system"
)

func newTestClient(exec *system.MockExecutor, fs *system.MockFS) *Client {
	return &Client{dir: "/repo", exec: exec, fs: fs}
}

func TestCurrentBranch(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script("main\n", nil, "git", "-C", "/repo", "rev-parse", "--abbrev-ref", "HEAD")

	c := newTestClient(exec, system.NewMockFS())
	branch, err := c.CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "main" {
		t.Errorf("CurrentBranch = %q, want %q", branch, "main")
	}
}

func TestRun_SurfacesGitOutput(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script("fatal: not a git repository\n", errors.New("exit status 128"),
		"git", "-C", "/repo", "merge", "feature")

	c := newTestClient(exec, system.NewMockFS())
	err := c.Merge(context.Background(), "feature")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("error should carry git's own output, got %q", err.Error())
	}
	if wtmerrors.GetExitCode(err) != wtmerrors.ExitGitError {
		t.Errorf("exit code = %d, want %d", wtmerrors.GetExitCode(err), wtmerrors.ExitGitError)
	}
}

func TestMergedBranches(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script("main\nfix-a\nfix-b\n", nil,
		"git", "-C", "/repo", "branch", "--merged", "main", "--format=%(refname:short)")

	c := newTestClient(exec, system.NewMockFS())
	merged, err := c.MergedBranches(context.Background(), "main")
	if err != nil {
		t.Fatalf("MergedBranches: %v", err)
	}
	for _, want := range []string{"main", "fix-a", "fix-b"} {
		if !merged[want] {
			t.Errorf("expected %s in merged set", want)
		}
	}
	if merged["fix-c"] {
		t.Error("fix-c should not be merged")
	}
}

func TestRemoveWorktree_FallsBackToForce(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script("error: working tree is dirty", errors.New("exit status 1"),
		"git", "-C", "/repo", "worktree", "remove", "/trees/fix")
	exec.Script("", nil,
		"git", "-C", "/repo", "worktree", "remove", "--force", "/trees/fix")

	c := newTestClient(exec, system.NewMockFS())
	if err := c.RemoveWorktree(context.Background(), "/trees/fix"); err != nil {
		t.Fatalf("RemoveWorktree: %v", err)
	}
	if exec.CallCount("git", "-C", "/repo", "worktree", "remove", "--force", "/trees/fix") != 1 {
		t.Error("expected fallback to --force remove")
	}
}

func TestDeleteBranch_FallsBackToForce(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script("error: not fully merged", errors.New("exit status 1"),
		"git", "-C", "/repo", "branch", "-d", "fix")
	exec.Script("Deleted branch fix", nil,
		"git", "-C", "/repo", "branch", "-D", "fix")

	c := newTestClient(exec, system.NewMockFS())
	if err := c.DeleteBranch(context.Background(), "fix"); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	if exec.CallCount("git", "-C", "/repo", "branch", "-D", "fix") != 1 {
		t.Error("expected fallback to -D")
	}
}

func TestIsRepo(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.Script(".git\n", nil, "git", "-C", "/repo", "rev-parse", "--git-dir")

	c := newTestClient(exec, system.NewMockFS())
	if !c.IsRepo(context.Background()) {
		t.Error("IsRepo should be true when rev-parse succeeds")
	}

	failing := system.NewMockExecutor()
	failing.DefaultErr = errors.New("exit status 128")
	c = newTestClient(failing, system.NewMockFS())
	if c.IsRepo(context.Background()) {
		t.Error("IsRepo should be false when rev-parse fails")
	}
}

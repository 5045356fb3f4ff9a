package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/git"
	"github.com/devflow-tools/wtm/internal/report"
	"github.com/devflow-tools/wtm/internal/system"
)

// executeCommand runs the root command with args, returning the error.
// Flag state is reset so tests do not leak into each other.
func executeCommand(args ...string) error {
	verbose = false
	jsonOutput = false
	configPath = ""
	createOpen = false
	mergeCleanup = false
	removeYes = false
	removeDeleteBranches = false
	pruneForce = false
	discoverAI = false
	discoverRoot = "."
	discoverDirs = nil
	discoverName = ""
	combineDir = "."
	combineOutput = ""
	showWidth = 100
	reportOpts = report.DefaultOptions()

	cmd := rootCmd
	cmd.SetArgs(args)
	err := cmd.Execute()
	cmd.SetArgs(nil)
	return err
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = orig

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestDefaultWorktreeName(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	if got := defaultWorktreeName(now, 2); got != "fix-Feb10-0930-2" {
		t.Errorf("defaultWorktreeName = %q, want fix-Feb10-0930-2", got)
	}
}

func TestCountNoun(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{1, "worktree", "1 worktree"},
		{3, "worktree", "3 worktrees"},
		{2, "unmerged branch", "2 unmerged branches"},
	}
	for _, tt := range tests {
		if got := countNoun(tt.n, tt.noun); got != tt.want {
			t.Errorf("countNoun(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}

func TestWorktreeByIndex(t *testing.T) {
	snap := &git.Snapshot{
		Parent: "main",
		Linked: []git.Worktree{
			{Path: "/repo-a", Branch: "a"},
			{Path: "/repo-b", Branch: "b"},
		},
	}

	wt, err := worktreeByIndex(snap, 2)
	if err != nil {
		t.Fatalf("worktreeByIndex(2): %v", err)
	}
	if wt.Branch != "b" {
		t.Errorf("Branch = %q, want b", wt.Branch)
	}

	for _, bad := range []int{0, 3, -1} {
		if _, err := worktreeByIndex(snap, bad); err == nil {
			t.Errorf("worktreeByIndex(%d) should fail", bad)
		} else if errors.GetExitCode(err) != errors.ExitWorktreeNotFound {
			t.Errorf("worktreeByIndex(%d) exit code = %d", bad, errors.GetExitCode(err))
		}
	}
}

func TestLinkedPointers(t *testing.T) {
	snap := &git.Snapshot{
		Linked: []git.Worktree{{Branch: "a"}, {Branch: "b"}},
	}

	ptrs := linkedPointers(snap)
	if len(ptrs) != 2 {
		t.Fatalf("got %d pointers, want 2", len(ptrs))
	}

	// Pointers must alias the snapshot, not copies.
	ptrs[0].Age = "5m"
	if snap.Linked[0].Age != "5m" {
		t.Error("linkedPointers should point into the snapshot")
	}
}

func TestWorktreeLabel(t *testing.T) {
	if got := worktreeLabel(&git.Worktree{Branch: "fix", Head: "abc"}); got != "fix" {
		t.Errorf("label = %q, want branch", got)
	}
	if got := worktreeLabel(&git.Worktree{Detached: true, Head: "abc"}); got != "abc" {
		t.Errorf("label = %q, want HEAD for detached", got)
	}
}

func TestListCommand(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script(
		"worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
			"worktree /repo-fix\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("fix-a\nmain", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	out := captureStdout(t, func() {
		if err := executeCommand("list"); err != nil {
			t.Errorf("list: %v", err)
		}
	})

	for _, want := range []string{"fix-a", "merged", "/repo-fix", "current branch: main"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestListCommand_NoWorktrees(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n",
		nil, "git", "worktree", "list", "--porcelain")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	out := captureStdout(t, func() {
		if err := executeCommand("list"); err != nil {
			t.Errorf("list: %v", err)
		}
	})
	if !strings.Contains(out, "No linked worktrees found") {
		t.Errorf("expected empty-state message, got:\n%s", out)
	}
}

func TestListCommand_OutsideRepo(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.DefaultErr = os.ErrNotExist // any failure: rev-parse fails outside a repo
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	err := executeCommand("list")
	if err == nil {
		t.Fatal("list outside a repository should fail")
	}
	if errors.GetExitCode(err) != errors.ExitGitError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitGitError)
	}
}

func TestMergeCommand_UnknownBranch(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
		"worktree /repo-fix\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("main", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	if err := executeCommand("merge", "no-such-branch"); err == nil {
		t.Error("unknown branch should fail")
	}
}

func TestMergeCommand_ByBranch(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
		"worktree /repo-fix\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("main", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	captureStdout(t, func() {
		if err := executeCommand("merge", "fix-a"); err != nil {
			t.Errorf("merge by branch: %v", err)
		}
	})

	if mock.CallCount("git", "merge", "fix-a") != 1 {
		t.Error("expected git merge fix-a to run once")
	}
}

func TestPruneCommand_DryRun(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
		"worktree /no/such/dir\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("main", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	mock.Script("fix-a\nfix-orphan\nmain\nunrelated",
		nil, "git", "branch", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	out := captureStdout(t, func() {
		if err := executeCommand("prune"); err != nil {
			t.Errorf("prune: %v", err)
		}
	})

	if !strings.Contains(out, "Dry run") {
		t.Errorf("expected dry run header:\n%s", out)
	}
	if !strings.Contains(out, "/no/such/dir") {
		t.Errorf("stale entry should be listed:\n%s", out)
	}
	if !strings.Contains(out, "fix-orphan") {
		t.Errorf("orphaned branch should be listed:\n%s", out)
	}
	if strings.Contains(out, "unrelated") {
		t.Errorf("unprefixed branches must not be touched:\n%s", out)
	}

	// Dry run must not act.
	if mock.CallCount("git", "worktree", "prune") != 0 {
		t.Error("dry run should not prune")
	}
	if mock.CallCount("git", "branch", "-D", "fix-orphan") != 0 {
		t.Error("dry run should not delete branches")
	}
}

func TestPruneCommand_KeepsMainCheckoutBranch(t *testing.T) {
	// Running from inside a linked worktree: the current branch is the
	// linked worktree's, and the main checkout sits on a prefixed
	// branch. That branch has a backing worktree and must be kept.
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("wt-branch", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /main\nHEAD aaa\nbranch refs/heads/fix-main\n\n"+
		"worktree /wt\nHEAD bbb\nbranch refs/heads/wt-branch\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("wt-branch", nil, "git", "branch", "--merged", "wt-branch", "--format=%(refname:short)")
	mock.Script("fix-main\nfix-orphan\nwt-branch",
		nil, "git", "branch", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	out := captureStdout(t, func() {
		if err := executeCommand("prune"); err != nil {
			t.Errorf("prune: %v", err)
		}
	})

	if strings.Contains(out, "fix-main") {
		t.Errorf("main checkout's branch must not be reported as orphaned:\n%s", out)
	}
	if !strings.Contains(out, "fix-orphan") {
		t.Errorf("truly orphaned branch should still be listed:\n%s", out)
	}
}

func TestPruneCommand_Force(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
		"worktree /no/such/dir\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("main", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	mock.Script("fix-a\nfix-orphan\nmain",
		nil, "git", "branch", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	captureStdout(t, func() {
		if err := executeCommand("prune", "--force"); err != nil {
			t.Errorf("prune --force: %v", err)
		}
	})

	if mock.CallCount("git", "worktree", "prune") != 1 {
		t.Error("expected git worktree prune to run")
	}
	if mock.CallCount("git", "branch", "-D", "fix-orphan") != 1 {
		t.Error("expected orphaned branch deletion")
	}
	if mock.CallCount("git", "branch", "-D", "fix-a") != 0 {
		t.Error("branches with a backing worktree must be kept")
	}
}

func TestPickCommand_NonInteractive(t *testing.T) {
	mock := system.NewMockExecutor()
	mock.Script(".git", nil, "git", "rev-parse", "--git-dir")
	mock.Script("main", nil, "git", "rev-parse", "--abbrev-ref", "HEAD")
	mock.Script("worktree /repo\nHEAD aaa\nbranch refs/heads/main\n\n"+
		"worktree /repo-fix\nHEAD bbb\nbranch refs/heads/fix-a\n",
		nil, "git", "worktree", "list", "--porcelain")
	mock.Script("fix-a\nmain", nil, "git", "branch", "--merged", "main", "--format=%(refname:short)")
	system.SetDefaultExecutor(mock)
	defer system.ResetDefaults()

	// captureStdout swaps stdout for a pipe, so the command sees no
	// terminal and must fall back to the plain listing.
	out := captureStdout(t, func() {
		if err := executeCommand("pick"); err != nil {
			t.Errorf("pick: %v", err)
		}
	})

	if !strings.Contains(out, "Worktrees of main") {
		t.Errorf("fallback listing should carry the title:\n%s", out)
	}
	if !strings.Contains(out, "fix-a") {
		t.Errorf("fallback listing should show the worktree:\n%s", out)
	}
}

func TestDiscoverCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "docs", "api.md")
	if err := os.MkdirAll(filepath.Dir(doc), 0755); err != nil {
		t.Fatal(err)
	}
	content := "---\nsummary: API surface\nread_when:\n  - editing handlers\n---\n\n# API\n"
	if err := os.WriteFile(doc, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		if err := executeCommand("discover", "--root", dir, "--ai"); err != nil {
			t.Errorf("discover: %v", err)
		}
	})

	for _, want := range []string{"FILE: docs/api.md", "DESC: API surface", "WHEN: editing handlers"} {
		if !strings.Contains(out, want) {
			t.Errorf("discover output missing %q:\n%s", want, out)
		}
	}
}

func TestCombineCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("alpha\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		if err := executeCommand("combine", "md", "--dir", dir); err != nil {
			t.Errorf("combine: %v", err)
		}
	})

	if !strings.Contains(out, "Combined 1 files") {
		t.Errorf("combine output missing summary:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "combined_md_files.txt")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestReportCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	captureStdout(t, func() {
		if err := executeCommand("report", dir, "--count", "2", "--groups", "1", "--seed", "3"); err != nil {
			t.Errorf("report: %v", err)
		}
	})

	for _, name := range []string{"test_001.xml", "test_002.xml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("report file %s missing: %v", name, err)
		}
	}
}

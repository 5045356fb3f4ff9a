package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/devflow-tools/wtm/internal/config"
	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/git"
)

// loadConfig reads the config file, honoring the --config override.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, errors.ConfigError("cannot locate config", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.ConfigError("cannot load config", err)
	}
	return cfg, nil
}

// repoClient returns a git client for the working directory, failing
// early when it is not a repository.
func repoClient(ctx context.Context) (*git.Client, error) {
	client := git.NewClient("")
	if !client.IsRepo(ctx) {
		cwd, _ := os.Getwd()
		return nil, errors.NotARepo(cwd)
	}
	return client, nil
}

// worktreeByIndex resolves a 1-based listing index against a snapshot.
func worktreeByIndex(snap *git.Snapshot, index int) (*git.Worktree, error) {
	if index < 1 || index > len(snap.Linked) {
		return nil, errors.WorktreeNotFound(index)
	}
	return &snap.Linked[index-1], nil
}

// linkedPointers adapts a snapshot's linked worktrees for the picker.
func linkedPointers(snap *git.Snapshot) []*git.Worktree {
	out := make([]*git.Worktree, len(snap.Linked))
	for i := range snap.Linked {
		out[i] = &snap.Linked[i]
	}
	return out
}

// confirm prompts on stdin and returns true for "y"/"yes".
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// worktreeLabel names a worktree for messages: branch when attached,
// HEAD otherwise.
func worktreeLabel(wt *git.Worktree) string {
	if wt.Detached || wt.Branch == "" {
		return wt.Head
	}
	return wt.Branch
}

// Package git wraps the git binary for worktree management.
//
// All state lives in git itself; this package only shells out (through
// system.CommandExecutor), parses `git worktree list --porcelain`, and
// classifies worktrees against the current branch. Merge status is
// delegated entirely to `git branch --merged`.
package git

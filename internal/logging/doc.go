// Package logging provides logging utilities for wtm.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("listing worktrees", "repo", repo)
//	logging.Warn("stat failed", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Comparing against branch %s", branch)
//	logging.UserSuccess("Worktree %s created", name)
//	logging.UserWarning("%d worktree(s) are not merged", n)
//	logging.UserError("Merge failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging

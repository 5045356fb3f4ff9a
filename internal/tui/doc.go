// Package tui provides terminal user interface components for wtm.
//
// This package uses the Bubble Tea framework to create interactive
// terminal interfaces, primarily the worktree picker behind `wtm pick`.
//
// # Worktree Picker
//
// The picker lists linked worktrees with their merge status and age and
// dispatches an action for the selected entry:
//
//	result, err := tui.RunPicker(snapshot.Linked, snapshot.Parent)
//	switch result.Action {
//	case tui.ActionOpen:
//	    // Open result.Worktree in the editor
//	case tui.ActionMerge:
//	    // Merge result.Worktree's branch into the parent
//	case tui.ActionRemove:
//	    // Remove result.Worktree
//	case tui.ActionNew:
//	    // Create a fresh worktree
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Keyboard navigation (j/k or arrows) with filtering
//   - Quick actions: Enter (open), m (merge), x (remove), n (new), q (quit)
//   - Color-coded merge status indicators
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devflow-tools/wtm/internal/git"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionMerge
	ActionRemove
	ActionNew
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action   Action
	Worktree *git.Worktree
}

// worktreeItem implements list.Item for worktree display
type worktreeItem struct {
	worktree *git.Worktree
	parent   string
}

func (i worktreeItem) Title() string {
	if i.worktree.Detached {
		return i.worktree.Head
	}
	return i.worktree.Branch
}

func (i worktreeItem) Description() string {
	return fmt.Sprintf("%s %s | %s | %s",
		i.worktree.Status.Icon(),
		i.worktree.Status,
		i.worktree.Age,
		truncatePath(i.worktree.Path, 40),
	)
}

func (i worktreeItem) FilterValue() string {
	return i.worktree.Branch + " " + i.worktree.Path
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the worktree picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new worktree picker
func NewPicker(worktrees []*git.Worktree, parent string) Model {
	items := make([]list.Item, len(worktrees))
	for i, wt := range worktrees {
		items[i] = worktreeItem{worktree: wt, parent: parent}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = fmt.Sprintf("wtm - Worktrees of %s", parent)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = PickerResult{
					Action:   ActionOpen,
					Worktree: item.worktree,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "m":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = PickerResult{
					Action:   ActionMerge,
					Worktree: item.worktree,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = PickerResult{
					Action:   ActionRemove,
					Worktree: item.worktree,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "n":
			m.result = PickerResult{Action: ActionNew}
			m.quitting = true
			return m, tea.Quit

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Open  [m] Merge  [d] Remove  [n] New  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive worktree picker
func RunPicker(worktrees []*git.Worktree, parent string) (PickerResult, error) {
	if len(worktrees) == 0 {
		return PickerResult{Action: ActionNew}, nil
	}

	m := NewPicker(worktrees, parent)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive fallback that just lists worktrees
func SimplePicker(worktrees []*git.Worktree, parent string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("wtm - Worktrees of %s\n", parent))
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(worktrees) == 0 {
		sb.WriteString("No linked worktrees found.\n")
		sb.WriteString("Create one with: wtm create [name]\n")
		return sb.String()
	}

	for i, wt := range worktrees {
		label := wt.Branch
		if wt.Detached {
			label = wt.Head
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, wt.Status.Icon(), label, wt.Status))
		sb.WriteString(fmt.Sprintf("   Age: %s | Path: %s\n\n",
			wt.Age, truncatePath(wt.Path, 40)))
	}

	return sb.String()
}

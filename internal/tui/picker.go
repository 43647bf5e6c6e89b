package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sogladev/wow-realm-switch-utility/internal/health"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionFix
	ActionClean
	ActionQuit
)

// Entry is one workspace shown by the picker.
type Entry struct {
	Config *workspace.Config
	Check  *health.CheckResult
}

// PickerResult holds the result of the picker
type PickerResult struct {
	Action    Action
	Workspace *workspace.Config
}

// workspaceItem implements list.Item for workspace display
type workspaceItem struct {
	entry Entry
}

func (i workspaceItem) Title() string {
	return i.entry.Config.Name
}

func (i workspaceItem) status() health.Status {
	if i.entry.Check == nil {
		return health.StatusBroken
	}
	return i.entry.Check.Status
}

func (i workspaceItem) Description() string {
	age := "unknown"
	if i.entry.Check != nil && i.entry.Check.Age != "" {
		age = i.entry.Check.Age
	}

	return fmt.Sprintf("%s %s | %s | %s",
		statusIcon(i.status()),
		i.status(),
		age,
		truncatePath(i.entry.Config.WorkspacePath, 40),
	)
}

func (i workspaceItem) FilterValue() string {
	return i.entry.Config.Name
}

func statusIcon(status health.Status) string {
	switch status {
	case health.StatusHealthy:
		return "✓"
	case health.StatusDrifted:
		return "○"
	case health.StatusConflicted:
		return "⚠"
	default:
		return "✗"
	}
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

// Model is the bubbletea model for the workspace picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new workspace picker grouped by base install
func NewPicker(entries []Entry) Model {
	items := buildGroupedItems(entries)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "realmctl - Select Workspace"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	skipHeaders(&l, 1)

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) selected() (*workspace.Config, bool) {
	item, ok := m.list.SelectedItem().(workspaceItem)
	if !ok {
		return nil, false
	}
	return item.entry.Config, true
}

func (m Model) finish(action Action, ws *workspace.Config) (tea.Model, tea.Cmd) {
	m.result = PickerResult{Action: action, Workspace: ws}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if ws, ok := m.selected(); ok {
				return m.finish(ActionSelect, ws)
			}
		case "f":
			if ws, ok := m.selected(); ok {
				return m.finish(ActionFix, ws)
			}
		case "c":
			if ws, ok := m.selected(); ok {
				return m.finish(ActionClean, ws)
			}
		case "q", "esc":
			return m.finish(ActionQuit, nil)
		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			if isHeaderSelected(&m.list) {
				skipHeaders(&m.list, navigationDirection(msg))
			}
			return m, cmd
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

	help := helpStyle.Render("[enter] Select  [f] Fix  [c] Clean  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive workspace picker
func RunPicker(entries []Entry) (PickerResult, error) {
	if len(entries) == 0 {
		return PickerResult{Action: ActionNone}, nil
	}

	p := tea.NewProgram(NewPicker(entries), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker renders a non-interactive listing of entries
func SimplePicker(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("realmctl - Workspaces\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(entries) == 0 {
		sb.WriteString("No workspaces found.\n")
		sb.WriteString("Create one with: realmctl create <name> <base-path>\n")
		return sb.String()
	}

	items := buildGroupedItems(entries)
	sb.WriteString(fmt.Sprintf("%d workspaces across %d bases\n\n", len(items)-headerCount(items), headerCount(items)))

	n := 0
	for _, item := range items {
		switch it := item.(type) {
		case headerItem:
			sb.WriteString(fmt.Sprintf("[%s]\n", it.label))
		case workspaceItem:
			n++
			sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n", n, statusIcon(it.status()), it.Title(), it.status()))
			sb.WriteString(fmt.Sprintf("   %s\n\n", truncatePath(it.entry.Config.WorkspacePath, 56)))
		}
	}

	return sb.String()
}

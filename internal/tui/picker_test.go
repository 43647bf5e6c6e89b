package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sogladev/wow-realm-switch-utility/internal/health"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

func entry(name, base, basePath string, status health.Status) Entry {
	return Entry{
		Config: &workspace.Config{
			Name:          name,
			BaseName:      base,
			BasePath:      basePath,
			WorkspacePath: "/games/ws/" + name,
		},
		Check: &health.CheckResult{Status: status, Age: "2h30m"},
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"/home/user/workspace", 20, "/home/user/workspace"},
		{"/home/user/very/long/path/to/workspace", 20, "...path/to/workspace"},
		{"", 10, ""},
		{"exactly10!", 10, "exactly10!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := truncatePath(tt.path, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestWorkspaceItemMethods(t *testing.T) {
	item := workspaceItem{entry: entry("ptr", "Chromie", "/games/Chromie", health.StatusHealthy)}

	if got := item.Title(); got != "ptr" {
		t.Errorf("Title() = %q, want %q", got, "ptr")
	}
	if got := item.FilterValue(); got != "ptr" {
		t.Errorf("FilterValue() = %q, want %q", got, "ptr")
	}

	desc := item.Description()
	for _, want := range []string{"✓", "healthy", "2h30m", "/games/ws/ptr"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Description() = %q, should contain %q", desc, want)
		}
	}

	t.Run("missing check", func(t *testing.T) {
		item := workspaceItem{entry: Entry{Config: &workspace.Config{Name: "x"}}}
		desc := item.Description()
		if !strings.Contains(desc, "broken") || !strings.Contains(desc, "unknown") {
			t.Errorf("Description() = %q, want broken status and unknown age", desc)
		}
	})
}

func TestStatusIcons(t *testing.T) {
	tests := []struct {
		status health.Status
		icon   string
	}{
		{health.StatusHealthy, "✓"},
		{health.StatusDrifted, "○"},
		{health.StatusConflicted, "⚠"},
		{health.StatusBroken, "✗"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := statusIcon(tt.status); got != tt.icon {
				t.Errorf("statusIcon(%v) = %q, want %q", tt.status, got, tt.icon)
			}
		})
	}
}

func TestModelKeyHandling(t *testing.T) {
	entries := []Entry{
		entry("alpha", "Chromie", "/games/Chromie", health.StatusHealthy),
		entry("beta", "Chromie", "/games/Chromie", health.StatusDrifted),
	}

	keyPress := func(r rune) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	}

	t.Run("starts on first workspace", func(t *testing.T) {
		m := NewPicker(entries)
		if isHeaderSelected(&m.list) {
			t.Fatal("header should not be selected initially")
		}
		ws, ok := m.selected()
		if !ok || ws.Name != "alpha" {
			t.Errorf("selected() = %v, want alpha", ws)
		}
	})

	t.Run("select with enter", func(t *testing.T) {
		m := NewPicker(entries)
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionSelect {
			t.Errorf("Action = %v, want ActionSelect", model.result.Action)
		}
		if model.result.Workspace == nil || model.result.Workspace.Name != "alpha" {
			t.Errorf("Workspace = %v, want alpha", model.result.Workspace)
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("fix and clean", func(t *testing.T) {
		for r, want := range map[rune]Action{'f': ActionFix, 'c': ActionClean} {
			m := NewPicker(entries)
			newModel, _ := m.Update(keyPress(r))
			model := newModel.(Model)
			if model.result.Action != want {
				t.Errorf("key %q: Action = %v, want %v", r, model.result.Action, want)
			}
		}
	})

	t.Run("navigation skips header", func(t *testing.T) {
		m := NewPicker(entries)

		newModel, _ := m.Update(keyPress('j'))
		model := newModel.(Model)
		if ws, _ := model.selected(); ws == nil || ws.Name != "beta" {
			t.Fatalf("after j selected %v, want beta", ws)
		}

		newModel, _ = model.Update(keyPress('k'))
		model = newModel.(Model)
		newModel, _ = model.Update(keyPress('k'))
		model = newModel.(Model)
		if isHeaderSelected(&model.list) {
			t.Error("header should never stay selected")
		}
	})

	t.Run("quit with q", func(t *testing.T) {
		m := NewPicker(entries)
		newModel, cmd := m.Update(keyPress('q'))
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewPicker(entries)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if newModel.(Model).result.Action != ActionQuit {
			t.Error("esc should quit")
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewPicker(entries)
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 || model.height != 50 {
			t.Errorf("size = %dx%d, want 100x50", model.width, model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	entries := []Entry{entry("alpha", "Chromie", "/games/Chromie", health.StatusHealthy)}

	t.Run("normal view contains help", func(t *testing.T) {
		view := NewPicker(entries).View()
		for _, want := range []string{"[enter] Select", "[f] Fix", "[c] Clean", "[q] Quit"} {
			if !strings.Contains(view, want) {
				t.Errorf("View should contain %q", want)
			}
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewPicker(entries)
		m.quitting = true
		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestModelResult(t *testing.T) {
	m := Model{
		result: PickerResult{
			Action:    ActionFix,
			Workspace: &workspace.Config{Name: "test"},
		},
	}

	result := m.Result()
	if result.Action != ActionFix {
		t.Errorf("Action = %v, want ActionFix", result.Action)
	}
	if result.Workspace.Name != "test" {
		t.Errorf("Workspace.Name = %q, want %q", result.Workspace.Name, "test")
	}
}

func TestRunPickerEmpty(t *testing.T) {
	result, err := RunPicker(nil)
	if err != nil {
		t.Fatalf("RunPicker with no workspaces failed: %v", err)
	}
	if result.Action != ActionNone {
		t.Errorf("Empty picker should return ActionNone, got %v", result.Action)
	}
}

func TestSimplePicker(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		output := SimplePicker(nil)

		if !strings.Contains(output, "No workspaces found") {
			t.Error("Should indicate no workspaces found")
		}
		if !strings.Contains(output, "realmctl create") {
			t.Error("Should show how to create a workspace")
		}
	})

	t.Run("grouped", func(t *testing.T) {
		output := SimplePicker([]Entry{
			entry("ptr", "Vanilla", "/games/Vanilla", health.StatusConflicted),
			entry("main", "Chromie", "/games/Chromie", health.StatusHealthy),
			entry("alt", "Chromie", "/games/Chromie", health.StatusDrifted),
		})

		if !strings.Contains(output, "3 workspaces across 2 bases") {
			t.Errorf("missing summary line:\n%s", output)
		}
		chromie := strings.Index(output, "[Chromie")
		alt := strings.Index(output, "1. ○ alt (drifted)")
		main := strings.Index(output, "2. ✓ main (healthy)")
		ptr := strings.Index(output, "3. ⚠ ptr (conflicted)")
		if chromie < 0 || alt < chromie || main < alt || ptr < main {
			t.Errorf("unexpected order:\n%s", output)
		}
	})
}

func TestActionConstants(t *testing.T) {
	actions := []Action{ActionNone, ActionSelect, ActionFix, ActionClean, ActionQuit}
	seen := make(map[Action]bool)

	for _, a := range actions {
		if seen[a] {
			t.Errorf("Duplicate action value: %v", a)
		}
		seen[a] = true
	}
}

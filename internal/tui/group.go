package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// groupLabel names the base install a workspace was created from.
func groupLabel(e Entry) string {
	return fmt.Sprintf("%s  %s", e.Config.BaseName, shortenGroupKey(e.Config.BasePath))
}

// buildGroupedItems groups entries by base install and returns list items
// with headerItem separators. Groups and entries are sorted by name.
func buildGroupedItems(entries []Entry) []list.Item {
	if len(entries) == 0 {
		return nil
	}

	type group struct {
		key     string
		label   string
		entries []Entry
	}
	groupMap := make(map[string]*group)
	for _, e := range entries {
		key := e.Config.BasePath
		g, ok := groupMap[key]
		if !ok {
			g = &group{key: key, label: groupLabel(e)}
			groupMap[key] = g
		}
		g.entries = append(g.entries, e)
	}

	groups := make([]*group, 0, len(groupMap))
	for _, g := range groupMap {
		sort.Slice(g.entries, func(i, j int) bool {
			return g.entries[i].Config.Name < g.entries[j].Config.Name
		})
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].label != groups[j].label {
			return groups[i].label < groups[j].label
		}
		return groups[i].key < groups[j].key
	})

	var items []list.Item
	for _, g := range groups {
		items = append(items, headerItem{label: g.label})
		for _, e := range g.entries {
			items = append(items, workspaceItem{entry: e})
		}
	}

	return items
}

// headerStyle is the style for group header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and workspaceItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}

	d.inner.Render(w, m, index, item)
}

// skipHeaders moves the cursor off a headerItem to the nearest workspace,
// looking in direction first (1 down, -1 up) and then the other way.
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	idx := l.Index()
	if idx < 0 || idx >= len(items) {
		return
	}
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	for _, dir := range []int{direction, -direction} {
		for i := idx + dir; i >= 0 && i < len(items); i += dir {
			if _, ok := items[i].(headerItem); !ok {
				l.Select(i)
				return
			}
		}
	}
}

// isHeaderSelected returns true if the currently selected item is a headerItem.
func isHeaderSelected(l *list.Model) bool {
	if item := l.SelectedItem(); item != nil {
		_, ok := item.(headerItem)
		return ok
	}
	return false
}

// navigationDirection returns -1 for up/k keys and 1 otherwise.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}

// headerCount returns the number of headerItems in items.
func headerCount(items []list.Item) int {
	count := 0
	for _, item := range items {
		if _, ok := item.(headerItem); ok {
			count++
		}
	}
	return count
}

// shortenGroupKey keeps the last two components of a base path.
func shortenGroupKey(path string) string {
	dir, last := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if dir == "" || parent == string(filepath.Separator) || parent == "." {
		return filepath.Clean(path)
	}
	return filepath.Join(parent, last)
}

// Package tui provides terminal user interface components for realmctl.
//
// This package uses the Bubble Tea framework for the interactive workspace
// picker behind "realmctl pick".
//
// # Workspace Picker
//
// The picker lists workspaces grouped by base install, each with its
// health status:
//
//	result, err := tui.RunPicker(entries)
//	switch result.Action {
//	case tui.ActionSelect:
//	    // Print launch instructions for result.Workspace
//	case tui.ActionFix:
//	    // Repair result.Workspace
//	case tui.ActionClean:
//	    // Clean result.Workspace
//	case tui.ActionQuit, tui.ActionNone:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Workspaces grouped by base install, headers auto-skipped
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Quick actions: Enter (select), f (fix), c (clean), q (quit)
//   - Color-coded health indicators
//
// SimplePicker renders the same grouping as plain text for
// non-interactive terminals.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui

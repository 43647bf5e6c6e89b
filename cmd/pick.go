package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/health"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/tui"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive workspace picker",
	Long: `Opens an interactive TUI for selecting a workspace.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Print the selected workspace path
  f      - Fix the selected workspace
  c      - Clean the selected workspace
  q/Esc  - Quit

When stdin is not a terminal a plain listing is printed instead.`,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runPick(cmd *cobra.Command, args []string) error {
	logging.Debug("picker mode started")

	configs, err := app.Default.Workspaces()
	if err != nil {
		return err
	}

	entries := make([]tui.Entry, len(configs))
	for i, cfg := range configs {
		entries[i] = tui.Entry{
			Config: cfg,
			Check:  health.Check(app.Default.FS, cfg.WorkspacePath),
		}
	}

	if !isTerminal() {
		fmt.Fprint(out(cmd), tui.SimplePicker(entries))
		return nil
	}

	if len(entries) == 0 {
		logInfo("No workspaces found. Create one with: realmctl create <name> <base-path>")
		return nil
	}

	result, err := tui.RunPicker(entries)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)
	return handlePick(cmd, result)
}

func handlePick(cmd *cobra.Command, result tui.PickerResult) error {
	if result.Workspace == nil {
		return nil
	}
	ws := result.Workspace

	switch result.Action {
	case tui.ActionSelect:
		fmt.Fprintln(out(cmd), ws.WorkspacePath)
	case tui.ActionFix:
		return fixWorkspace(cmd, ws.Name, ws.WorkspacePath, false)
	case tui.ActionClean:
		return cleanWorkspace(cmd, ws.Name, ws.WorkspacePath, workspace.CleanOptions{})
	}
	return nil
}

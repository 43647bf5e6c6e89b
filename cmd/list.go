package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/health"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all workspaces",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	configs, err := app.Default.Workspaces()
	if err != nil {
		return err
	}

	if len(configs) == 0 {
		logInfo("No workspaces found in %s. Create one with: realmctl create <name> <base-path>", app.Default.Root())
		return nil
	}

	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tSTATUS\tAGE\tPATH")
	fmt.Fprintln(w, "----\t----\t------\t---\t----")

	for _, cfg := range configs {
		check := health.Check(app.Default.FS, cfg.WorkspacePath)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			cfg.Name, cfg.BaseName, formatStatus(check.Status), check.Age, cfg.WorkspacePath)
	}

	return w.Flush()
}

func formatStatus(status health.Status) string {
	switch status {
	case health.StatusHealthy:
		return "✓ healthy"
	case health.StatusDrifted:
		return "○ drifted"
	case health.StatusConflicted:
		return "⚠ conflicted"
	case health.StatusBroken:
		return "✗ broken"
	default:
		return string(status)
	}
}

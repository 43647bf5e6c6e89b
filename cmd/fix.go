package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/audit"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

var fixCmd = &cobra.Command{
	Use:   "fix <name>",
	Short: "Repair a workspace without touching user data",
	Long: `Restores missing shared roots, shared directories, symlinks and private
directories of a workspace. Fix only creates; anything found in place of an
expected directory or symlink is reported and left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

var fixDryRun bool

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Report repairs without making them")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, wsPath, err := loadWorkspace(name)
	if err != nil {
		return err
	}
	return fixWorkspace(cmd, name, wsPath, fixDryRun)
}

func fixWorkspace(cmd *cobra.Command, name, wsPath string, dryRun bool) error {
	w := out(cmd)
	logInfo("Fixing workspace %s", name)

	result, err := workspace.Repair(app.Default.FS, wsPath, workspace.RepairOptions{DryRun: dryRun})
	if err != nil {
		app.Default.Record(audit.EventError, name, "repair: "+err.Error(), nil)
		return err
	}

	corrective := result.Corrective()
	warnings := result.Warnings()

	verb := "Created"
	if dryRun {
		verb = "Would create"
	}
	for _, a := range corrective {
		fmt.Fprintf(w, "  %s: %s\n", verb, a)
	}
	for _, a := range warnings {
		logWarning("%s", a)
	}

	if dryRun {
		logInfo("%d repairs pending, %d warnings", len(corrective), len(warnings))
		return nil
	}

	app.Default.Record(audit.EventRepair, name, "", map[string]int{
		"corrective": len(corrective),
		"warnings":   len(warnings),
	})

	if len(corrective) == 0 && len(warnings) == 0 {
		logSuccess("Workspace %s is healthy", name)
		return nil
	}
	logSuccess("Fix completed (%d repairs, %d warnings, no user data was overridden)", len(corrective), len(warnings))
	return nil
}

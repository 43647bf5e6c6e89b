package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/audit"
	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <name>",
	Short: "Empty a workspace's ephemeral directories",
	Long: `Removes the contents of every ephemeral directory (Cache, Logs, Errors, ...)
of a workspace. The directories themselves are kept.

With --wdb, *.wdb cache files under Data/ and its locale directories are
removed too.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

var (
	cleanWDB    bool
	cleanDryRun bool
)

func init() {
	cleanCmd.Flags().BoolVar(&cleanWDB, "wdb", false, "Also remove *.wdb cache files")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Report what would be removed")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	name := args[0]

	_, wsPath, err := loadWorkspace(name)
	if err != nil {
		return err
	}
	return cleanWorkspace(cmd, name, wsPath, workspace.CleanOptions{WDB: cleanWDB, DryRun: cleanDryRun})
}

func cleanWorkspace(cmd *cobra.Command, name, wsPath string, opts workspace.CleanOptions) error {
	w := out(cmd)
	logInfo("Cleaning workspace %s", name)

	result, err := workspace.Clean(app.Default.FS, wsPath, opts)
	if err != nil {
		app.Default.Record(audit.EventError, name, "clean: "+err.Error(), nil)
		return err
	}

	verb := "Removed"
	if opts.DryRun {
		verb = "Would remove"
	}
	for _, path := range result.Removed {
		fmt.Fprintf(w, "  %s: %s\n", verb, path)
	}
	for _, path := range result.Skipped {
		logWarning("Skipped %s", path)
	}

	failed := make([]string, 0, len(result.Failed))
	for path := range result.Failed {
		failed = append(failed, path)
	}
	sort.Strings(failed)
	for _, path := range failed {
		logError("Failed to remove %s: %v", path, result.Failed[path])
	}

	if opts.DryRun {
		logInfo("%d items (%s) would be removed", len(result.Removed), formatBytes(result.Bytes))
		return nil
	}

	app.Default.Record(audit.EventClean, name, "", map[string]int{
		"removed": len(result.Removed),
		"failed":  len(result.Failed),
	})

	if len(failed) > 0 {
		return errors.IOError(fmt.Sprintf("failed to remove %d items", len(failed)), result.Failed[failed[0]])
	}
	if len(result.Removed) == 0 {
		logSuccess("Nothing to clean")
		return nil
	}
	logSuccess("Cleaned %d items, freed %s", len(result.Removed), formatBytes(result.Bytes))
	return nil
}

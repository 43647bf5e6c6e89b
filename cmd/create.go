package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/audit"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

var createCmd = &cobra.Command{
	Use:   "create <name> <base-path>",
	Short: "Create a workspace from an initialized base",
	Long: `Creates a new workspace under the workspace root from a base that has
been scanned with 'realmctl init-base'.

Sharing rules map a path key to a strategy:
  global     one directory shared by every workspace
  base       one directory shared by workspaces of the same base
  workspace  private to this workspace

Override rules with --share, for example:
  realmctl create ptr ~/games/Chromie --share interface/addons=workspace`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

var (
	createShare  []string
	createDryRun bool
)

func init() {
	createCmd.Flags().StringArrayVarP(&createShare, "share", "s", nil, "Sharing override key=strategy (repeatable)")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Print the plan without creating anything")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	w := out(cmd)

	if err := workspace.ValidateName(name); err != nil {
		return err
	}

	base, err := resolvePath(args[1])
	if err != nil {
		return err
	}

	rules, err := sharingRules(createShare)
	if err != nil {
		return err
	}

	logInfo("Creating workspace %s from %s", name, base)
	fmt.Fprintln(w, "Sharing rules:")
	printRules(w, rules)

	result, err := app.Default.Creator().Create(workspace.CreateOptions{
		Name:     name,
		BasePath: base,
		Rules:    rules,
		DryRun:   createDryRun,
	})
	if err != nil {
		if result != nil && result.Report != nil {
			printReport(w, result.Report)
		}
		app.Default.Record(audit.EventError, name, "create: "+err.Error(), nil)
		return err
	}

	if createDryRun {
		printPlan(w, result.Plan)
		return nil
	}

	printReport(w, result.Report)
	app.Default.Record(audit.EventCreate, name, result.Config.BasePath, reportCounts(result.Report))

	logSuccess("Workspace created at %s", result.Config.WorkspacePath)
	if exe, ok := executable(result.Plan); ok {
		fmt.Fprintln(w, "\nLaunch it with:")
		fmt.Fprintf(w, "  %s\n", launchCommand(result.Config.WorkspacePath, exe))
	}
	return nil
}

func printPlan(w io.Writer, plan *workspace.Plan) {
	fmt.Fprintf(w, "Plan for %s (%d operations):\n", plan.Layout.Workspace, len(plan.Ops))
	for _, op := range plan.Ops {
		fmt.Fprintf(w, "  %s\n", op)
	}
	if len(plan.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d entries:\n", len(plan.Skipped))
		for _, s := range plan.Skipped {
			fmt.Fprintf(w, "  %s (%s)\n", s.Rel, s.Reason)
		}
	}
}

func printReport(w io.Writer, r *workspace.ApplyReport) {
	fmt.Fprintf(w, "  Hard links: %d (%s)\n", r.Hardlinks, formatBytes(r.BytesLinked))
	fmt.Fprintf(w, "  Copies:     %d (%s)\n", r.Copies, formatBytes(r.BytesCopied))
	fmt.Fprintf(w, "  Symlinks:   %d\n", r.Symlinks)
	fmt.Fprintf(w, "  Dirs:       %d\n", r.Dirs+r.SharedDirs)
	if r.FallbackSymlinks > 0 {
		logWarning("%d files could not be hard-linked and were symlinked to the base", r.FallbackSymlinks)
	}
	if r.Failed != nil {
		logError("Stopped at operation %d: %s", r.Failed.Index, r.Failed.Op)
	}
}

func reportCounts(r *workspace.ApplyReport) map[string]int {
	return map[string]int{
		"hardlinks":         r.Hardlinks,
		"copies":            r.Copies,
		"symlinks":          r.Symlinks,
		"dirs":              r.Dirs + r.SharedDirs,
		"fallback_symlinks": r.FallbackSymlinks,
		"existing":          r.Existing,
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

var initBaseCmd = &cobra.Command{
	Use:   "init-base <path>",
	Short: "Scan a base install and write its manifest",
	Long: `Verifies the base install against a profile, classifies every file and
directory, checksums immutable game data and writes manifest.toml into the
base directory. Rerunning rescans and replaces the manifest.

The profile is a builtin name or alias (see 'realmctl profiles') or a path
to a .toml/.yaml profile file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInitBase,
}

var initBaseProfile string

func init() {
	initBaseCmd.Flags().StringVarP(&initBaseProfile, "profile", "p", "", "Profile name or file (default from config)")
	rootCmd.AddCommand(initBaseCmd)
}

func runInitBase(cmd *cobra.Command, args []string) error {
	base, err := resolvePath(args[0])
	if err != nil {
		return err
	}
	if !app.Default.FS.IsDir(base) {
		return errors.NotFound("base directory", base)
	}

	p, err := profile.Lookup(app.Default.Settings.Profile)
	if err != nil {
		return err
	}

	w := out(cmd)
	logInfo("Initializing base %s with profile %s", base, p.Name)

	if err := p.VerifyRequirements(base); err != nil {
		return err
	}
	logSuccess("All required files and directories present")

	for _, warning := range p.CheckWarnings(base) {
		logWarning("%s", warning)
	}

	m, err := manifest.Build(base, p)
	if err != nil {
		return err
	}

	if err := manifest.Save(m, base); err != nil {
		return err
	}

	counts := m.CountByRole()
	for _, role := range profile.Roles() {
		if counts[role] > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", role, counts[role])
		}
	}
	logging.Debug("manifest written", "path", manifest.Path(base), "entries", len(m.FileRoles))

	logSuccess("Manifest written to %s (%d entries, %d checksums)", manifest.Path(base), len(m.FileRoles), len(m.Checksums))
	return nil
}

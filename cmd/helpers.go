package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/config"
	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

// out returns the writer for a command's regular output.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// loadWorkspace resolves a workspace by name under the configured root.
func loadWorkspace(name string) (*workspace.Config, string, error) {
	if err := workspace.ValidateName(name); err != nil {
		return nil, "", err
	}
	return app.Default.Find(name)
}

// resolvePath expands "~" and makes path absolute.
func resolvePath(path string) (string, error) {
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return "", errors.ConfigError("invalid path "+path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.IOError("failed to resolve "+path, err)
	}
	return abs, nil
}

// sharingRules returns the configured rules with --share overrides applied.
func sharingRules(overrides []string) (sharing.Rules, error) {
	parsed, err := sharing.ParseOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return app.Default.Settings.Share.Merge(parsed), nil
}

// printRules writes rules sorted by key.
func printRules(w io.Writer, rules sharing.Rules) {
	for _, k := range rules.Keys() {
		fmt.Fprintf(w, "  %s = %s\n", k, rules[k])
	}
}

// launchCommand suggests a wine invocation for exe with a per-workspace prefix.
func launchCommand(wsPath, exe string) string {
	return shellquote.Join("env", "WINEPREFIX="+filepath.Join(wsPath, ".wine"), "wine", exe)
}

// executable returns the first Executable entry of a plan, if any.
func executable(plan *workspace.Plan) (string, bool) {
	for _, op := range plan.Ops {
		if op.Role == profile.Executable {
			return op.Path, true
		}
	}
	return "", false
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

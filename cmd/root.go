package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/config"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
)

var (
	verbose       bool
	jsonOutput    bool
	configFile    string
	workspaceRoot string
)

var rootCmd = &cobra.Command{
	Use:   "realmctl",
	Short: "WoW client workspace manager",
	Long: `realmctl materializes independent client workspaces from one base install.

Each workspace is a directory tree where:
  - Immutable data and executables are hard-linked from the base
  - Mutable data is copied
  - Shared directories (screenshots, addons) are symlinked to shared roots
  - Settings (WTF) stay private to the workspace`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/realmctl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&workspaceRoot, "root", "", "Workspace root directory")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// setup configures logging and loads settings into app.Default.
func setup(cmd *cobra.Command, args []string) error {
	logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
	logging.SetUserOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	v := config.New(configFile)
	if err := v.BindPFlag(config.KeyWorkspaceRoot, cmd.Root().PersistentFlags().Lookup("root")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("profile"); f != nil {
		if err := v.BindPFlag(config.KeyProfile, f); err != nil {
			return err
		}
	}

	a, err := app.Load(v)
	if err != nil {
		return err
	}
	app.SetDefault(a)
	logging.Debug("settings loaded", "root", a.Root(), "profile", a.Settings.Profile)
	return nil
}

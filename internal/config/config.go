package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
)

const (
	AppName   = "realmctl"
	EnvPrefix = "REALMCTL"

	fileName = "config"
	fileType = "toml"

	KeyWorkspaceRoot = "workspace_root"
	KeyProfile       = "profile"
	KeyShare         = "share"
)

// Settings are the resolved tool settings.
type Settings struct {
	// WorkspaceRoot holds every workspace and the shared roots.
	WorkspaceRoot string
	// Profile is the profile name or file used by init-base.
	Profile string
	// Share is the default sharing rules with configured overrides applied.
	Share sharing.Rules
	// ConfigFile is the file settings were read from, if it existed.
	ConfigFile string
}

// Dir returns the realmctl config directory (~/.config/realmctl).
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", AppName)
	}
	return filepath.Join(dir, AppName)
}

// FilePath returns the default config file (~/.config/realmctl/config.toml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// DefaultWorkspaceRoot returns ~/.local/share/wow_workspaces.
func DefaultWorkspaceRoot() string {
	return filepath.Join("~", ".local", "share", "wow_workspaces")
}

// New returns a Viper instance reading configFile (FilePath when empty)
// and REALMCTL_* environment variables, with defaults set.
func New(configFile string) *viper.Viper {
	if configFile == "" {
		configFile = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyWorkspaceRoot, DefaultWorkspaceRoot())
	v.SetDefault(KeyProfile, profile.DefaultProfile)
	return v
}

// Load reads the config file if it exists and resolves the settings.
func Load(v *viper.Viper) (*Settings, error) {
	settings := &Settings{}

	file := v.ConfigFileUsed()
	if _, err := os.Stat(file); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to read %s", file), err)
		}
		settings.ConfigFile = file
	}

	root, err := ExpandHome(v.GetString(KeyWorkspaceRoot))
	if err != nil {
		return nil, errors.ConfigError("invalid workspace_root", err)
	}
	if strings.TrimSpace(root) == "" {
		return nil, errors.ConfigError("workspace_root must not be empty", nil)
	}
	settings.WorkspaceRoot = root

	settings.Profile = v.GetString(KeyProfile)

	overrides := make(sharing.Rules)
	for key, value := range v.GetStringMapString(KeyShare) {
		strategy, err := sharing.ParseStrategy(value)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("invalid share rule %q", key), err)
		}
		overrides[key] = strategy
	}
	settings.Share = sharing.DefaultRules().Merge(overrides)

	return settings, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

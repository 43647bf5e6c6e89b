// Package workspace materializes client workspaces from a scanned base and
// keeps them in agreement with it.
package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// ConfigFileName is the record written inside every workspace.
const ConfigFileName = "workspace.toml"

// validName matches safe workspace names: alphanumeric, hyphens, underscores, dots.
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that a workspace name is safe to use as a single
// directory name under the workspace root.
func ValidateName(name string) error {
	if name == "" {
		return errors.ValidationError("workspace name must not be empty")
	}
	if len(name) > 128 {
		return errors.ValidationError("workspace name too long (max 128 characters)")
	}
	if !validName.MatchString(name) {
		return errors.ValidationError(fmt.Sprintf("workspace name %q contains invalid characters (allowed: alphanumeric, hyphens, underscores, dots)", name))
	}
	return nil
}

// Config is the persisted description of a workspace.
type Config struct {
	Name          string        `toml:"name"`
	BaseName      string        `toml:"base_name"`
	BasePath      string        `toml:"base_path"`
	WorkspacePath string        `toml:"workspace_path"`
	CreatedAt     time.Time     `toml:"created_at"`
	SharingRules  sharing.Rules `toml:"sharing_rules"`
}

// Validate checks that the Config is complete.
func (c *Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if err := profile.ValidateName(c.BaseName); err != nil {
		return errors.Wrap(errors.ExitValidation, "workspace config: invalid base_name", err)
	}
	if c.BasePath == "" {
		return errors.ValidationError("workspace config: base_path is required")
	}
	if c.WorkspacePath == "" {
		return errors.ValidationError("workspace config: workspace_path is required")
	}
	return c.SharingRules.Validate()
}

// Root returns the workspace root the workspace lives under.
func (c *Config) Root() string {
	return filepath.Dir(c.WorkspacePath)
}

// ConfigPath returns the location of the config record for a workspace directory.
func ConfigPath(workspacePath string) string {
	return filepath.Join(workspacePath, ConfigFileName)
}

// SaveConfig writes cfg into its workspace directory.
func SaveConfig(fsys system.FileSystem, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.IOError("failed to encode workspace config", err)
	}
	if err := fsys.WriteFile(ConfigPath(cfg.WorkspacePath), buf.Bytes(), 0644); err != nil {
		return errors.IOError("failed to write workspace config", err)
	}
	return nil
}

// LoadConfig reads the config record from a workspace directory.
func LoadConfig(fsys system.FileSystem, workspacePath string) (*Config, error) {
	data, err := fsys.ReadFile(ConfigPath(workspacePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("workspace", workspacePath)
		}
		return nil, errors.IOError("failed to read workspace config", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse %s", ConfigPath(workspacePath)), err)
	}
	if cfg.SharingRules == nil {
		cfg.SharingRules = sharing.Rules{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// safePath joins name onto root and verifies the result stays a direct
// child of root.
func safePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errors.ValidationError("name cannot be an absolute path")
	}
	if filepath.Dir(name) != "." {
		return "", errors.ValidationError("name cannot contain path separators")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.ValidationError(fmt.Sprintf("invalid workspace root: %v", err))
	}
	path := filepath.Join(absRoot, name)

	if !strings.HasPrefix(path, absRoot+string(filepath.Separator)) {
		return "", errors.ValidationError("path escapes workspace root")
	}
	return path, nil
}

// PathFor returns the directory a workspace named name occupies under root.
func PathFor(root, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return safePath(root, name)
}

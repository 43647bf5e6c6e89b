package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
)

// Lookup resolves nameOrPath to a builtin profile (by name or alias) or,
// failing that, loads it as a profile file.
func Lookup(nameOrPath string) (*Profile, error) {
	if p, ok := Builtin(nameOrPath); ok {
		return p, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, errors.NotFound("profile", nameOrPath)
	}
	return LoadFile(nameOrPath)
}

// LoadFile reads a profile from a .toml, .yaml or .yml file.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read profile %s", path), err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var p *Profile
	switch ext {
	case ".toml":
		p, err = ParseTOML(data)
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unsupported profile format %q", ext), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// ParseTOML parses and compiles a TOML profile.
func ParseTOML(data []byte) (*Profile, error) {
	var p Profile
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, errors.ConfigError("failed to parse profile TOML", err)
	}
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseYAML parses and compiles a YAML profile.
func ParseYAML(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.ConfigError("failed to parse profile YAML", err)
	}
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

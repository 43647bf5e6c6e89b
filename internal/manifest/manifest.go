package manifest

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

const (
	// FileName is the manifest's fixed name inside the base directory.
	FileName = "manifest.toml"

	// FormatVersion is written into every new manifest.
	FormatVersion = "1.0.0"

	// supportedFormats is the range of formats Load accepts.
	supportedFormats = "^1"
)

// Manifest is the persisted role classification of a base tree.
// Once saved it is never updated in place; rescanning produces a new one.
type Manifest struct {
	Format    string                  `toml:"format"`
	Profile   string                  `toml:"profile"`
	BasePath  string                  `toml:"base_path"`
	CreatedAt time.Time               `toml:"created_at"`
	Version   string                  `toml:"version,omitempty"`
	FileRoles map[string]profile.Role `toml:"file_roles"`
	Checksums map[string]string       `toml:"checksums"`
}

// Validate checks the manifest's structural invariants.
func (m *Manifest) Validate() error {
	if err := profile.ValidateName(m.Profile); err != nil {
		return errors.Wrap(errors.ExitValidation, "manifest: invalid profile", err)
	}
	if m.BasePath == "" {
		return errors.ValidationError("manifest: base_path is required")
	}

	if m.Format != "" {
		v, err := semver.NewVersion(m.Format)
		if err != nil {
			return errors.Wrap(errors.ExitValidation, fmt.Sprintf("manifest: invalid format %q", m.Format), err)
		}
		c, err := semver.NewConstraint(supportedFormats)
		if err != nil {
			return errors.Wrap(errors.ExitGeneralError, "manifest: invalid format constraint", err)
		}
		if !c.Check(v) {
			return errors.ValidationError(fmt.Sprintf("manifest: unsupported format %s (want %s)", m.Format, supportedFormats))
		}
	}

	for rel, role := range m.FileRoles {
		if err := validateKey(rel); err != nil {
			return err
		}
		if !role.Valid() {
			return errors.ValidationError(fmt.Sprintf("manifest: %s: unknown role %q", rel, role))
		}
	}

	for rel := range m.Checksums {
		if role, ok := m.FileRoles[rel]; !ok || role != profile.BaseData {
			return errors.ValidationError(fmt.Sprintf("manifest: checksum for %s which is not BaseData", rel))
		}
	}

	return nil
}

// validateKey ensures a role-map key is a clean, relative, slash-separated path.
func validateKey(rel string) error {
	if rel == "" || strings.HasPrefix(rel, "/") || strings.Contains(rel, "\\") {
		return errors.ValidationError(fmt.Sprintf("manifest: invalid path %q", rel))
	}
	cleaned := path.Clean(rel)
	if cleaned != rel || cleaned == ".." || strings.HasPrefix(cleaned, "../") || cleaned == "." {
		return errors.ValidationError(fmt.Sprintf("manifest: path must be clean and inside the base: %q", rel))
	}
	return nil
}

// Paths returns every classified path in lexical order.
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.FileRoles))
	for rel := range m.FileRoles {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

// Role returns the role recorded for rel and whether it is present.
func (m *Manifest) Role(rel string) (profile.Role, bool) {
	role, ok := m.FileRoles[rel]
	return role, ok
}

// CountByRole tallies entries per role.
func (m *Manifest) CountByRole() map[profile.Role]int {
	counts := make(map[profile.Role]int)
	for _, role := range m.FileRoles {
		counts[role]++
	}
	return counts
}

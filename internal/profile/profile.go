package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
)

// GlobalScope is the shared root name reserved for the global scope.
const GlobalScope = "global"

// validName matches profile names usable as a single path segment.
var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that a profile name can name a base shared root.
func ValidateName(name string) error {
	if name == "" {
		return errors.ValidationError("profile name is required")
	}
	if !validName.MatchString(name) {
		return errors.ValidationError(fmt.Sprintf("invalid profile name %q: must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", name))
	}
	if strings.EqualFold(name, GlobalScope) {
		return errors.ValidationError(fmt.Sprintf("invalid profile name %q: reserved for the global shared root", name))
	}
	return nil
}

// RoleRule assigns Role to every path its pattern matches.
//
// A literal rule matches the path itself and anything below it. A regex rule
// matches anywhere in the path; anchor it with ^ to match from the root.
type RoleRule struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Role    Role   `toml:"role" yaml:"role"`
	Regex   bool   `toml:"regex,omitempty" yaml:"regex,omitempty"`
}

// WarningRule emits Message when Path exists under the base.
type WarningRule struct {
	Path    string `toml:"path" yaml:"path"`
	Message string `toml:"message" yaml:"message"`
}

// Profile is a named rule set for one client layout.
type Profile struct {
	Name          string        `toml:"name" yaml:"name"`
	Version       string        `toml:"version,omitempty" yaml:"version,omitempty"`
	RequiredFiles []string      `toml:"required_files,omitempty" yaml:"required_files,omitempty"`
	RequiredDirs  []string      `toml:"required_dirs,omitempty" yaml:"required_dirs,omitempty"`
	RoleRules     []RoleRule    `toml:"role_rules" yaml:"role_rules"`
	Warnings      []WarningRule `toml:"warnings,omitempty" yaml:"warnings,omitempty"`

	matchers []matcher
}

type matchKind int

const (
	matchLiteral matchKind = iota
	matchPattern
)

// matcher is a compiled RoleRule.
type matcher struct {
	kind    matchKind
	literal string
	re      *regexp.Regexp
	role    Role
}

func (m matcher) match(rel string) bool {
	switch m.kind {
	case matchPattern:
		return m.re.MatchString(rel)
	default:
		return rel == m.literal || strings.HasPrefix(rel, m.literal+"/")
	}
}

// Compile validates the profile and compiles its rules. Profiles returned by
// Builtin, Lookup and LoadFile are already compiled.
func (p *Profile) Compile() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}

	matchers := make([]matcher, 0, len(p.RoleRules))
	for i, rule := range p.RoleRules {
		if rule.Pattern == "" {
			return errors.ValidationError(fmt.Sprintf("profile %s: role_rules[%d]: pattern is required", p.Name, i))
		}
		if !rule.Role.Valid() {
			return errors.ValidationError(fmt.Sprintf("profile %s: role_rules[%d]: unknown role %q", p.Name, i, rule.Role))
		}
		if !rule.Regex {
			matchers = append(matchers, matcher{kind: matchLiteral, literal: strings.TrimSuffix(rule.Pattern, "/"), role: rule.Role})
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return errors.Wrap(errors.ExitValidation, fmt.Sprintf("profile %s: role_rules[%d]: invalid pattern %q", p.Name, i, rule.Pattern), err)
		}
		matchers = append(matchers, matcher{kind: matchPattern, re: re, role: rule.Role})
	}

	for _, list := range [][]string{p.RequiredFiles, p.RequiredDirs} {
		for _, rel := range list {
			if err := validateRelPath(rel); err != nil {
				return errors.ValidationError(fmt.Sprintf("profile %s: %v", p.Name, err))
			}
		}
	}
	for _, w := range p.Warnings {
		if err := validateRelPath(w.Path); err != nil {
			return errors.ValidationError(fmt.Sprintf("profile %s: warning: %v", p.Name, err))
		}
	}

	p.matchers = matchers
	return nil
}

// Classify returns the role of the first rule matching rel, or Other.
// rel is slash-separated and relative to the base.
func (p *Profile) Classify(rel string) Role {
	if p.matchers == nil && len(p.RoleRules) > 0 {
		if err := p.Compile(); err != nil {
			logging.Debug("profile does not compile, classifying as Other", "profile", p.Name, "error", err)
			return Other
		}
	}
	rel = filepath.ToSlash(rel)
	for _, m := range p.matchers {
		if m.match(rel) {
			return m.role
		}
	}
	return Other
}

// VerifyRequirements fails if a required file is absent or not a regular
// file, or a required directory is absent or not a directory.
func (p *Profile) VerifyRequirements(baseDir string) error {
	for _, rel := range p.RequiredFiles {
		info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			return errors.MissingRequirement("file", rel)
		}
	}

	for _, rel := range p.RequiredDirs {
		info, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(rel)))
		if err != nil || !info.IsDir() {
			return errors.MissingRequirement("directory", rel)
		}
	}

	return nil
}

// CheckWarnings returns the message of every warning rule whose path exists
// under baseDir.
func (p *Profile) CheckWarnings(baseDir string) []string {
	var warnings []string
	for _, w := range p.Warnings {
		if _, err := os.Lstat(filepath.Join(baseDir, filepath.FromSlash(w.Path))); err == nil {
			warnings = append(warnings, w.Message)
		}
	}
	return warnings
}

// validateRelPath ensures a profile path is relative and does not escape the base.
func validateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("absolute path is not allowed: %s", p)
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path must not escape the base (contains ..): %s", p)
	}
	return nil
}

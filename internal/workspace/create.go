package workspace

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// Creator builds workspaces under a single workspace root.
type Creator struct {
	fs   system.FileSystem
	root string
}

// NewCreator returns a Creator for root. A nil fsys uses the OS filesystem.
func NewCreator(root string, fsys system.FileSystem) *Creator {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	return &Creator{fs: fsys, root: root}
}

// Root returns the workspace root.
func (c *Creator) Root() string {
	return c.root
}

// CreateOptions configures workspace creation.
type CreateOptions struct {
	Name     string
	BasePath string
	Rules    sharing.Rules
	// DryRun plans the workspace without touching the filesystem.
	DryRun bool
}

// CreateResult describes a created (or planned) workspace.
type CreateResult struct {
	Config *Config
	Plan   *Plan
	Report *ApplyReport
}

// Create materializes a new workspace from the manifest stored in
// opts.BasePath. Validation, name collisions and manifest problems are
// reported before anything is written.
func (c *Creator) Create(opts CreateOptions) (*CreateResult, error) {
	logging.Debug("starting workspace creation", "name", opts.Name, "base", opts.BasePath)

	wsPath, err := PathFor(c.root, opts.Name)
	if err != nil {
		return nil, err
	}

	rules := opts.Rules
	if rules == nil {
		rules = sharing.DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	if c.fs.Exists(wsPath) {
		return nil, errors.AlreadyExists(wsPath)
	}

	basePath, err := filepath.Abs(opts.BasePath)
	if err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("invalid base path: %v", err))
	}
	m, err := manifest.Load(basePath)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(wsPath)
	roots, err := NewSharedRoots(root, m.Profile)
	if err != nil {
		return nil, err
	}
	plan, err := BuildPlan(c.fs, m, rules, Layout{Base: basePath, Workspace: wsPath, Roots: roots})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Name:          opts.Name,
		BaseName:      m.Profile,
		BasePath:      basePath,
		WorkspacePath: wsPath,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		SharingRules:  rules,
	}
	result := &CreateResult{Config: cfg, Plan: plan}
	if opts.DryRun {
		return result, nil
	}

	if err := c.fs.MkdirAll(wsPath, 0755); err != nil {
		return nil, errors.IOError("failed to create workspace directory", err)
	}
	for _, dir := range roots.All() {
		if err := c.fs.MkdirAll(dir, 0755); err != nil {
			return nil, errors.IOError("failed to create shared root", err)
		}
	}

	report, err := Apply(c.fs, plan)
	result.Report = report
	if err != nil {
		return result, err
	}

	if err := SaveConfig(c.fs, cfg); err != nil {
		return result, err
	}

	logging.Debug("workspace created", "name", cfg.Name, "path", wsPath,
		"symlinks", report.Symlinks, "hardlinks", report.Hardlinks, "copies", report.Copies)
	return result, nil
}

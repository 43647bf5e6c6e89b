package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// ActionKind names a repair action. Corrective kinds create something;
// advisory kinds only report.
type ActionKind string

const (
	ActionCreateSharedRoot ActionKind = "create-shared-root"
	ActionCreateDir        ActionKind = "create-dir"
	ActionCreateTarget     ActionKind = "create-target"
	ActionCreateSymlink    ActionKind = "create-symlink"
	ActionRecreateTarget   ActionKind = "recreate-target"

	ActionWarnSymlinkNotDir ActionKind = "warn-symlink-not-dir"
	ActionWarnFileNotDir    ActionKind = "warn-file-not-dir"
	ActionWarnNotSymlink    ActionKind = "warn-not-symlink"
	ActionWarnForeignLink   ActionKind = "warn-foreign-link"
)

// Advisory reports whether k is a warning that changed nothing.
func (k ActionKind) Advisory() bool {
	switch k {
	case ActionWarnSymlinkNotDir, ActionWarnFileNotDir, ActionWarnNotSymlink, ActionWarnForeignLink:
		return true
	}
	return false
}

// Action is one repair step taken (or, in a dry run, proposed).
type Action struct {
	Kind ActionKind
	Rel  string
	Path string
	// Target is the shared location involved, if any.
	Target string
}

func (a Action) String() string {
	if a.Target != "" {
		return fmt.Sprintf("%s %s -> %s", a.Kind, a.Path, a.Target)
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Path)
}

// RepairOptions configures Repair.
type RepairOptions struct {
	DryRun bool
}

// RepairResult lists what Repair did.
type RepairResult struct {
	Config  *Config
	Actions []Action
}

// Corrective returns the actions that changed (or would change) the workspace.
func (r *RepairResult) Corrective() []Action {
	var out []Action
	for _, a := range r.Actions {
		if !a.Kind.Advisory() {
			out = append(out, a)
		}
	}
	return out
}

// Warnings returns the advisory actions.
func (r *RepairResult) Warnings() []Action {
	var out []Action
	for _, a := range r.Actions {
		if a.Kind.Advisory() {
			out = append(out, a)
		}
	}
	return out
}

type repairer struct {
	fs      system.FileSystem
	cfg     *Config
	roots   SharedRoots
	dryRun  bool
	actions []Action
}

// Repair brings the shareable directories of the workspace at wsPath back
// in line with its base manifest and sharing rules. It only ever creates
// directories and symlinks; anything a user put in place is reported and
// left alone.
func Repair(fsys system.FileSystem, wsPath string, opts RepairOptions) (*RepairResult, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}

	cfg, err := LoadConfig(fsys, wsPath)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	// The workspace may have been moved since creation.
	absWS, err := filepath.Abs(wsPath)
	if err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("invalid workspace path: %v", err))
	}

	roots, err := NewSharedRoots(filepath.Dir(absWS), cfg.BaseName)
	if err != nil {
		return nil, err
	}

	r := &repairer{
		fs:     fsys,
		cfg:    cfg,
		roots:  roots,
		dryRun: opts.DryRun,
	}

	for _, root := range r.roots.All() {
		if fsys.Exists(root) {
			continue
		}
		if err := r.mkdir(root); err != nil {
			return nil, err
		}
		r.record(ActionCreateSharedRoot, "", root, "")
	}

	// covered holds shared directories and directories left to the user;
	// nothing beneath them is handled on its own.
	var covered []string
	for _, c := range shareableDirs(fsys, m, cfg.BasePath) {
		if underAny(c.rel, covered) {
			logging.Debug("reachable through ancestor", "path", c.rel)
			continue
		}

		strategy := sharing.Resolve(c.rel, cfg.SharingRules, sharing.DefaultFor(c.role))
		path := filepath.Join(absWS, filepath.FromSlash(c.rel))

		if !strategy.Shared() {
			conflict, err := r.private(c.rel, path)
			if err != nil {
				return nil, err
			}
			if conflict {
				covered = append(covered, c.rel)
			}
			continue
		}

		covered = append(covered, c.rel)
		if err := r.shared(c.rel, path, strategy); err != nil {
			return nil, err
		}
	}

	logging.Debug("workspace repaired", "workspace", absWS, "actions", len(r.actions), "dry_run", opts.DryRun)
	return &RepairResult{Config: cfg, Actions: r.actions}, nil
}

func (r *repairer) record(kind ActionKind, rel, path, target string) {
	a := Action{Kind: kind, Rel: rel, Path: path, Target: target}
	if kind.Advisory() {
		logging.Warn("workspace drift left in place", "path", path, "kind", string(kind))
	} else {
		logging.Debug("repair action", "path", path, "kind", string(kind), "dry_run", r.dryRun)
	}
	r.actions = append(r.actions, a)
}

func (r *repairer) mkdir(path string) error {
	if r.dryRun {
		return nil
	}
	if err := r.fs.MkdirAll(path, 0755); err != nil {
		return errors.IOError(fmt.Sprintf("failed to create %s", path), err)
	}
	return nil
}

// private handles a directory that should be a real directory in the
// workspace. It reports whether the path was left to the user.
func (r *repairer) private(rel, path string) (bool, error) {
	info, err := r.fs.Lstat(path)
	switch {
	case os.IsNotExist(err):
		if err := r.mkdir(path); err != nil {
			return false, err
		}
		r.record(ActionCreateDir, rel, path, "")
	case err != nil:
		return false, errors.IOError(fmt.Sprintf("failed to inspect %s", path), err)
	case info.Mode()&os.ModeSymlink != 0:
		r.record(ActionWarnSymlinkNotDir, rel, path, "")
		return true, nil
	case !info.IsDir():
		r.record(ActionWarnFileNotDir, rel, path, "")
		return true, nil
	}
	return false, nil
}

// shared handles a directory that should be a symlink into a shared root.
func (r *repairer) shared(rel, path string, strategy sharing.Strategy) error {
	target, err := r.roots.Target(strategy, rel)
	if err != nil {
		return err
	}

	info, err := r.fs.Lstat(path)
	switch {
	case os.IsNotExist(err):
		return r.relink(rel, path, target)
	case err != nil:
		return errors.IOError(fmt.Sprintf("failed to inspect %s", path), err)
	case info.Mode()&os.ModeSymlink == 0:
		r.record(ActionWarnNotSymlink, rel, path, target)
		return nil
	}

	resolved, err := system.ResolveLink(r.fs, path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to read link %s", path), err)
	}
	inRoot := r.roots.Contains(strategy, resolved)

	if _, err := r.fs.Stat(path); err == nil {
		if !inRoot {
			r.record(ActionWarnForeignLink, rel, path, resolved)
		}
		return nil
	}

	// Dangling: bring the link back to life by recreating what it points at.
	if !inRoot {
		r.record(ActionWarnForeignLink, rel, path, resolved)
		return nil
	}
	if err := r.mkdir(resolved); err != nil {
		return err
	}
	r.record(ActionRecreateTarget, rel, path, resolved)
	return nil
}

// relink recreates a missing shared link.
func (r *repairer) relink(rel, path, target string) error {
	if !r.fs.Exists(target) {
		if err := r.mkdir(target); err != nil {
			return err
		}
		r.record(ActionCreateTarget, rel, target, "")
	}

	parent := filepath.Dir(path)
	if !r.fs.Exists(parent) {
		if err := r.mkdir(parent); err != nil {
			return err
		}
	}

	if r.dryRun {
		r.record(ActionCreateSymlink, rel, path, target)
		return nil
	}

	// Creating the target may have made path reachable through an ancestor link.
	if r.fs.Exists(path) {
		logging.Debug("path reachable after creating target, not linking", "path", path)
		return nil
	}
	if err := r.fs.Symlink(target, path); err != nil {
		return errors.LinkError(path, err)
	}
	r.record(ActionCreateSymlink, rel, path, target)
	return nil
}

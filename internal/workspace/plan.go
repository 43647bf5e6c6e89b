package workspace

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// OpKind is a single kind of filesystem mutation.
type OpKind string

const (
	OpMkdir        OpKind = "mkdir"
	OpSharedDir    OpKind = "shared-dir"
	OpSymlink      OpKind = "symlink"
	OpHardlink     OpKind = "hardlink"
	OpCopy         OpKind = "copy"
	OpEnsureParent OpKind = "ensure-parent"
)

// Op is one planned mutation. Path is the destination; Source is the link
// target or copy source where the kind has one.
type Op struct {
	Kind     OpKind
	Rel      string
	Path     string
	Source   string
	Role     profile.Role
	Strategy sharing.Strategy
}

func (o Op) String() string {
	switch o.Kind {
	case OpSymlink, OpHardlink, OpCopy:
		return fmt.Sprintf("%-13s %s -> %s", o.Kind, o.Path, o.Source)
	}
	return fmt.Sprintf("%-13s %s", o.Kind, o.Path)
}

// SkipReason explains why a manifest entry produced no operation.
type SkipReason string

const (
	SkipUnderSharedDir SkipReason = "under shared directory"
	SkipCoveredByLink  SkipReason = "reachable through symlink"
	SkipNoParent       SkipReason = "parent left to sharing rule"
	SkipNotInBase      SkipReason = "missing from base"
	SkipNotSeeded      SkipReason = "not seeded from base"
)

// Skip records a manifest entry the planner left alone.
type Skip struct {
	Rel    string
	Reason SkipReason
}

// Layout locates the three trees a plan reads from and writes to.
type Layout struct {
	Base      string
	Workspace string
	Roots     SharedRoots
}

// Plan is the ordered list of operations that builds a workspace.
type Plan struct {
	Layout  Layout
	Ops     []Op
	Skipped []Skip
}

// Count returns the number of operations of kind k.
func (p *Plan) Count(k OpKind) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// candidate is a shareable directory considered by the first pass and by repair.
type candidate struct {
	rel  string
	role profile.Role
}

// shareableDirs returns the UserMedia and UserConfig entries that are
// directories in the base, shallowest first.
func shareableDirs(fsys system.FileSystem, m *manifest.Manifest, base string) []candidate {
	var out []candidate
	for rel, role := range m.FileRoles {
		if !role.Shareable() {
			continue
		}
		if !fsys.IsDir(filepath.Join(base, filepath.FromSlash(rel))) {
			continue
		}
		out = append(out, candidate{rel: rel, role: role})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := depth(out[i].rel), depth(out[j].rel)
		if di != dj {
			return di < dj
		}
		return out[i].rel < out[j].rel
	})
	return out
}

func depth(rel string) int {
	return strings.Count(rel, "/")
}

// underAny reports whether rel lies strictly beneath one of dirs.
func underAny(rel string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}

type planner struct {
	fsys   system.FileSystem
	m      *manifest.Manifest
	rules  sharing.Rules
	layout Layout
	plan   *Plan

	// present holds workspace-relative directories that exist or are planned.
	present map[string]bool
	// links holds workspace-relative paths that are or will be symlinks.
	links map[string]bool
}

// BuildPlan computes every operation needed to materialize m into
// layout.Workspace. It reads the filesystem but never changes it.
func BuildPlan(fsys system.FileSystem, m *manifest.Manifest, rules sharing.Rules, layout Layout) (*Plan, error) {
	p := &planner{
		fsys:    fsys,
		m:       m,
		rules:   rules,
		layout:  layout,
		plan:    &Plan{Layout: layout},
		present: map[string]bool{".": true},
		links:   make(map[string]bool),
	}

	handled, err := p.sharedPass()
	if err != nil {
		return nil, err
	}
	p.contentPass(handled)

	logging.Debug("workspace planned", "workspace", layout.Workspace, "ops", len(p.plan.Ops), "skipped", len(p.plan.Skipped))
	return p.plan, nil
}

func (p *planner) wsPath(rel string) string {
	return filepath.Join(p.layout.Workspace, filepath.FromSlash(rel))
}

func (p *planner) basePath(rel string) string {
	return filepath.Join(p.layout.Base, filepath.FromSlash(rel))
}

func (p *planner) add(op Op) {
	p.plan.Ops = append(p.plan.Ops, op)
}

func (p *planner) skip(rel string, reason SkipReason) {
	logging.Debug("entry skipped", "path", rel, "reason", string(reason))
	p.plan.Skipped = append(p.plan.Skipped, Skip{Rel: rel, Reason: reason})
}

// sharedPass plans the shareable directories: a symlink into a shared root
// for Global and Base, a private directory for Workspace.
func (p *planner) sharedPass() (map[string]bool, error) {
	handled := make(map[string]bool)
	var sharedDirs []string

	for _, c := range shareableDirs(p.fsys, p.m, p.layout.Base) {
		handled[c.rel] = true

		if underAny(c.rel, sharedDirs) {
			p.skip(c.rel, SkipUnderSharedDir)
			continue
		}

		strategy := sharing.Resolve(c.rel, p.rules, sharing.DefaultFor(c.role))
		p.ensureParentFor(c.rel)

		if !strategy.Shared() {
			p.add(Op{Kind: OpMkdir, Rel: c.rel, Path: p.wsPath(c.rel), Role: c.role, Strategy: strategy})
			p.present[c.rel] = true
			continue
		}

		target, err := p.layout.Roots.Target(strategy, c.rel)
		if err != nil {
			return nil, err
		}
		p.add(Op{Kind: OpSharedDir, Rel: c.rel, Path: target, Role: c.role, Strategy: strategy})
		p.add(Op{Kind: OpSymlink, Rel: c.rel, Path: p.wsPath(c.rel), Source: target, Role: c.role, Strategy: strategy})
		p.links[c.rel] = true
		sharedDirs = append(sharedDirs, c.rel)
	}

	return handled, nil
}

// ensureParentFor plans the parent chain of rel without any sharing checks.
func (p *planner) ensureParentFor(rel string) {
	parent := path.Dir(rel)
	if p.present[parent] {
		return
	}
	if !p.fsys.IsDir(p.wsPath(parent)) {
		p.add(Op{Kind: OpEnsureParent, Rel: parent, Path: p.wsPath(parent)})
	}
	for d := parent; d != "."; d = path.Dir(d) {
		p.present[d] = true
	}
}

// isLink reports whether rel is a planned or existing symlink.
func (p *planner) isLink(rel string) bool {
	return p.links[rel] || system.IsSymlink(p.fsys, p.wsPath(rel))
}

// contentPass plans every entry the shared pass did not handle.
func (p *planner) contentPass(handled map[string]bool) {
	for _, rel := range p.m.Paths() {
		if handled[rel] {
			continue
		}
		role := p.m.FileRoles[rel]

		info, err := p.fsys.Stat(p.basePath(rel))
		if err != nil {
			p.skip(rel, SkipNotInBase)
			continue
		}

		if reason, ok := p.prepareParent(rel); !ok {
			p.skip(rel, reason)
			continue
		}

		dst := p.wsPath(rel)
		switch {
		case info.IsDir():
			if role.Shareable() {
				p.skip(rel, SkipNotSeeded)
				continue
			}
			p.add(Op{Kind: OpMkdir, Rel: rel, Path: dst, Role: role})
			p.present[rel] = true

		case role == profile.Executable || role == profile.BaseData:
			p.add(Op{Kind: OpHardlink, Rel: rel, Path: dst, Source: p.basePath(rel), Role: role})

		case role == profile.MutableData || role == profile.Other:
			p.add(Op{Kind: OpCopy, Rel: rel, Path: dst, Source: p.basePath(rel), Role: role})

		default:
			// Ephemeral files and user files are never seeded.
			p.skip(rel, SkipNotSeeded)
		}
	}
}

// prepareParent walks from rel's parent toward the workspace root. An
// ancestor that is a symlink means rel is already reachable through a
// shared directory; an ancestor covered by a sharing rule means the parent
// is left for the sharing pass to create.
func (p *planner) prepareParent(rel string) (SkipReason, bool) {
	parent := path.Dir(rel)
	abort := false
	for d := parent; d != "."; d = path.Dir(d) {
		if p.isLink(d) {
			return SkipCoveredByLink, false
		}
		if p.rules.Covers(d) {
			abort = true
		}
	}

	if p.present[parent] || p.fsys.IsDir(p.wsPath(parent)) {
		p.present[parent] = true
		return "", true
	}
	if abort {
		return SkipNoParent, false
	}

	p.add(Op{Kind: OpEnsureParent, Rel: parent, Path: p.wsPath(parent)})
	for d := parent; d != "."; d = path.Dir(d) {
		p.present[d] = true
	}
	return "", true
}

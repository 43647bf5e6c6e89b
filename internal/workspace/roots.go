package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
)

// SharedDirName is the directory under a workspace root holding shared roots.
const SharedDirName = ".shared"

// SharedRoots are the two deduplication roots a workspace links into.
type SharedRoots struct {
	Global string
	Base   string
}

// NewSharedRoots returns the shared roots for baseName under root. The base
// root must be a direct child of the shared directory distinct from the
// global one.
func NewSharedRoots(root, baseName string) (SharedRoots, error) {
	if err := profile.ValidateName(baseName); err != nil {
		return SharedRoots{}, err
	}

	shared := filepath.Join(root, SharedDirName)
	global := filepath.Join(shared, profile.GlobalScope)
	base, err := securejoin.SecureJoin(shared, baseName)
	if err != nil {
		return SharedRoots{}, errors.IOError(fmt.Sprintf("failed to resolve shared root for %s", baseName), err)
	}
	if filepath.Dir(base) != filepath.Clean(shared) || base == global {
		return SharedRoots{}, errors.ValidationError(fmt.Sprintf("shared root for %s resolves to %s, outside its own scope", baseName, base))
	}

	return SharedRoots{Global: global, Base: base}, nil
}

// For returns the root used by strategy, or "" for Workspace.
func (r SharedRoots) For(strategy sharing.Strategy) string {
	switch strategy {
	case sharing.Global:
		return r.Global
	case sharing.Base:
		return r.Base
	}
	return ""
}

// All returns both roots.
func (r SharedRoots) All() []string {
	return []string{r.Global, r.Base}
}

// Target returns the shared location mirroring rel under the strategy's
// root. Symlinks inside the root are resolved without leaving it.
func (r SharedRoots) Target(strategy sharing.Strategy, rel string) (string, error) {
	root := r.For(strategy)
	if root == "" {
		return "", errors.ValidationError(fmt.Sprintf("strategy %s has no shared root", strategy))
	}
	target, err := securejoin.SecureJoin(root, filepath.FromSlash(rel))
	if err != nil {
		return "", errors.IOError(fmt.Sprintf("failed to resolve shared target for %s", rel), err)
	}
	return target, nil
}

// Contains reports whether path lies inside the strategy's root.
func (r SharedRoots) Contains(strategy sharing.Strategy, path string) bool {
	return within(r.For(strategy), path)
}

func within(root, path string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

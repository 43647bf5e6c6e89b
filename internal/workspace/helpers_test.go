package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/sharing"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
	"github.com/sogladev/wow-realm-switch-utility/internal/testutil"
)

// scannedBase writes tree, scans it with p and saves the manifest.
func scannedBase(t *testing.T, tree testutil.Tree, p *profile.Profile) string {
	t.Helper()
	base := testutil.NewBase(t, tree)
	m, err := manifest.Build(base, p)
	require.NoError(t, err)
	require.NoError(t, manifest.Save(m, base))
	return base
}

func scenarioRules() sharing.Rules {
	return sharing.Rules{"screenshots": sharing.Global, "wtf": sharing.Workspace}
}

// newRoot returns a workspace root that does not exist yet.
func newRoot(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "workspaces")
}

func create(t *testing.T, fsys system.FileSystem, root, name, base string, rules sharing.Rules) *CreateResult {
	t.Helper()
	result, err := NewCreator(root, fsys).Create(CreateOptions{Name: name, BasePath: base, Rules: rules})
	require.NoError(t, err)
	return result
}

func sameFile(t *testing.T, a, b string) bool {
	t.Helper()
	ai, err := os.Stat(a)
	require.NoError(t, err)
	bi, err := os.Stat(b)
	require.NoError(t, err)
	return os.SameFile(ai, bi)
}

func isRealDir(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// snapshot lists every path under root with its mode type.
func snapshot(t *testing.T, root string) map[string]os.FileMode {
	t.Helper()
	out := make(map[string]os.FileMode)
	if _, err := os.Lstat(root); os.IsNotExist(err) {
		return out
	}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[rel] = info.Mode().Type()
		return nil
	})
	require.NoError(t, err)
	return out
}

// Package testutil provides test utilities for building synthetic client trees
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Tree describes a synthetic directory tree: files map a slash-separated
// relative path to contents, dirs lists directories that must exist even
// when empty.
type Tree struct {
	Files map[string]string
	Dirs  []string
}

// Write materializes the tree under root.
func (tr Tree) Write(t *testing.T, root string) {
	t.Helper()

	for _, dir := range tr.Dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	names := make([]string, 0, len(tr.Files))
	for name := range tr.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create parent of %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(tr.Files[name]), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// Chromie335aTree is a minimal 3.3.5a client satisfying the builtin profile.
func Chromie335aTree() Tree {
	return Tree{
		Files: map[string]string{
			"Wow.exe":                                 "mock executable",
			"Data/common.MPQ":                         "mock data file",
			"Data/patch.MPQ":                          "mock patch file",
			"Data/lichking.MPQ":                       "mock expansion data",
			"Screenshots/WoWScrnShot_001.jpg":         "mock screenshot",
			"WTF/Config.wtf":                          "mock config",
			"Interface/AddOns/SomeAddon/SomeAddon.toc": "mock addon",
			"Cache/WDB/enUS/creaturecache.wdb":        "mock cache",
			"readme.txt":                              "mock readme",
		},
		Dirs: []string{"WTF/Account", "Interface/Icons"},
	}
}

// Vanilla112Tree is a minimal 1.12 client satisfying the builtin profile.
func Vanilla112Tree() Tree {
	return Tree{
		Files: map[string]string{
			"WoW.exe":            "mock executable",
			"realmlist.wtf":      "set realmlist logon.example.org",
			"Data/base.MPQ":      "mock data file",
			"Data/dbc.MPQ":       "mock data file",
			"Data/interface.MPQ": "mock data file",
			"Data/patch.MPQ":     "mock patch file",
			"Data/patch-2.MPQ":   "mock patch file",
			"WTF/Config.wtf":     "mock config",

			"Interface/AddOns/SomeAddon/SomeAddon.toc": "mock addon",
		},
		Dirs: []string{"Screenshots", "WTF/Account", "Logs", "WDB"},
	}
}

// ScenarioTree is the four-entry base used by end-to-end workspace tests.
func ScenarioTree() Tree {
	return Tree{
		Files: map[string]string{
			"Wow.exe":         "mock executable",
			"Data/common.MPQ": "mock data file",
		},
		Dirs: []string{"Screenshots", "WTF"},
	}
}

// NewBase writes tree into a fresh temporary directory and returns its path.
func NewBase(t *testing.T, tree Tree) string {
	t.Helper()

	base := filepath.Join(t.TempDir(), "base")
	if err := os.MkdirAll(base, 0755); err != nil {
		t.Fatalf("Failed to create base: %v", err)
	}
	tree.Write(t, base)
	return base
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// IsSymlink reports whether path itself is a symbolic link.
func IsSymlink(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

package system

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSFileSystem_CopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "patch.MPQ")
	dst := filepath.Join(dir, "copy.MPQ")
	content := strings.Repeat("mpq", 50000)

	if err := os.WriteFile(src, []byte(content), 0640); err != nil {
		t.Fatal(err)
	}

	fsys := DefaultFS()
	n, err := fsys.CopyFile(src, dst)
	if err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("CopyFile = %d bytes, want %d", n, len(content))
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Error("copied content differs from source")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}

	srcInfo, _ := os.Stat(src)
	if os.SameFile(srcInfo, info) {
		t.Error("copy must be an independent file")
	}
}

func TestOSFileSystem_CopyFile_DestinationExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	os.WriteFile(src, []byte("new"), 0644)
	os.WriteFile(dst, []byte("user"), 0644)

	if _, err := DefaultFS().CopyFile(src, dst); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("CopyFile error = %v, want fs.ErrExist", err)
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "user" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestOSFileSystem_Links(t *testing.T) {
	dir := t.TempDir()
	fsys := DefaultFS()
	target := filepath.Join(dir, "target")
	if err := fsys.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(dir, "link")
	if err := fsys.Symlink(target, link); err != nil {
		t.Fatalf("Symlink error: %v", err)
	}
	if !IsSymlink(fsys, link) {
		t.Error("IsSymlink = false for symlink")
	}
	if IsSymlink(fsys, target) {
		t.Error("IsSymlink = true for directory")
	}
	if !fsys.IsDir(link) {
		t.Error("IsDir should follow the symlink")
	}

	resolved, err := ResolveLink(fsys, link)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != target {
		t.Errorf("ResolveLink = %q, want %q", resolved, target)
	}

	// Dangling links still exist.
	os.Remove(target)
	if !fsys.Exists(link) {
		t.Error("Exists = false for dangling symlink")
	}
	if fsys.IsDir(link) {
		t.Error("IsDir = true for dangling symlink")
	}
}

func TestResolveLink_Relative(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ws", "Interface")
	os.MkdirAll(sub, 0755)
	link := filepath.Join(sub, "AddOns")
	if err := os.Symlink("../../shared/AddOns", link); err != nil {
		t.Fatal(err)
	}

	resolved, err := ResolveLink(DefaultFS(), link)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "shared", "AddOns")
	if resolved != want {
		t.Errorf("ResolveLink = %q, want %q", resolved, want)
	}
}

func TestOSFileSystem_HardLink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Wow.exe")
	os.WriteFile(src, []byte("exe"), 0755)

	dst := filepath.Join(dir, "linked.exe")
	if err := DefaultFS().Link(src, dst); err != nil {
		t.Fatalf("Link error: %v", err)
	}

	a, _ := os.Stat(src)
	b, _ := os.Stat(dst)
	if !os.SameFile(a, b) {
		t.Error("hard link should share identity with source")
	}
}

func TestFaultFS_TriggersOnNthMatch(t *testing.T) {
	dir := t.TempDir()
	injected := errors.New("disk on fire")
	fsys := NewFaultFS(DefaultFS(), Fault{Op: OpMkdirAll, PathSuffix: "/b", After: 2, Err: injected})

	first := filepath.Join(dir, "1", "b")
	second := filepath.Join(dir, "2", "b")
	other := filepath.Join(dir, "3", "c")

	if err := fsys.MkdirAll(first, 0755); err != nil {
		t.Fatalf("first MkdirAll error: %v", err)
	}
	if err := fsys.MkdirAll(other, 0755); err != nil {
		t.Fatalf("non-matching MkdirAll error: %v", err)
	}

	err := fsys.MkdirAll(second, 0755)
	if !errors.Is(err, injected) {
		t.Fatalf("second MkdirAll error = %v, want injected", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != second {
		t.Errorf("error should be a PathError for %s, got %v", second, err)
	}
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Error("failed call must not reach the inner filesystem")
	}

	// Later matches pass through again.
	if err := fsys.MkdirAll(filepath.Join(dir, "4", "b"), 0755); err != nil {
		t.Errorf("third MkdirAll error: %v", err)
	}

	if got := len(fsys.Calls()); got != 4 {
		t.Errorf("Calls = %d, want 4", got)
	}
}

func TestFaultFS_EveryMatchDefaultsToPermission(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	os.WriteFile(src, []byte("x"), 0644)

	fsys := NewFaultFS(DefaultFS(), Fault{Op: OpLink})

	for i := 0; i < 2; i++ {
		err := fsys.Link(src, filepath.Join(dir, "dst"))
		if !errors.Is(err, fs.ErrPermission) {
			t.Fatalf("Link error = %v, want fs.ErrPermission", err)
		}
	}

	// Other ops are untouched.
	if err := fsys.Symlink(src, filepath.Join(dir, "sym")); err != nil {
		t.Errorf("Symlink error: %v", err)
	}
}

func TestSetDefaultFS(t *testing.T) {
	defer ResetDefaults()

	fault := NewFaultFS(DefaultFS())
	SetDefaultFS(fault)
	if DefaultFS() != FileSystem(fault) {
		t.Error("SetDefaultFS did not replace the default")
	}

	ResetDefaults()
	if _, ok := DefaultFS().(*osFileSystem); !ok {
		t.Error("ResetDefaults did not restore the OS filesystem")
	}
}

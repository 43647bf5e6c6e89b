// Package system provides abstractions for filesystem operations to enable testing.
package system

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts the filesystem primitives used to build and repair
// workspaces.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Remove removes the named file or empty directory.
	Remove(path string) error

	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error

	// Stat returns file info for the named file, following symlinks.
	Stat(path string) (fs.FileInfo, error)

	// Lstat returns file info for the named file without following symlinks.
	Lstat(path string) (fs.FileInfo, error)

	// Readlink returns the destination of the named symbolic link.
	Readlink(path string) (string, error)

	// Symlink creates newname as a symbolic link to oldname.
	Symlink(oldname, newname string) error

	// Link creates newname as a hard link to oldname.
	Link(oldname, newname string) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Exists returns true if the path exists. Dangling symlinks count as present.
	Exists(path string) bool

	// IsDir returns true if the path is a directory, following symlinks.
	IsDir(path string) bool

	// ReadDir reads the named directory, returning all its directory entries.
	ReadDir(path string) ([]fs.DirEntry, error)

	// CopyFile streams src into a new file at dst with the same permission
	// bits and returns the number of bytes written. dst must not exist.
	CopyFile(src, dst string) (int64, error)
}

var defaultFS FileSystem = &osFileSystem{}

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// ResetDefaults restores the default OS implementation.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (f *osFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (f *osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (f *osFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

func (f *osFileSystem) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (f *osFileSystem) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func (f *osFileSystem) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (f *osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (f *osFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (f *osFileSystem) CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return n, err
	}
	return n, nil
}

// IsSymlink reports whether path is a symbolic link, live or dangling.
func IsSymlink(fsys FileSystem, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// ResolveLink returns the absolute destination of the symlink at path.
// Relative destinations are resolved against the link's directory.
func ResolveLink(fsys FileSystem, path string) (string, error) {
	dest, err := fsys.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return filepath.Clean(dest), nil
}

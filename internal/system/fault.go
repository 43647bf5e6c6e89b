package system

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// Op names a FileSystem method for fault injection.
type Op string

const (
	OpSymlink  Op = "symlink"
	OpLink     Op = "link"
	OpCopyFile Op = "copy"
	OpMkdirAll Op = "mkdir"
	OpRemove   Op = "remove"
	OpWrite    Op = "write"
)

// Fault describes an injected failure. It triggers on the Nth (1-based)
// matching call of Op whose target path ends with PathSuffix. A zero After
// triggers on every match.
type Fault struct {
	Op         Op
	PathSuffix string
	After      int
	Err        error
}

// FaultFS wraps a FileSystem and fails selected mutating calls. Reads are
// always passed through.
type FaultFS struct {
	FileSystem

	mu     sync.Mutex
	faults []Fault
	seen   map[int]int
	calls  []string
}

// NewFaultFS wraps inner with the given faults.
func NewFaultFS(inner FileSystem, faults ...Fault) *FaultFS {
	return &FaultFS{
		FileSystem: inner,
		faults:     faults,
		seen:       make(map[int]int),
	}
}

// Calls returns the mutating calls observed so far as "op path" strings.
func (f *FaultFS) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FaultFS) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("%s %s", op, path))
	slashed := filepath.ToSlash(path)
	for i, fault := range f.faults {
		if fault.Op != op || !strings.HasSuffix(slashed, fault.PathSuffix) {
			continue
		}
		f.seen[i]++
		if fault.After == 0 || f.seen[i] == fault.After {
			err := fault.Err
			if err == nil {
				err = fs.ErrPermission
			}
			return &fs.PathError{Op: string(op), Path: path, Err: err}
		}
	}
	return nil
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.check(OpSymlink, newname); err != nil {
		return err
	}
	return f.FileSystem.Symlink(oldname, newname)
}

func (f *FaultFS) Link(oldname, newname string) error {
	if err := f.check(OpLink, newname); err != nil {
		return err
	}
	return f.FileSystem.Link(oldname, newname)
}

func (f *FaultFS) CopyFile(src, dst string) (int64, error) {
	if err := f.check(OpCopyFile, dst); err != nil {
		return 0, err
	}
	return f.FileSystem.CopyFile(src, dst)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FileSystem.MkdirAll(path, perm)
}

func (f *FaultFS) Remove(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}
	return f.FileSystem.Remove(path)
}

func (f *FaultFS) RemoveAll(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}
	return f.FileSystem.RemoveAll(path)
}

func (f *FaultFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWrite, path); err != nil {
		return err
	}
	return f.FileSystem.WriteFile(path, data, perm)
}

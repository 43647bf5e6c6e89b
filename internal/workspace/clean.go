package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// CleanOptions configures Clean.
type CleanOptions struct {
	// WDB also removes *.wdb caches from Data/ and its locale directories.
	WDB    bool
	DryRun bool
}

// CleanResult lists what Clean removed.
type CleanResult struct {
	Removed []string
	Skipped []string
	Failed  map[string]error
	Bytes   int64
}

// Clean empties the ephemeral directories of the workspace at wsPath. The
// directories themselves are kept. Removal failures are collected and do
// not stop the run.
func Clean(fsys system.FileSystem, wsPath string, opts CleanOptions) (*CleanResult, error) {
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
	absWS, err := filepath.Abs(wsPath)
	if err != nil {
		return nil, errors.ValidationError(fmt.Sprintf("invalid workspace path: %v", err))
	}

	c := &cleaner{fs: fsys, ws: absWS, dryRun: opts.DryRun, result: &CleanResult{Failed: make(map[string]error)}}

	for _, rel := range m.Paths() {
		if m.FileRoles[rel] != profile.Ephemeral {
			continue
		}
		c.emptyDir(rel)
	}

	if opts.WDB {
		c.wdb()
	}

	logging.Debug("workspace cleaned", "workspace", absWS, "removed", len(c.result.Removed), "bytes", c.result.Bytes)
	return c.result, nil
}

type cleaner struct {
	fs     system.FileSystem
	ws     string
	dryRun bool
	result *CleanResult
}

// resolve joins rel onto the workspace and refuses anything that is a
// symlink or would escape it.
func (c *cleaner) resolve(rel string) (string, bool) {
	lexical := filepath.Join(c.ws, filepath.FromSlash(rel))
	if system.IsSymlink(c.fs, lexical) {
		logging.Warn("not cleaning symlinked path", "path", lexical)
		c.result.Skipped = append(c.result.Skipped, lexical)
		return "", false
	}
	path, err := securejoin.SecureJoin(c.ws, filepath.FromSlash(rel))
	if err != nil || path != lexical {
		logging.Warn("not cleaning path outside workspace", "path", lexical)
		c.result.Skipped = append(c.result.Skipped, lexical)
		return "", false
	}
	return path, true
}

func (c *cleaner) emptyDir(rel string) {
	dir, ok := c.resolve(rel)
	if !ok {
		return
	}
	info, err := c.fs.Lstat(dir)
	if err != nil || !info.IsDir() {
		return
	}

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		c.result.Failed[dir] = err
		return
	}
	for _, entry := range entries {
		c.remove(filepath.Join(dir, entry.Name()), true)
	}
}

// wdb removes *.wdb files directly in Data/ and in Data/<locale>/.
func (c *cleaner) wdb() {
	data, ok := c.resolve("Data")
	if !ok {
		return
	}
	entries, err := c.fs.ReadDir(data)
	if err != nil {
		if !os.IsNotExist(err) {
			c.result.Failed[data] = err
		}
		return
	}

	for _, entry := range entries {
		path := filepath.Join(data, entry.Name())
		switch {
		case isWDB(entry):
			c.remove(path, false)
		case entry.IsDir() && isLocale(entry.Name()):
			locale, err := c.fs.ReadDir(path)
			if err != nil {
				c.result.Failed[path] = err
				continue
			}
			for _, e := range locale {
				if isWDB(e) {
					c.remove(filepath.Join(path, e.Name()), false)
				}
			}
		}
	}
}

func (c *cleaner) remove(path string, recursive bool) {
	size := c.size(path)
	if !c.dryRun {
		var err error
		if recursive {
			err = c.fs.RemoveAll(path)
		} else {
			err = c.fs.Remove(path)
		}
		if err != nil {
			c.result.Failed[path] = err
			return
		}
	}
	c.result.Removed = append(c.result.Removed, path)
	c.result.Bytes += size
}

// size totals regular files under path without following symlinks.
func (c *cleaner) size(path string) int64 {
	info, err := c.fs.Lstat(path)
	if err != nil {
		return 0
	}
	if info.Mode().IsRegular() {
		return info.Size()
	}
	if !info.IsDir() {
		return 0
	}
	entries, err := c.fs.ReadDir(path)
	if err != nil {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += c.size(filepath.Join(path, e.Name()))
	}
	return total
}

func isWDB(entry fs.DirEntry) bool {
	return entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), ".wdb")
}

// isLocale matches locale directory names such as enUS or deDE.
func isLocale(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

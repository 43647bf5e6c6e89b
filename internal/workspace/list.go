package workspace

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// List returns the config of every workspace directly under root, sorted
// by name. Directories without a readable config are skipped.
func List(fsys system.FileSystem, root string) ([]*Config, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.IOError("failed to read workspace root", err)
	}

	var configs []*Config
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == SharedDirName {
			continue
		}
		path := filepath.Join(root, entry.Name())
		cfg, err := LoadConfig(fsys, path)
		if err != nil {
			logging.Debug("skipping directory without workspace config", "path", path, "error", err)
			continue
		}
		configs = append(configs, cfg)
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}

// Find returns the workspace named name under root.
func Find(fsys system.FileSystem, root, name string) (*Config, string, error) {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	path, err := PathFor(root, name)
	if err != nil {
		return nil, "", err
	}
	if !fsys.IsDir(path) {
		return nil, "", errors.NotFound("workspace", name)
	}
	cfg, err := LoadConfig(fsys, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

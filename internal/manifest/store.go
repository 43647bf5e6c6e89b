package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

// Path returns the manifest location for baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Exists reports whether baseDir already has a manifest.
func Exists(baseDir string) bool {
	_, err := os.Stat(Path(baseDir))
	return err == nil
}

// Save validates m and writes it to baseDir atomically.
func Save(m *Manifest, baseDir string) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return errors.IOError("failed to encode manifest", err)
	}

	return writeAtomic(Path(baseDir), buf.Bytes())
}

// Load reads and validates the manifest in baseDir.
func Load(baseDir string) (*Manifest, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("manifest", Path(baseDir))
		}
		return nil, errors.IOError("failed to read manifest", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, errors.ConfigError("failed to parse manifest", err)
	}
	if m.FileRoles == nil {
		m.FileRoles = make(map[string]profile.Role)
	}
	if m.Checksums == nil {
		m.Checksums = make(map[string]string)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place so readers never see a partial manifest.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create %s", path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.IOError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.IOError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.IOError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.IOError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

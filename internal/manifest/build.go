package manifest

import (
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/profile"
)

// checksumBufferSize is the fixed read buffer used while hashing.
const checksumBufferSize = 64 * 1024

// Build walks baseDir depth-first, classifies every entry with p and
// checksums BaseData files. Ephemeral directories are recorded but not
// descended into. Any unreadable entry aborts the scan with a ScanError;
// nothing is written to disk.
func Build(baseDir string, p *profile.Profile) (*Manifest, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.ScanError(baseDir, err)
	}

	info, err := os.Stat(absBase)
	if err != nil {
		return nil, errors.ScanError(absBase, err)
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("base is not a directory: " + absBase)
	}

	s := &scanner{
		base:      absBase,
		profile:   p,
		fileRoles: make(map[string]profile.Role),
		checksums: make(map[string]string),
		buf:       make([]byte, checksumBufferSize),
	}
	if err := s.scan(absBase); err != nil {
		return nil, err
	}

	logging.Debug("base scanned", "base", absBase, "entries", len(s.fileRoles), "checksums", len(s.checksums))

	return &Manifest{
		Format:    FormatVersion,
		Profile:   p.Name,
		BasePath:  absBase,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Version:   p.Version,
		FileRoles: s.fileRoles,
		Checksums: s.checksums,
	}, nil
}

type scanner struct {
	base      string
	profile   *profile.Profile
	fileRoles map[string]profile.Role
	checksums map[string]string
	buf       []byte
}

func (s *scanner) scan(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.ScanError(dir, err)
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(s.base, full)
		if err != nil {
			return errors.ScanError(full, err)
		}
		rel = filepath.ToSlash(rel)

		if rel == FileName {
			continue
		}

		info, err := os.Stat(full)
		if err != nil {
			return errors.ScanError(full, err)
		}

		role := s.profile.Classify(rel)

		switch {
		case info.IsDir():
			s.fileRoles[rel] = role
			// Symlinked directories are recorded but never followed.
			if role == profile.Ephemeral || entry.Type()&os.ModeSymlink != 0 {
				continue
			}
			if err := s.scan(full); err != nil {
				return err
			}

		case info.Mode().IsRegular():
			s.fileRoles[rel] = role
			if role != profile.BaseData {
				continue
			}
			sum, err := s.checksum(full)
			if err != nil {
				return errors.ScanError(full, err)
			}
			s.checksums[rel] = sum

		default:
			logging.Debug("skipping special file", "path", rel, "mode", info.Mode().String())
		}
	}

	return nil
}

func (s *scanner) checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	for {
		n, err := f.Read(s.buf)
		if n > 0 {
			h.Write(s.buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Checksum returns the hex BLAKE3 digest of the file at path, computed the
// same way Build does.
func Checksum(path string) (string, error) {
	s := &scanner{buf: make([]byte, checksumBufferSize)}
	return s.checksum(path)
}

package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/system"
)

// ApplyReport summarizes an Apply run.
type ApplyReport struct {
	Dirs             int
	SharedDirs       int
	Symlinks         int
	Hardlinks        int
	FallbackSymlinks int
	Copies           int
	Existing         int

	BytesLinked int64
	BytesCopied int64

	// Failed is set when Apply stopped early.
	Failed *OpFailure
}

// OpFailure identifies the operation that stopped Apply.
type OpFailure struct {
	Index int
	Op    Op
	Err   error
}

// Apply executes plan in order. An operation whose destination already
// exists is left alone. The first failure stops the run; operations
// already applied are not rolled back.
func Apply(fsys system.FileSystem, plan *Plan) (*ApplyReport, error) {
	report := &ApplyReport{}

	for i, op := range plan.Ops {
		if fsys.Exists(op.Path) {
			report.Existing++
			continue
		}

		if err := applyOp(fsys, op, report); err != nil {
			report.Failed = &OpFailure{Index: i, Op: op, Err: err}
			logging.Debug("apply stopped", "index", i, "op", string(op.Kind), "path", op.Path, "error", err)
			return report, err
		}
		logging.Debug("applied", "op", string(op.Kind), "path", op.Path)
	}

	return report, nil
}

func applyOp(fsys system.FileSystem, op Op, report *ApplyReport) error {
	switch op.Kind {
	case OpMkdir, OpEnsureParent:
		if err := fsys.MkdirAll(op.Path, 0755); err != nil {
			return errors.IOError(fmt.Sprintf("failed to create directory %s", op.Path), err)
		}
		report.Dirs++

	case OpSharedDir:
		if err := fsys.MkdirAll(op.Path, 0755); err != nil {
			return errors.IOError(fmt.Sprintf("failed to create shared directory %s", op.Path), err)
		}
		report.SharedDirs++

	case OpSymlink:
		if err := fsys.Symlink(op.Source, op.Path); err != nil {
			return errors.LinkError(op.Path, err)
		}
		report.Symlinks++

	case OpHardlink:
		size := sizeOf(fsys, op.Source)
		if err := fsys.Link(op.Source, op.Path); err != nil {
			logging.Debug("hard link failed, falling back to symlink", "path", op.Path, "error", err)
			abs, absErr := filepath.Abs(op.Source)
			if absErr != nil {
				return errors.LinkError(op.Path, err)
			}
			if serr := fsys.Symlink(abs, op.Path); serr != nil {
				return errors.LinkError(op.Path, fmt.Errorf("hard link: %w; symlink: %v", err, serr))
			}
			report.FallbackSymlinks++
		} else {
			report.Hardlinks++
		}
		report.BytesLinked += size

	case OpCopy:
		n, err := fsys.CopyFile(op.Source, op.Path)
		if err != nil {
			return errors.IOError(fmt.Sprintf("failed to copy %s", op.Rel), err)
		}
		report.Copies++
		report.BytesCopied += n

	default:
		return errors.New(errors.ExitGeneralError, fmt.Sprintf("unknown operation %q", op.Kind))
	}
	return nil
}

func sizeOf(fsys system.FileSystem, path string) int64 {
	info, err := fsys.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

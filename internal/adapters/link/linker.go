// Package link implements the Linker port: projecting a stored package slot
// into a project tree via a hardlink -> symlink -> copy fallback chain.
package link

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Linker = (*Linker)(nil)

// Linker implements ports.Linker on the local filesystem.
type Linker struct {
	logger ports.Logger
}

// NewLinker creates a new Linker.
func NewLinker(logger ports.Logger) *Linker {
	return &Linker{logger: logger}
}

// linkStrategy is one named projection strategy. Strategies are attempted in
// order; the first success's tag is returned to the caller.
type linkStrategy struct {
	name domain.LinkStrategy
	run  func(source, target string) error
}

func (l *Linker) strategies() []linkStrategy {
	return []linkStrategy{
		{name: domain.LinkHardlink, run: l.hardlinkTree},
		{name: domain.LinkSymlink, run: symlinkDir},
		{name: domain.LinkCopy, run: copyTree},
	}
}

// LinkPackage materializes sourceSlotPath at targetPath. Any pre-existing
// entry at targetPath is removed first, which keeps reinstalls idempotent.
func (l *Linker) LinkPackage(sourceSlotPath, targetPath string) (domain.LinkStrategy, error) {
	if err := os.MkdirAll(filepath.Dir(targetPath), domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrLinkFailed.Error())
	}
	if err := os.RemoveAll(targetPath); err != nil {
		return "", zerr.Wrap(err, domain.ErrLinkFailed.Error())
	}

	var lastErr error
	for _, strategy := range l.strategies() {
		if err := strategy.run(sourceSlotPath, targetPath); err != nil {
			lastErr = err
			l.logger.Warn(fmt.Sprintf("%s strategy failed for %s: %v", strategy.name, targetPath, err))
			// Clear any partial result before the next strategy runs.
			_ = os.RemoveAll(targetPath)
			continue
		}
		return strategy.name, nil
	}

	return "", zerr.With(zerr.Wrap(lastErr, domain.ErrLinkFailed.Error()), "target", targetPath)
}

// LinkToProject links a slot into the project's module directory under name.
func (l *Linker) LinkToProject(slotPath, projectPath, name string) (domain.LinkStrategy, error) {
	modulesDir := domain.ModulesPath(projectPath)
	if err := os.MkdirAll(modulesDir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrLinkFailed.Error())
	}
	return l.LinkPackage(slotPath, filepath.Join(modulesDir, name))
}

// IsLink reports whether path is a symbolic link. Hardlinked files cannot be
// told apart from ordinary files here.
func (l *Linker) IsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// hardlinkTree mirrors the source directory structure and hardlinks each
// file. A file whose hardlink fails (e.g. cross-device) is copied instead;
// the operation as a whole still counts as hardlink mode.
func (l *Linker) hardlinkTree(source, target string) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(target, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, domain.DirPerm)
		}

		if err := os.Link(path, dest); err != nil {
			// Per-file fallback only; the tree-level strategy stays hardlink.
			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}
			return copyFile(path, dest, info.Mode().Perm())
		}
		return nil
	})
}

// symlinkDir creates one symbolic link for the whole target path.
func symlinkDir(source, target string) error {
	abs, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	return os.Symlink(abs, target)
}

// copyTree performs a full recursive byte copy of source at target.
func copyTree(source, target string) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(target, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, domain.DirPerm)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			if info.Mode()&fs.ModeSymlink != 0 {
				linkDest, err := os.Readlink(path)
				if err != nil {
					return err
				}
				return os.Symlink(linkDest, dest)
			}
			return nil
		}

		return copyFile(path, dest, info.Mode().Perm())
	})
}

// copyFile copies one regular file preserving its permission bits.
func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // Paths come from a tree walk under a trusted root
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // See above
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Package store implements the system-wide identity-addressed package store.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/im7mortal/kmutex"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PackageStore = (*Store)(nil)

// Store implements ports.PackageStore on the local filesystem. Slots live
// under <root>/store, metadata records under <root>/metadata, and in-progress
// stores are staged under <root>/staging before an atomic rename into place.
type Store struct {
	root   string
	logger ports.Logger

	// locks serializes Store/Delete per identity. Two concurrent first-time
	// installs of the same package would otherwise race on the slot path.
	locks *kmutex.Kmutex
}

// NewStore creates a Store rooted at the default cache root.
func NewStore(logger ports.Logger) (*Store, error) {
	return NewStoreWithRoot(domain.DefaultCacheRoot(), logger)
}

// NewStoreWithRoot creates a Store rooted at the given directory.
func NewStoreWithRoot(root string, logger ports.Logger) (*Store, error) {
	cleanRoot := filepath.Clean(root)
	for _, dir := range []string{
		domain.StorePath(cleanRoot),
		domain.MetadataPath(cleanRoot),
		domain.StagingPath(cleanRoot),
	} {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
		}
	}

	return &Store{
		root:   cleanRoot,
		logger: logger,
		locks:  kmutex.New(),
	}, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// PackagePath returns the slot path for an identity.
func (s *Store) PackagePath(id domain.Identity) string {
	return filepath.Join(domain.StorePath(s.root), id.Slot())
}

// Has reports whether the identity's slot directory exists. Metadata is
// deliberately not consulted; the two can diverge after a partial failure.
func (s *Store) Has(id domain.Identity) bool {
	info, err := os.Stat(s.PackagePath(id))
	return err == nil && info.IsDir()
}

// Store copies sourcePath into a staging directory, computes size and content
// digest, atomically renames the staged tree into the slot, and writes a
// fresh metadata record. Concurrent calls for the same identity serialize.
func (s *Store) Store(id domain.Identity, sourcePath string) (string, error) {
	s.locks.Lock(id.String())
	defer s.locks.Unlock(id.String())

	slotPath := s.PackagePath(id)

	stagePath, err := os.MkdirTemp(domain.StagingPath(s.root), id.Digest()+"-*")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	defer func() {
		// Gone already on the success path; this catches failures.
		_ = os.RemoveAll(stagePath)
	}()

	if err := copyTree(sourcePath, stagePath); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreCopyFailed.Error()), "package", id.String())
	}

	size, err := dirSize(stagePath)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	digest, err := treeDigest(stagePath)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	// Replace any existing slot, then rename the staged tree into place so a
	// crash never leaves a partially copied slot behind.
	if err := os.RemoveAll(slotPath); err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreCopyFailed.Error())
	}
	if err := os.Rename(stagePath, slotPath); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreCopyFailed.Error()), "package", id.String())
	}

	now := time.Now()
	meta := domain.Metadata{
		Name:        id.Name,
		Version:     id.Version,
		InstalledAt: now,
		LastUsed:    now,
		Size:        size,
		ContentHash: digest,
	}
	if err := s.writeMetadata(id, &meta); err != nil {
		return "", err
	}

	return slotPath, nil
}

// Touch updates only the lastUsed timestamp.
func (s *Store) Touch(id domain.Identity) error {
	return s.UpdateMetadata(id, domain.MetadataPatch{LastUsed: time.Now()})
}

// UpdateMetadata shallow-merges patch into the identity's metadata record,
// creating the record if it does not exist yet.
func (s *Store) UpdateMetadata(id domain.Identity, patch domain.MetadataPatch) error {
	meta, err := s.Metadata(id)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		meta = &domain.Metadata{Name: id.Name, Version: id.Version}
	}

	meta.Merge(patch)
	return s.writeMetadata(id, meta)
}

// Verify recomputes the slot's content digest and compares it to the one
// recorded at store time.
func (s *Store) Verify(id domain.Identity) error {
	meta, err := s.Metadata(id)
	if err != nil {
		return err
	}
	if meta.ContentHash == "" {
		// Record predates digest support; nothing to check against.
		return nil
	}

	digest, err := treeDigest(s.PackagePath(id))
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if digest != meta.ContentHash {
		return zerr.With(domain.ErrPackageCorrupt, "package", id.String())
	}
	return nil
}

// Stats enumerates all slots and sums their recursive sizes.
func (s *Store) Stats() (domain.StoreStats, error) {
	entries, err := os.ReadDir(domain.StorePath(s.root))
	if err != nil {
		return domain.StoreStats{}, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	stats := domain.StoreStats{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		size, err := dirSize(filepath.Join(domain.StorePath(s.root), entry.Name()))
		if err != nil {
			return domain.StoreStats{}, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
		}
		stats.PackageCount++
		stats.TotalSize += size
	}
	stats.TotalSizeFormatted = domain.FormatBytes(stats.TotalSize)

	return stats, nil
}

// FindUnused scans all metadata records and returns packages whose lastUsed
// precedes now minus the given number of days.
func (s *Store) FindUnused(days int) ([]domain.UnusedPackage, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	entries, err := os.ReadDir(domain.MetadataPath(s.root))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataReadFailed.Error())
	}

	var unused []domain.UnusedPackage
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		meta, err := s.readMetadataFile(filepath.Join(domain.MetadataPath(s.root), entry.Name()))
		if err != nil {
			// A corrupt record is not grounds to abort the scan.
			s.logger.Warn(fmt.Sprintf("skipping unreadable metadata record %s: %v", entry.Name(), err))
			continue
		}
		if meta.LastUsed.Before(cutoff) {
			unused = append(unused, domain.UnusedPackage{
				Identity: domain.NewIdentity(meta.Name, meta.Version),
				LastUsed: meta.LastUsed,
				Size:     meta.Size,
			})
		}
	}

	return unused, nil
}

// Delete removes the slot directory and the metadata record as two
// independent best-effort operations. Failures are logged, never raised, so
// a partial delete is a possible terminal state a later scan can detect.
func (s *Store) Delete(id domain.Identity) domain.DeleteResult {
	s.locks.Lock(id.String())
	defer s.locks.Unlock(id.String())

	result := domain.DeleteResult{}

	if err := os.RemoveAll(s.PackagePath(id)); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to remove slot for %s: %v", id, err))
	} else {
		result.SlotRemoved = true
	}

	metaPath := s.metadataFilePath(id)
	if err := os.Remove(metaPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn(fmt.Sprintf("failed to remove metadata for %s: %v", id, err))
	} else {
		result.MetadataRemoved = true
	}

	return result
}

// copyTree recursively copies the directory tree at src into dst. dst must
// already exist.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(target, domain.DirPerm)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			// Symlinks inside packages are re-created pointing at the same
			// destination.
			if info.Mode()&fs.ModeSymlink != 0 {
				dest, err := os.Readlink(path)
				if err != nil {
					return err
				}
				return os.Symlink(dest, target)
			}
			return nil
		}

		return copyFile(path, target, info.Mode().Perm())
	})
}

// copyFile copies a single regular file preserving its permission bits.
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

// dirSize returns the total size in bytes of all regular files under path.
func dirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

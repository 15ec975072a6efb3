package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// metadataFilePath returns the metadata record path for an identity.
func (s *Store) metadataFilePath(id domain.Identity) string {
	return filepath.Join(domain.MetadataPath(s.root), id.MetadataFile())
}

// Metadata reads the identity's metadata record. A missing record is
// reported with fs.ErrNotExist in the chain so callers can distinguish
// absence from corruption.
func (s *Store) Metadata(id domain.Identity) (*domain.Metadata, error) {
	return s.readMetadataFile(s.metadataFilePath(id))
}

func (s *Store) readMetadataFile(path string) (*domain.Metadata, error) {
	//nolint:gosec // Path is constructed from the trusted metadata directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.Wrap(err, domain.ErrMetadataReadFailed.Error())
	}

	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataUnmarshalFailed.Error())
	}

	return &meta, nil
}

// writeMetadata writes a metadata record atomically: temp file in the same
// directory, then rename.
func (s *Store) writeMetadata(id domain.Identity, meta *domain.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}

	path := s.metadataFilePath(id)
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "metadata-*.json")
	if err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}

	return nil
}

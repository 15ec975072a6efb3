package store

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// treeDigest computes a deterministic digest of a directory tree: relative
// paths and file contents, visited in sorted order. It backs the store's
// integrity check only; nothing deduplicates on it.
func treeDigest(root string) (string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	digest := xxhash.New()
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		_, _ = digest.WriteString(rel)
		_, _ = digest.Write([]byte{0})

		if err := hashFileInto(digest, path); err != nil {
			return "", err
		}
		_, _ = digest.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

func hashFileInto(digest io.Writer, path string) error {
	f, err := os.Open(path) //nolint:gosec // Path comes from a tree walk under a trusted root
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	_, err = io.Copy(digest, f)
	return err
}

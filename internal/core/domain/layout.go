package domain

import (
	"os"
	"path/filepath"
)

const (
	// PaktDirName is the name of the global cache root directory.
	PaktDirName = ".pakt"

	// StoreDirName is the name of the identity-addressed package store directory.
	StoreDirName = "store"

	// MetadataDirName is the name of the package metadata directory.
	MetadataDirName = "metadata"

	// AnalyticsDirName is the name of the analytics directory.
	AnalyticsDirName = "analytics"

	// StagingDirName is the name of the staging directory used for in-progress
	// stores and downloads before their atomic rename into place.
	StagingDirName = "staging"

	// ModulesDirName is the name of a project's local module directory.
	ModulesDirName = "pakt_modules"

	// ManifestFileName is the name of the project manifest file.
	ManifestFileName = "pakt.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCacheRoot returns the global cache root, ~/.pakt.
// It falls back to a relative .pakt directory when the home
// directory cannot be determined.
func DefaultCacheRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return PaktDirName
	}
	return filepath.Join(home, PaktDirName)
}

// StorePath returns the package store directory under the given cache root.
func StorePath(root string) string {
	return filepath.Join(root, StoreDirName)
}

// MetadataPath returns the metadata directory under the given cache root.
func MetadataPath(root string) string {
	return filepath.Join(root, MetadataDirName)
}

// AnalyticsPath returns the analytics directory under the given cache root.
func AnalyticsPath(root string) string {
	return filepath.Join(root, AnalyticsDirName)
}

// StagingPath returns the staging directory under the given cache root.
func StagingPath(root string) string {
	return filepath.Join(root, StagingDirName)
}

// ModulesPath returns the local module directory for a project.
func ModulesPath(projectPath string) string {
	return filepath.Join(projectPath, ModulesDirName)
}

package domain

import "go.trai.ch/zerr"

var (
	// ErrNoMatchingVersion is returned when no registry version satisfies a requested range.
	ErrNoMatchingVersion = zerr.New("no version satisfies the requested range")

	// ErrInvalidRange is returned when a dependency range is not a valid semver range expression.
	ErrInvalidRange = zerr.New("invalid version range")

	// ErrCircularDependency is returned when the resolver detects a dependency cycle.
	ErrCircularDependency = zerr.New("circular dependency detected")

	// ErrDepthExceeded is returned when resolution recurses past the safety depth bound.
	ErrDepthExceeded = zerr.New("maximum resolution depth exceeded")

	// ErrPackageNotFound is returned when the registry has no record for a package name.
	ErrPackageNotFound = zerr.New("package not found in registry")

	// ErrVersionNotFound is returned when a resolved version is missing from the registry record.
	ErrVersionNotFound = zerr.New("version not found in registry record")

	// ErrRegistryRequestFailed is returned when a registry HTTP request fails.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryParseFailed is returned when a registry response cannot be decoded.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrDownloadFailed is returned when a tarball download or extraction fails.
	ErrDownloadFailed = zerr.New("failed to download package")

	// ErrExtractFailed is returned when a downloaded tarball cannot be extracted.
	ErrExtractFailed = zerr.New("failed to extract package tarball")

	// ErrStoreCreateFailed is returned when a store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreCopyFailed is returned when copying a package into the store fails.
	ErrStoreCopyFailed = zerr.New("failed to copy package into store")

	// ErrStoreReadFailed is returned when reading from the store fails.
	ErrStoreReadFailed = zerr.New("failed to read from store")

	// ErrMetadataReadFailed is returned when a metadata record cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read package metadata")

	// ErrMetadataWriteFailed is returned when a metadata record cannot be written.
	ErrMetadataWriteFailed = zerr.New("failed to write package metadata")

	// ErrMetadataUnmarshalFailed is returned when a metadata record cannot be unmarshaled.
	ErrMetadataUnmarshalFailed = zerr.New("failed to unmarshal package metadata")

	// ErrPackageCorrupt is returned when a stored package fails content verification.
	ErrPackageCorrupt = zerr.New("stored package content does not match recorded digest")

	// ErrLinkFailed is returned when all link strategies fail for a package.
	ErrLinkFailed = zerr.New("all link strategies failed")

	// ErrManifestNotFound is returned when no pakt.yaml exists in the project directory.
	ErrManifestNotFound = zerr.New("could not find pakt.yaml")

	// ErrManifestReadFailed is returned when an existing manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestWriteFailed is returned when the manifest cannot be written back.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrInstallFailed is returned when installing one or more packages fails.
	ErrInstallFailed = zerr.New("install failed")

	// ErrCacheMiss is returned when a requested item is not found in a cache.
	ErrCacheMiss = zerr.New("cache miss")
)

package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// Registry defines the interface to the package registry: metadata lookups
// and tarball downloads.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// PackageMetadata fetches the registry record for a package name.
	// Records are cached by name for the client's lifetime.
	PackageMetadata(ctx context.Context, name string) (*domain.RegistryPackage, error)

	// Download fetches and extracts the exact version's tarball into
	// targetPath. Concurrent calls with the same (name, version, targetPath)
	// coalesce into one underlying execution; the in-flight entry is cleared
	// when the operation settles, so a failure does not poison retries.
	Download(ctx context.Context, id domain.Identity, targetPath string) error
}

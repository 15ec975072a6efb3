package ports

import "go.trai.ch/pakt/internal/core/domain"

// PackageStore defines the interface for the system-wide identity-addressed
// package store and its metadata lifecycle.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type PackageStore interface {
	// PackagePath returns the slot path for an identity. Deterministic and
	// stable across calls and process restarts.
	PackagePath(id domain.Identity) string

	// Has reports whether the identity's slot exists on disk. The slot's
	// presence is the sole source of truth for "is this package cached";
	// metadata presence is intentionally not consulted.
	Has(id domain.Identity) bool

	// Store copies sourcePath into the identity's slot (staged, then
	// atomically renamed into place) and writes a fresh metadata record.
	// Concurrent Store calls for the same identity serialize.
	Store(id domain.Identity, sourcePath string) (string, error)

	// Touch updates only the lastUsed timestamp of the identity's metadata.
	Touch(id domain.Identity) error

	// UpdateMetadata shallow-merges patch into the identity's metadata
	// record, creating it if absent.
	UpdateMetadata(id domain.Identity, patch domain.MetadataPatch) error

	// Metadata reads the identity's metadata record.
	Metadata(id domain.Identity) (*domain.Metadata, error)

	// Verify recomputes the slot's content digest against the recorded one.
	Verify(id domain.Identity) error

	// Stats enumerates all slots and sums their sizes.
	Stats() (domain.StoreStats, error)

	// FindUnused returns packages whose lastUsed precedes now minus days.
	FindUnused(days int) ([]domain.UnusedPackage, error)

	// Delete removes the slot and the metadata record as two independent
	// best-effort operations. Failures are logged, not raised; the result
	// reports which halves succeeded.
	Delete(id domain.Identity) domain.DeleteResult
}

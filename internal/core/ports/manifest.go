package ports

import "go.trai.ch/pakt/internal/core/domain"

// ManifestLoader reads and rewrites a project's pakt.yaml.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load parses the manifest in dir, preserving declaration order.
	Load(dir string) (*domain.Manifest, error)

	// AddDependency declares name at rng in the manifest, rewriting the file
	// while preserving existing order and formatting.
	AddDependency(dir, name, rng string, dev bool) error
}

package ports

import "go.trai.ch/pakt/internal/core/domain"

// Linker projects a stored package slot into a project tree using the
// cheapest strategy that works: hardlink, then symlink, then copy.
//
//go:generate mockgen -source=linker.go -destination=mocks/mock_linker.go -package=mocks
type Linker interface {
	// LinkPackage materializes sourceSlotPath at targetPath, replacing any
	// pre-existing entry, and returns the strategy that succeeded.
	LinkPackage(sourceSlotPath, targetPath string) (domain.LinkStrategy, error)

	// LinkToProject links a slot into projectPath's module directory under
	// the package name.
	LinkToProject(slotPath, projectPath, name string) (domain.LinkStrategy, error)

	// IsLink reports whether path is a symbolic link. Hardlinked files are
	// indistinguishable from ordinary files here, which is inherent.
	IsLink(path string) bool
}

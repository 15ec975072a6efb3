package ports

import (
	"context"

	"go.trai.ch/pakt/internal/core/domain"
)

// DependencyResolver walks a dependency declaration set into a flat resolved
// tree.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve processes declarations in order and returns one resolved entry
	// per package name. Within one call, each declaration's transitive
	// dependencies are fully resolved before the next declaration begins.
	Resolve(ctx context.Context, deps domain.DependencySet) (domain.ResolvedTree, error)
}

package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/logger"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/adapters/semver"
	"go.trai.ch/pakt/internal/core/ports"
)

// NodeID is the unique identifier for the dependency resolver Graft node.
const NodeID graft.ID = "engine.dependency_resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			semver.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			sel, err := graft.Dep[ports.VersionSelector](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(reg, sel, log), nil
		},
	})
}

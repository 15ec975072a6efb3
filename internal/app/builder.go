package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/analytics"
	"go.trai.ch/pakt/internal/adapters/link"
	"go.trai.ch/pakt/internal/adapters/logger"
	"go.trai.ch/pakt/internal/adapters/manifest"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/adapters/store"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/pakt/internal/engine/resolver"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			resolver.NodeID,
			registry.NodeID,
			store.NodeID,
			link.NodeID,
			analytics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			manifests, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[ports.DependencyResolver](ctx)
			if err != nil {
				return nil, err
			}
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			pkgStore, err := graft.Dep[ports.PackageStore](ctx)
			if err != nil {
				return nil, err
			}
			linker, err := graft.Dep[ports.Linker](ctx)
			if err != nil {
				return nil, err
			}
			recorder, err := graft.Dep[ports.Analytics](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(manifests, res, reg, pkgStore, linker, recorder, log),
				Logger: log,
			}, nil
		},
	})
}

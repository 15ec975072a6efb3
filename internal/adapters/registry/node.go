package registry

import (
	"context"
	"net/http"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/logger"
	"go.trai.ch/pakt/internal/core/ports"
)

// NodeID is the unique identifier for the registry client Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Registry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// PAKT_REGISTRY points installs at an alternative npm-compatible
			// registry, e.g. a private mirror or a test fixture.
			if base := os.Getenv("PAKT_REGISTRY"); base != "" {
				return NewClientWith(base, http.DefaultClient, log), nil
			}
			return NewClient(log), nil
		},
	})
}

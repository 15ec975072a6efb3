package analytics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/logger"
	"go.trai.ch/pakt/internal/core/ports"
)

// NodeID is the unique identifier for the analytics Graft node.
const NodeID graft.ID = "adapter.analytics"

func init() {
	graft.Register(graft.Node[ports.Analytics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Analytics, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecorder(log)
		},
	})
}

package semver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/core/ports"
)

// NodeID is the unique identifier for the version selector Graft node.
const NodeID graft.ID = "adapter.version_selector"

func init() {
	graft.Register(graft.Node[ports.VersionSelector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionSelector, error) {
			return NewSelector(), nil
		},
	})
}

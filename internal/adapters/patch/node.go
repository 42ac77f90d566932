package patch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prefab/internal/core/ports"
)

const NodeID graft.ID = "adapter.patcher"

func init() {
	graft.Register(graft.Node[ports.Patcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Patcher, error) {
			return NewPatcher(), nil
		},
	})
}

package cachecli

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prefab/internal/adapters/logger"
	"go.trai.ch/prefab/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_backend"

func init() {
	graft.Register(graft.Node[ports.CacheBackend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheBackend, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(ToolFromEnv(), log), nil
		},
	})
}

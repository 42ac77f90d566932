package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prefab/internal/adapters/cachecli"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/git"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/patch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prefab/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cachecli.NodeID,
			git.NodeID,
			patch.NodeID,
			shell.NodeID,
			fs.ArtifactStoreNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			cache, err := graft.Dep[ports.CacheBackend](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}

			patcher, err := graft.Dep[ports.Patcher](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(cache, fetcher, patcher, executor, artifacts, log, tracer), nil
		},
	})
}

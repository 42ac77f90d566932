package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prefab/internal/core/ports"
)

const ArtifactStoreNodeID graft.ID = "adapter.artifact_store"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        ArtifactStoreNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			return NewArtifactStore(), nil
		},
	})
}

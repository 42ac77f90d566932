package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/prefab/internal/core/ports"
)

// TracerNodeID is the unique identifier for the telemetry Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// EnvTrace selects the tracer backend: "otel", "progress", or unset for none.
const EnvTrace = "PREFAB_TRACE"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			switch os.Getenv(EnvTrace) {
			case "otel":
				return NewOTelTracer("prefab"), nil
			case "progress":
				return NewProgrockTracer(), nil
			default:
				return NewNoOpTracer(), nil
			}
		},
	})
}

package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prefab/internal/adapters/telemetry"
	"go.trai.ch/prefab/internal/core/ports"
)

var (
	_ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	_ ports.Tracer = (*telemetry.OTelTracer)(nil)
	_ ports.Tracer = (*telemetry.ProgrockTracer)(nil)
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "test-span")
	assert.NotNil(t, newCtx)
	assert.NotNil(t, span)

	span.RecordError(errors.New("test error"))
	span.SetAttribute("key", "value")
	span.Cached()
	span.End()
}

func TestNoOpTracer_EmitPlan(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	tracer.EmitPlan(context.Background(), []string{"alpha", "beta"})
}

func TestNoOpSpan_Write(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	_, span := tracer.Start(context.Background(), "test")

	n, err := span.Write([]byte("build output"))
	require.NoError(t, err)
	assert.Equal(t, len("build output"), n)
}

func TestProgrockTracer_StepLifecycle(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewProgrockTracer()
	defer func() {
		require.NoError(t, tracer.Close())
	}()

	ctx := context.Background()
	tracer.EmitPlan(ctx, []string{"reth"})

	_, span := tracer.Start(ctx, "build reth")
	_, err := span.Write([]byte("cargo build --release\n"))
	require.NoError(t, err)
	span.SetAttribute("revision", "v1.0.0")
	span.End()

	_, cached := tracer.Start(ctx, "restore reth")
	cached.Cached()
	cached.End()
}

func TestProgrockSpan_RecordsErrorOnDone(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewProgrockTracer()
	defer func() {
		require.NoError(t, tracer.Close())
	}()

	_, span := tracer.Start(context.Background(), "build reth")
	span.RecordError(errors.New("exit status 101"))
	span.End()
}

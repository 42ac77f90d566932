package telemetry

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/prefab/internal/core/ports"
)

// ProgrockTracer implements ports.Tracer on a progrock recording session,
// rendering each orchestration step as a vertex.
type ProgrockTracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// NewProgrockTracer creates a tracer recording to a default tape.
func NewProgrockTracer() *ProgrockTracer {
	return NewProgrockRecorder(progrock.NewTape())
}

// NewProgrockRecorder creates a tracer recording to the given writer.
func NewProgrockRecorder(w progrock.Writer) *ProgrockTracer {
	return &ProgrockTracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex for the named step.
func (t *ProgrockTracer) Start(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := t.rec.Vertex(d, name)
	return ctx, &progrockSpan{vertex: v}
}

// EmitPlan does nothing; the tape shows vertexes as they start.
func (t *ProgrockTracer) EmitPlan(_ context.Context, _ []string) {}

// Close flushes and closes the recording session.
func (t *ProgrockTracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// progrockSpan implements ports.Span wrapping *progrock.VertexRecorder.
type progrockSpan struct {
	vertex *progrock.VertexRecorder
	err    error
}

func (s *progrockSpan) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

func (s *progrockSpan) End() {
	s.vertex.Done(s.err)
}

func (s *progrockSpan) RecordError(err error) {
	s.err = err
}

func (s *progrockSpan) Cached() {
	s.vertex.Cached()
}

func (s *progrockSpan) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}

// Package progrock records task spans as vertices on a progrock tape.
package progrock

import (
	"context"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/tend/internal/core/ports"
)

var _ ports.Tracer = (*Tracer)(nil)

// Tracer implements ports.Tracer with one progrock vertex per span.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Tracer that prints finished vertices to out.
func New(out io.Writer) *Tracer {
	return NewTracer(NewLineWriter(out))
}

// NewTracer creates a Tracer recording to the given writer, e.g. a progrock.Tape.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex identified by the digest of the span name.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	v := t.rec.Vertex(digest.FromString(name), name)
	if cfg.Skipped {
		v.Cached()
	}
	return ctx, &Span{vertex: v}
}

// EmitPlan records the plan as a vertex listing the task names.
func (t *Tracer) EmitPlan(_ context.Context, taskNames []string) {
	v := t.rec.Vertex(digest.FromString("plan"), "plan")
	out := v.Stdout()
	for _, name := range taskNames {
		_, _ = io.WriteString(out, name+"\n")
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	return t.w.Close()
}

// Span implements ports.Span on a progrock vertex.
type Span struct {
	vertex *progrock.VertexRecorder

	mu  sync.Mutex
	err error
}

// Write sends task output to the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// RecordError remembers err for End.
func (s *Span) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetAttribute marks the vertex cached when the task was fresh. Other attributes are ignored.
func (s *Span) SetAttribute(key string, value any) {
	if fresh, ok := value.(bool); ok && key == "tend.fresh" && fresh {
		s.vertex.Cached()
	}
}

// End completes the vertex with the recorded error, if any.
func (s *Span) End() {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	s.vertex.Done(err)
}

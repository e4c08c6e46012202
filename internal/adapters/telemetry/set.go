package telemetry

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/tend/internal/adapters/telemetry/progrock"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
)

// Tracer names accepted by Select.
const (
	TracerNone     = "none"
	TracerOTel     = "otel"
	TracerProgrock = "progrock"
)

// InstrumentationName names the OpenTelemetry tracer.
const InstrumentationName = "go.trai.ch/tend"

// Set builds the tracer chosen on the command line. Tracers are created on first use.
type Set struct {
	logger ports.Logger
	out    io.Writer

	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	otel     *OTelTracer
	progrock *progrock.Tracer
}

// NewSet creates a Set. The OTel tracer reports through logger; the progrock tracer prints to out.
func NewSet(logger ports.Logger, out io.Writer) *Set {
	return &Set{logger: logger, out: out}
}

// Select returns the tracer with the given name. The empty name selects none.
func (s *Set) Select(name string) (ports.Tracer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case "", TracerNone:
		return NewNoOpTracer(), nil
	case TracerOTel:
		if s.otel == nil {
			s.provider = NewProvider(NewBridge(s.logger))
			otel.SetTracerProvider(s.provider)
			s.otel = NewOTelTracer(InstrumentationName)
		}
		return s.otel, nil
	case TracerProgrock:
		if s.progrock == nil {
			s.progrock = progrock.New(s.out)
		}
		return s.progrock, nil
	default:
		return nil, domain.Annotate(domain.ErrUnknownTracer, "tracer", name)
	}
}

// Shutdown flushes and stops every tracer that was selected.
func (s *Set) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	if s.provider != nil {
		errs = errors.Join(errs, s.provider.Shutdown(ctx))
		s.provider = nil
		s.otel = nil
	}
	if s.progrock != nil {
		errs = errors.Join(errs, s.progrock.Close())
		s.progrock = nil
	}
	return errs
}

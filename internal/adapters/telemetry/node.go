package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/tend/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tend/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the default tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
	// SetNodeID is the unique identifier for the tracer set Graft node.
	SetNodeID graft.ID = "adapter.telemetry.set"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewNoOpTracer(), nil
		},
	})

	graft.Register(graft.Node[*Set]{
		ID:        SetNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Set, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSet(log, os.Stderr), nil
		},
	})
}

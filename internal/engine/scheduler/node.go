package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tend/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tend/internal/adapters/linear"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tend/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tend/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tend/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FingerprinterNodeID,
			linear.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(fingerprinter, renderer, tracer, log), nil
		},
	})
}

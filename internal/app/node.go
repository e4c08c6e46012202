package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tend/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tend/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tend/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tend/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tend/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/tend/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			linear.NodeID,
			telemetry.SetNodeID,
			report.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	tracers, err := graft.Dep[*telemetry.Set](ctx)
	if err != nil {
		return nil, err
	}
	reports, err := graft.Dep[ports.ReportWriter](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, sched, renderer, tracers, reports, log), nil
}

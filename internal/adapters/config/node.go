package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tend/internal/adapters/fs"     //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tend/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tend/internal/adapters/shell"  //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tend/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ScannerNodeID, fs.ResolverNodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			scanner, err := graft.Dep[ports.FileScanner](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, scanner, resolver, runner), nil
		},
	})
}

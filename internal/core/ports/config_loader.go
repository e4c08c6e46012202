package ports

import "go.trai.ch/tend/internal/core/domain"

// ConfigLoader defines the interface for loading a taskfile.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the taskfile at path, or discovers one upward from cwd when path is empty,
	// and returns the registered tasks.
	Load(cwd, path string) (*domain.Project, error)
}

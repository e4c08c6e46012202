// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/tend/internal/core/domain"
)

// CommandRunner runs external processes for task actions.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd, streaming its output to stdout and stderr.
	// A non-zero exit is reported both in the result and as an error.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) (domain.CommandResult, error)
}

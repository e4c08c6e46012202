package ports

import (
	"io"

	"go.trai.ch/tend/internal/core/domain"
)

// Renderer presents an invocation to the operator.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlan is called once with every task of the graph in plan order and the requested targets.
	OnPlan(tasks []string, targets []string)

	// OnTaskStart is called when a task's action is about to run.
	OnTaskStart(name string)

	// TaskOutput returns the writer that receives the task's process output.
	TaskOutput(name string) io.Writer

	// OnTaskComplete is called once per task with its final result.
	OnTaskComplete(result domain.TaskResult)

	// Summary prints the per-task summary of the invocation.
	Summary(report *domain.RunReport) error
}

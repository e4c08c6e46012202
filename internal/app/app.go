// Package app implements the application layer for tend.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/tend/internal/adapters/telemetry"
	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/tend/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	renderer     ports.Renderer
	tracers      *telemetry.Set
	reports      ports.ReportWriter
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	renderer ports.Renderer,
	tracers *telemetry.Set,
	reports ports.ReportWriter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		renderer:     renderer,
		tracers:      tracers,
		reports:      reports,
		logger:       log,
	}
}

// LoadOptions locates the taskfile.
type LoadOptions struct {
	// Dir is where discovery starts. Empty means the process working directory.
	Dir string
	// ConfigPath names the taskfile explicitly, relative to Dir.
	ConfigPath string
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	LoadOptions
	Jobs       int
	FailFast   bool
	DryRun     bool
	Trace      string
	ReportPath string
}

// Run loads the taskfile, builds the graph for the targets and runs it.
// No targets selects the taskfile's default task.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	project, graph, err := a.plan(opts.LoadOptions, targetNames)
	if err != nil {
		return err
	}

	tracer, err := a.tracers.Select(opts.Trace)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.tracers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to shut down tracer: %v", err))
		}
	}()

	ctx, span := tracer.Start(ctx, "tend run")
	span.SetAttribute("tend.targets", strings.Join(targetNames, ","))
	defer span.End()

	report, runErr := a.scheduler.Run(ctx, graph, scheduler.Options{
		Parallelism: opts.Jobs,
		FailFast:    opts.FailFast,
		DryRun:      opts.DryRun,
		Mode:        project.Fingerprint,
		Tracer:      tracer,
	})
	if runErr != nil {
		span.RecordError(runErr)
	}

	if err := a.renderer.Summary(report); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to print summary: %v", err))
	}

	if opts.ReportPath != "" {
		if err := a.reports.Write(opts.ReportPath, report); err != nil {
			if runErr != nil {
				a.logger.Error(err)
				return runErr
			}
			return err
		}
	}

	return runErr
}

// List prints every task with its description, sorted by name. The default task is marked.
func (a *App) List(opts LoadOptions, w io.Writer) error {
	project, err := a.load(opts)
	if err != nil {
		return err
	}

	names := project.Tasks.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	for _, name := range names {
		task, _ := project.Tasks.Get(domain.NewInternedString(name))
		marker := " "
		if name == project.Default {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-*s  %s", marker, width, name, task.Description)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return zerr.Wrap(err, "failed to write task list")
		}
	}
	return nil
}

// Graph prints the plan for the targets: one task per line in plan order with its dependencies.
func (a *App) Graph(opts LoadOptions, targetNames []string, w io.Writer) error {
	_, graph, err := a.plan(opts, targetNames)
	if err != nil {
		return err
	}

	for _, i := range graph.Order() {
		line := graph.Task(i).Name.String()
		if deps := graph.DependencyNames(i); len(deps) > 0 {
			line += " <- " + strings.Join(deps, ", ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return zerr.Wrap(err, "failed to write graph")
		}
	}
	return nil
}

func (a *App) load(opts LoadOptions) (*domain.Project, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}
	return a.configLoader.Load(dir, opts.ConfigPath)
}

func (a *App) plan(opts LoadOptions, targetNames []string) (*domain.Project, *domain.Graph, error) {
	project, err := a.load(opts)
	if err != nil {
		return nil, nil, err
	}

	if len(targetNames) == 0 && project.Default != "" {
		targetNames = []string{project.Default}
	}

	graph, err := domain.BuildGraph(project.Tasks, targetNames)
	if err != nil {
		return nil, nil, err
	}
	return project, graph, nil
}

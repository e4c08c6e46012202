// Package scheduler walks a task graph and runs the stale tasks.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"go.trai.ch/tend/internal/engine/fingerprint"
	"go.trai.ch/tend/internal/engine/staleness"
)

// Options tunes one Run.
type Options struct {
	// Parallelism bounds the number of concurrently running tasks. Zero means unbounded.
	Parallelism int
	// FailFast stops starting new tasks after the first failure.
	FailFast bool
	// DryRun decides staleness but runs no actions. Stale tasks count as ran.
	DryRun bool
	// Mode selects how tracked files are fingerprinted.
	Mode domain.FingerprintMode
	// Tracer overrides the scheduler's tracer for this run.
	Tracer ports.Tracer
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	fingerprinter ports.Fingerprinter
	renderer      ports.Renderer
	tracer        ports.Tracer
	logger        ports.Logger
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	fingerprinter ports.Fingerprinter,
	renderer ports.Renderer,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		fingerprinter: fingerprinter,
		renderer:      renderer,
		tracer:        tracer,
		logger:        logger,
	}
}

// Run executes the graph and returns one result per task in plan order.
// The report is always returned. The error is ErrBuildExecutionFailed when a task
// did not end ran or fresh.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, opts Options) (*domain.RunReport, error) {
	start := time.Now()
	state := s.newRunState(ctx, graph, opts)

	planned := make([]string, 0, graph.Len())
	for task := range graph.Walk() {
		planned = append(planned, task.Name.String())
	}
	requested := make([]string, 0, len(graph.Requested()))
	for _, i := range graph.Requested() {
		requested = append(requested, graph.Task(i).Name.String())
	}

	state.tracer.EmitPlan(ctx, planned)
	s.renderer.OnPlan(planned, requested)

	state.runExecutionLoop()

	report := &domain.RunReport{
		Requested: requested,
		DryRun:    opts.DryRun,
		Results:   make([]domain.TaskResult, 0, graph.Len()),
		Duration:  time.Since(start),
	}
	for _, i := range graph.Order() {
		report.Results = append(report.Results, state.results[i])
	}

	if !report.OK() {
		return report, domain.Annotate(domain.ErrBuildExecutionFailed, "failed", len(report.Failed()))
	}
	return report, nil
}

type result struct {
	index   int
	state   domain.TaskState
	result  domain.TaskResult
	changed bool
}

type schedulerRunState struct {
	s      *Scheduler
	ctx    context.Context
	opts   Options
	tracer ports.Tracer
	graph  *domain.Graph
	inv    *invocation

	states      []domain.TaskState
	results     []domain.TaskResult
	changed     []bool
	pendingDeps []int
	ready       []int
	active      int
	limit       int
	failed      bool
	resultsCh   chan result
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.Graph, opts Options) *schedulerRunState {
	n := graph.Len()
	tracer := s.tracer
	if opts.Tracer != nil {
		tracer = opts.Tracer
	}
	limit := opts.Parallelism
	if limit <= 0 || limit > n {
		limit = n
	}

	state := &schedulerRunState{
		s:           s,
		ctx:         ctx,
		opts:        opts,
		tracer:      tracer,
		graph:       graph,
		inv:         newInvocation(graph, fingerprint.NewCache(s.fingerprinter, opts.Mode)),
		states:      make([]domain.TaskState, n),
		results:     make([]domain.TaskResult, n),
		changed:     make([]bool, n),
		pendingDeps: make([]int, n),
		limit:       limit,
		resultsCh:   make(chan result, n),
	}

	for i := range n {
		state.results[i].Name = graph.Task(i).Name.String()
		state.pendingDeps[i] = len(graph.Dependencies(i))
	}
	for i := range n {
		if state.pendingDeps[i] == 0 {
			state.markReady(i)
		}
	}
	return state
}

func (state *schedulerRunState) runExecutionLoop() {
	done := state.ctx.Done()
	for {
		state.schedule()

		if state.active == 0 && (len(state.ready) == 0 || state.stopping()) {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-done:
			// Running tasks finish; nothing new starts.
			done = nil
		}
	}

	state.cancelRemaining()
}

func (state *schedulerRunState) stopping() bool {
	return state.ctx.Err() != nil || (state.opts.FailFast && state.failed)
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.limit && !state.stopping() {
		i := state.ready[0]
		state.ready = state.ready[1:]

		state.transition(i, domain.StateRunning)
		state.active++

		upstream := state.upstreamRan(i)
		go state.executeTask(i, upstream)
	}
}

// upstreamRan returns the name of the first dependency that ran in this invocation.
func (state *schedulerRunState) upstreamRan(i int) string {
	for _, j := range state.graph.Dependencies(i) {
		if state.changed[j] {
			return state.results[j].Name
		}
	}
	return ""
}

// markReady moves a task whose dependencies are all terminal to Ready, or skips it
// when one of them did not succeed. Skips cascade to dependents.
func (state *schedulerRunState) markReady(i int) {
	state.transition(i, domain.StateReady)

	for _, j := range state.graph.Dependencies(i) {
		if state.results[j].Outcome.OK() {
			continue
		}
		state.transition(i, domain.StateSkipped)
		state.complete(i, domain.TaskResult{
			Name:    state.results[i].Name,
			Outcome: domain.OutcomeSkippedDependencyFailed,
			Reason:  domain.ReasonDependencyFailed,
			Detail:  state.results[j].Name,
		})

		_, span := state.tracer.Start(state.ctx, state.results[i].Name, ports.WithSkipped())
		span.End()

		state.release(i)
		return
	}

	state.ready = append(state.ready, i)
}

func (state *schedulerRunState) release(i int) {
	for _, d := range state.graph.Dependents(i) {
		state.pendingDeps[d]--
		if state.pendingDeps[d] == 0 {
			state.markReady(d)
		}
	}
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	state.transition(res.index, res.state)
	state.changed[res.index] = res.changed
	if res.result.Outcome == domain.OutcomeFailed {
		state.failed = true
	}
	state.complete(res.index, res.result)
	state.release(res.index)
}

func (state *schedulerRunState) complete(i int, res domain.TaskResult) {
	state.results[i] = res
	state.s.renderer.OnTaskComplete(res)
}

// cancelRemaining skips every task that never started.
func (state *schedulerRunState) cancelRemaining() {
	for _, i := range state.graph.Order() {
		if state.states[i].IsTerminal() {
			continue
		}
		state.transition(i, domain.StateSkipped)
		state.complete(i, domain.TaskResult{
			Name:    state.results[i].Name,
			Outcome: domain.OutcomeCancelled,
			Reason:  domain.ReasonCancelled,
		})
	}
}

func (state *schedulerRunState) transition(i int, to domain.TaskState) {
	next, err := state.states[i].Transition(to)
	if err != nil {
		state.s.logger.Error(domain.Annotate(err, "task", state.results[i].Name))
		return
	}
	state.states[i] = next
}

func (state *schedulerRunState) executeTask(i int, upstream string) {
	// The span is ended before the result is sent so it is recorded by the time the loop sees it.
	res := func() result {
		name := state.results[i].Name
		started := time.Now()

		ctx, span := state.tracer.Start(state.ctx, name)
		defer span.End()

		res := state.runTask(ctx, span, i, upstream)
		res.index = i
		res.result.Name = name
		res.result.Duration = time.Since(started)
		if res.result.Err != nil {
			span.RecordError(res.result.Err)
		}
		return res
	}()

	state.resultsCh <- res
}

func failed(err error) result {
	return result{
		state:  domain.StateFailed,
		result: domain.TaskResult{Outcome: domain.OutcomeFailed, Err: err},
	}
}

func (state *schedulerRunState) runTask(ctx context.Context, span ports.Span, i int, upstream string) result {
	task := state.graph.Task(i)
	name := task.Name.String()
	cache := state.inv.cache

	// Step 1: resolve dependencies into files. A started task finishes even when the run is cancelled.
	inputs, err := state.inv.resolveInputs(context.WithoutCancel(ctx), i)
	if err != nil {
		return failed(err)
	}

	// Step 2: fingerprint targets and inputs.
	targetPrints, err := cache.GetAll(task.Targets)
	if err != nil {
		return failed(domain.WithKind(domain.ErrDependencyResolutionFailed, err, "task", name))
	}
	inputPrints, err := cache.GetAll(inputs)
	if err != nil {
		return failed(domain.WithKind(domain.ErrDependencyResolutionFailed, err, "task", name))
	}

	// Step 3: decide.
	decision := staleness.Decide(staleness.Input{
		AlwaysRun:    task.AlwaysRun,
		UpstreamRan:  upstream != "",
		Upstream:     upstream,
		Targets:      task.Targets,
		TargetPrints: targetPrints,
		Inputs:       inputs,
		InputPrints:  inputPrints,
	})
	if !decision.Stale {
		span.SetAttribute("tend.fresh", true)
		return result{
			state:  domain.StateSkipped,
			result: domain.TaskResult{Outcome: domain.OutcomeFresh, Reason: decision.Reason},
		}
	}
	span.SetAttribute("tend.reason", decision.String())

	ran := result{
		state:   domain.StateSucceeded,
		changed: true,
		result: domain.TaskResult{
			Outcome: domain.OutcomeRan,
			Reason:  decision.Reason,
			Detail:  decision.Detail,
		},
	}
	if state.opts.DryRun {
		return ran
	}

	// Step 4: run the action. Cancellation never interrupts a running action.
	state.s.renderer.OnTaskStart(name)
	out := io.MultiWriter(span, state.s.renderer.TaskOutput(name))
	if err := task.Action(context.WithoutCancel(ctx), out, out); err != nil {
		res := failed(domain.WithKind(domain.ErrActionFailed, err, "task", name))
		res.result.Reason = decision.Reason
		return res
	}

	// Step 5: refresh target fingerprints.
	cache.Invalidate(task.Targets...)
	after, err := cache.GetAll(task.Targets)
	if err != nil {
		state.s.logger.Warn(fmt.Sprintf("failed to fingerprint targets of %s: %v", name, err))
		return ran
	}
	for k, fp := range after {
		if !fp.Present() {
			state.s.logger.Warn(fmt.Sprintf("task %s did not produce target %s", name, task.Targets[k]))
		}
	}
	return ran
}

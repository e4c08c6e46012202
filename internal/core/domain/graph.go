// Package domain contains the core domain models and business logic for the task dependency graph.
package domain

import (
	"iter"

	"github.com/gammazero/toposort"
	"go.trai.ch/zerr"
)

// Graph is the dependency graph of one invocation: the tasks reachable from the
// requested targets, stored as an arena with index-based edge lists.
type Graph struct {
	tasks      []*Task
	index      map[InternedString]int
	deps       [][]int
	dependents [][]int
	order      []int
	requested  []int
}

// BuildGraph resolves the transitive closure of targets in set and validates it.
// A static file dependency on a path that another task declares as a target adds
// an edge to that task. Structural errors are returned before anything runs.
func BuildGraph(set *TaskSet, targets []string) (*Graph, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargetsSpecified
	}

	producers := make(map[InternedString][]InternedString)
	for t := range set.All() {
		for _, target := range t.Targets {
			producers[target.Path] = append(producers[target.Path], t.Name)
		}
	}

	requested, err := resolveRequested(set, targets)
	if err != nil {
		return nil, err
	}

	edges, err := collectClosure(set, producers, requested)
	if err != nil {
		return nil, err
	}

	g := &Graph{index: make(map[InternedString]int, len(edges))}
	for t := range set.All() {
		if _, ok := edges[t.Name]; !ok {
			continue
		}
		g.index[t.Name] = len(g.tasks)
		g.tasks = append(g.tasks, t)
	}

	g.deps = make([][]int, len(g.tasks))
	g.dependents = make([][]int, len(g.tasks))
	for i, t := range g.tasks {
		for _, dep := range edges[t.Name] {
			j := g.index[dep]
			g.deps[i] = append(g.deps[i], j)
			g.dependents[j] = append(g.dependents[j], i)
		}
	}
	for _, name := range requested {
		g.requested = append(g.requested, g.index[name])
	}

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	if err := g.plan(); err != nil {
		return nil, err
	}
	return g, nil
}

func resolveRequested(set *TaskSet, targets []string) ([]InternedString, error) {
	seen := make(map[InternedString]bool, len(targets))
	requested := make([]InternedString, 0, len(targets))
	for _, target := range targets {
		name := NewInternedString(target)
		if _, ok := set.Get(name); !ok {
			return nil, Annotate(ErrTaskNotFound, "task", target)
		}
		if !seen[name] {
			seen[name] = true
			requested = append(requested, name)
		}
	}
	return requested, nil
}

// collectClosure walks from the requested tasks and returns the direct
// dependency names of every reachable task.
func collectClosure(
	set *TaskSet,
	producers map[InternedString][]InternedString,
	requested []InternedString,
) (map[InternedString][]InternedString, error) {
	edges := make(map[InternedString][]InternedString)
	queue := make([]InternedString, len(requested))
	copy(queue, requested)
	visited := make(map[InternedString]bool, len(requested))
	for _, name := range requested {
		visited[name] = true
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		task, _ := set.Get(current)

		var direct []InternedString
		added := make(map[InternedString]bool)
		add := func(dep InternedString) {
			if dep == current || added[dep] {
				return
			}
			added[dep] = true
			direct = append(direct, dep)
		}

		for _, ref := range task.TaskRefs() {
			if _, ok := set.Get(ref); !ok {
				return nil, Annotate(ErrUnresolvedTaskReference,
					"task", current.String(),
					"dependency", ref.String(),
				)
			}
			add(ref)
		}
		for _, file := range task.StaticFiles() {
			for _, producer := range producers[file.Path] {
				add(producer)
			}
		}

		edges[current] = direct
		for _, dep := range direct {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return edges, nil
}

// detectCycles runs a depth-first traversal with an on-path marker and reports
// the first back-edge as the full ordered loop.
func (g *Graph) detectCycles() error {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]int, len(g.tasks))
	var path []int

	var visit func(u int) error
	visit = func(u int) error {
		state[u] = onPath
		path = append(path, u)

		for _, v := range g.deps[u] {
			switch state[v] {
			case onPath:
				return g.cycleError(path, v)
			case unvisited:
				if err := visit(v); err != nil {
					return err
				}
			}
		}

		state[u] = done
		path = path[:len(path)-1]
		return nil
	}

	for _, u := range g.requested {
		if state[u] == unvisited {
			if err := visit(u); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Graph) cycleError(path []int, start int) error {
	var cycle []string
	for i, node := range path {
		if node == start {
			for _, n := range path[i:] {
				cycle = append(cycle, g.tasks[n].Name.String())
			}
			break
		}
	}
	return Annotate(ErrCycleDetected, "cycle", cycle)
}

// plan computes a deterministic topological order.
func (g *Graph) plan() error {
	edges := make([]toposort.Edge, 0, len(g.tasks))
	for i, t := range g.tasks {
		if len(g.deps[i]) == 0 {
			edges = append(edges, toposort.Edge{nil, t.Name.String()})
			continue
		}
		for _, j := range g.deps[i] {
			edges = append(edges, toposort.Edge{g.tasks[j].Name.String(), t.Name.String()})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return zerr.Wrap(err, ErrCycleDetected.Error())
	}

	g.order = make([]int, 0, len(g.tasks))
	for _, id := range sorted {
		if id == nil {
			continue
		}
		g.order = append(g.order, g.index[NewInternedString(id.(string))])
	}
	return nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}

// Task returns the task at index i.
func (g *Graph) Task(i int) *Task {
	return g.tasks[i]
}

// Index returns the arena index of the named task.
func (g *Graph) Index(name InternedString) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Dependencies returns the indices of the tasks that task i depends on.
func (g *Graph) Dependencies(i int) []int {
	return g.deps[i]
}

// Dependents returns the indices of the tasks that depend on task i.
func (g *Graph) Dependents(i int) []int {
	return g.dependents[i]
}

// Requested returns the indices of the requested targets.
func (g *Graph) Requested() []int {
	return g.requested
}

// Order returns task indices in plan order: every task after all of its dependencies.
func (g *Graph) Order() []int {
	return g.order
}

// Walk yields tasks in plan order.
func (g *Graph) Walk() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, i := range g.order {
			if !yield(g.tasks[i]) {
				return
			}
		}
	}
}

// DependencyNames returns the names of the direct dependencies of task i.
func (g *Graph) DependencyNames(i int) []string {
	names := make([]string, len(g.deps[i]))
	for k, j := range g.deps[i] {
		names[k] = g.tasks[j].Name.String()
	}
	return names
}

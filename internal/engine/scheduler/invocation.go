package scheduler

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/engine/fingerprint"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// invocation holds the state shared by every task of one Run: the fingerprint
// cache and the memoized results of dynamic file sets.
type invocation struct {
	graph *domain.Graph
	cache *fingerprint.Cache

	mu    sync.Mutex
	sets  map[string]setResult
	group singleflight.Group
}

type setResult struct {
	files []domain.TrackedFile
	err   error
}

func newInvocation(graph *domain.Graph, cache *fingerprint.Cache) *invocation {
	return &invocation{
		graph: graph,
		cache: cache,
		sets:  make(map[string]setResult),
	}
}

// resolveSet returns the files of a dynamic set, calling its resolver at most once.
// A failed resolution is memoized as well.
func (inv *invocation) resolveSet(ctx context.Context, set *domain.DynamicFileSet) ([]domain.TrackedFile, error) {
	inv.mu.Lock()
	res, ok := inv.sets[set.Key()]
	inv.mu.Unlock()
	if ok {
		return res.files, res.err
	}

	v, _, _ := inv.group.Do(set.Key(), func() (any, error) {
		inv.mu.Lock()
		if res, ok := inv.sets[set.Key()]; ok {
			inv.mu.Unlock()
			return res, nil
		}
		inv.mu.Unlock()

		files, err := set.Resolve(ctx)
		if err == nil {
			files = domain.SortTrackedFiles(files)
		}
		res := setResult{files: files, err: err}

		inv.mu.Lock()
		inv.sets[set.Key()] = res
		inv.mu.Unlock()
		return res, nil
	})
	res = v.(setResult)
	return res.files, res.err
}

// resolveInputs flattens the dependencies of task i into tracked files:
// static files, the targets of referenced tasks and the members of dynamic sets.
// Dynamic sets are resolved concurrently; a failing set does not cancel the others.
func (inv *invocation) resolveInputs(ctx context.Context, i int) ([]domain.TrackedFile, error) {
	task := inv.graph.Task(i)

	var files []domain.TrackedFile
	files = append(files, task.StaticFiles()...)
	for _, ref := range task.TaskRefs() {
		j, ok := inv.graph.Index(ref)
		if !ok {
			return nil, domain.Annotate(domain.ErrUnresolvedTaskReference,
				"task", task.Name.String(),
				"dependency", ref.String(),
			)
		}
		files = append(files, inv.graph.Task(j).Targets...)
	}

	sets := task.DynamicSets()
	if len(sets) == 0 {
		return files, nil
	}

	resolved := make([][]domain.TrackedFile, len(sets))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for k, set := range sets {
		g.Go(func() error {
			members, err := inv.resolveSet(ctx, set)
			if err != nil {
				return domain.WithKind(domain.ErrDependencyResolutionFailed, err,
					"task", task.Name.String(),
					"set", set.Label,
				)
			}
			resolved[k] = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, members := range resolved {
		files = append(files, members...)
	}
	return files, nil
}

package domain

import (
	"context"
	"strconv"
	"sync/atomic"
)

// DependencySource is one declared dependency of a task.
// It is one of StaticFile, *DynamicFileSet or TaskRef.
type DependencySource interface {
	dependencySource()
}

// StaticFile depends on a single, fixed path.
type StaticFile struct {
	File TrackedFile
}

func (StaticFile) dependencySource() {}

// TaskRef depends on another task by name. It contributes that task's targets
// once the task has reached a terminal state.
type TaskRef struct {
	Name InternedString
}

func (TaskRef) dependencySource() {}

// FileSetResolver lists the files of a dynamic dependency set.
type FileSetResolver func(ctx context.Context) ([]TrackedFile, error)

// DynamicFileSet is a set of files discovered while the build runs.
// Its resolver is called at most once per invocation.
type DynamicFileSet struct {
	Label   string
	Resolve FileSetResolver

	key string
}

var dynamicSetSeq atomic.Uint64

// NewDynamicFileSet returns a dynamic set with a label used in logs and errors.
func NewDynamicFileSet(label string, resolve FileSetResolver) *DynamicFileSet {
	return &DynamicFileSet{
		Label:   label,
		Resolve: resolve,
		key:     strconv.FormatUint(dynamicSetSeq.Add(1), 10),
	}
}

func (*DynamicFileSet) dependencySource() {}

// Key identifies the set within a process for memoization.
func (d *DynamicFileSet) Key() string {
	return d.key
}

// DependsOnFile is shorthand for a StaticFile dependency.
func DependsOnFile(path string) StaticFile {
	return StaticFile{File: TrackFile(path)}
}

// DependsOnTask is shorthand for a TaskRef dependency.
func DependsOnTask(name string) TaskRef {
	return TaskRef{Name: NewInternedString(name)}
}

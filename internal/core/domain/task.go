package domain

import (
	"context"
	"io"
	"regexp"
)

// Action is the effectful work of a task. Its output streams are shown to the operator.
type Action func(ctx context.Context, stdout, stderr io.Writer) error

// NoAction is the action of aggregate tasks that only group dependencies.
func NoAction(context.Context, io.Writer, io.Writer) error {
	return nil
}

// Task represents a unit of work in the build.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name        InternedString
	Description string
	Action      Action
	Deps        []DependencySource
	Targets     []TrackedFile
	AlwaysRun   bool
}

var validTaskNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// ValidateTaskName checks that a task name only uses characters safe for the CLI and the taskfile.
func ValidateTaskName(name string) error {
	if !validTaskNameRegex.MatchString(name) {
		return Annotate(ErrInvalidTaskName, "task", name)
	}
	return nil
}

// TaskRefs returns the names of the tasks this task references directly, in declaration order.
func (t *Task) TaskRefs() []InternedString {
	var refs []InternedString
	for _, dep := range t.Deps {
		if ref, ok := dep.(TaskRef); ok {
			refs = append(refs, ref.Name)
		}
	}
	return refs
}

// StaticFiles returns the static file dependencies of the task, in declaration order.
func (t *Task) StaticFiles() []TrackedFile {
	var files []TrackedFile
	for _, dep := range t.Deps {
		if sf, ok := dep.(StaticFile); ok {
			files = append(files, sf.File)
		}
	}
	return files
}

// DynamicSets returns the dynamic file set dependencies of the task, in declaration order.
func (t *Task) DynamicSets() []*DynamicFileSet {
	var sets []*DynamicFileSet
	for _, dep := range t.Deps {
		if ds, ok := dep.(*DynamicFileSet); ok {
			sets = append(sets, ds)
		}
	}
	return sets
}

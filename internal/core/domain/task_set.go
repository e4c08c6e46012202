package domain

import (
	"iter"
	"slices"
	"strings"
)

// TaskSet is an explicit registry of tasks. Independent sets never share state.
type TaskSet struct {
	tasks map[InternedString]*Task
	order []InternedString
}

// NewTaskSet creates a new empty TaskSet.
func NewTaskSet() *TaskSet {
	return &TaskSet{
		tasks: make(map[InternedString]*Task),
	}
}

// Register adds a task to the set.
// It returns ErrDuplicateTaskName if a task with the same name already exists.
func (s *TaskSet) Register(t *Task) error {
	if err := ValidateTaskName(t.Name.String()); err != nil {
		return err
	}
	if t.Action == nil {
		return Annotate(ErrNilAction, "task", t.Name.String())
	}
	if _, exists := s.tasks[t.Name]; exists {
		return Annotate(ErrDuplicateTaskName, "task", t.Name.String())
	}
	s.tasks[t.Name] = t
	s.order = append(s.order, t.Name)
	return nil
}

// Get returns the task with the given name.
func (s *TaskSet) Get(name InternedString) (*Task, bool) {
	t, ok := s.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (s *TaskSet) Len() int {
	return len(s.order)
}

// All yields tasks in registration order.
func (s *TaskSet) All() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, name := range s.order {
			if !yield(s.tasks[name]) {
				return
			}
		}
	}
}

// Names returns all task names sorted lexicographically.
func (s *TaskSet) Names() []string {
	names := make([]string, len(s.order))
	for i, n := range s.order {
		names[i] = n.String()
	}
	slices.SortFunc(names, strings.Compare)
	return names
}

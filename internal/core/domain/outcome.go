package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Outcome is the final result of one task in an invocation.
type Outcome int

const (
	// OutcomeFresh means the task was skipped because its targets are up to date.
	OutcomeFresh Outcome = iota
	// OutcomeRan means the task's action ran and succeeded.
	OutcomeRan
	// OutcomeFailed means dependency resolution or the action failed.
	OutcomeFailed
	// OutcomeSkippedDependencyFailed means a dependency failed or was skipped, so the action never ran.
	OutcomeSkippedDependencyFailed
	// OutcomeCancelled means the invocation was cancelled before the task started.
	OutcomeCancelled
)

var outcomeNames = map[Outcome]string{
	OutcomeFresh:                   "fresh",
	OutcomeRan:                     "ran",
	OutcomeFailed:                  "failed",
	OutcomeSkippedDependencyFailed: "skipped-dependency-failed",
	OutcomeCancelled:               "cancelled",
}

// String returns the outcome as shown in summaries and reports.
func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	for k, name := range outcomeNames {
		if name == string(text) {
			*o = k
			return nil
		}
	}
	return zerr.With(zerr.New("unknown outcome"), "outcome", string(text))
}

// OK reports whether the outcome counts as success for the invocation.
func (o Outcome) OK() bool {
	return o == OutcomeFresh || o == OutcomeRan
}

// TaskResult is the outcome of one task with the detail needed to explain it.
type TaskResult struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Reason   Reason        `json:"reason,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// ErrorDetail returns the error message and its metadata, e.g. exit code and output.
func (r TaskResult) ErrorDetail() (string, map[string]any) {
	if r.Err == nil {
		return "", nil
	}
	meta := make(map[string]any)
	collectMetadata(r.Err, meta)
	return r.Err.Error(), meta
}

// RunReport collects the results of one invocation in plan order.
type RunReport struct {
	Requested []string      `json:"requested"`
	DryRun    bool          `json:"dry_run,omitempty"`
	Results   []TaskResult  `json:"results"`
	Duration  time.Duration `json:"duration"`
}

// OK reports whether every task ended ran or fresh.
func (r *RunReport) OK() bool {
	for _, res := range r.Results {
		if !res.Outcome.OK() {
			return false
		}
	}
	return true
}

// Count returns the number of tasks with the given outcome.
func (r *RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Result returns the result of the named task.
func (r *RunReport) Result(name string) (TaskResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return TaskResult{}, false
}

// Failed returns the results that did not end ran or fresh.
func (r *RunReport) Failed() []TaskResult {
	var out []TaskResult
	for _, res := range r.Results {
		if !res.Outcome.OK() {
			out = append(out, res)
		}
	}
	return out
}

// collectMetadata merges zerr metadata along the error tree. Outer values win.
func collectMetadata(err error, meta map[string]any) {
	if err == nil {
		return
	}
	if z, ok := err.(*zerr.Error); ok {
		for k, v := range z.Metadata() {
			if _, exists := meta[k]; !exists {
				meta[k] = v
			}
		}
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		collectMetadata(u.Unwrap(), meta)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			collectMetadata(e, meta)
		}
	}
}

package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateTaskName is returned when two registered tasks share a name.
	ErrDuplicateTaskName = zerr.New("duplicate task name")

	// ErrUnresolvedTaskReference is returned when a task depends on a task name that is not registered.
	ErrUnresolvedTaskReference = zerr.New("unresolved task reference")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	// The ordered loop is attached under the "cycle" metadata key.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrDependencyResolutionFailed is returned when a task's dependencies cannot be resolved,
	// e.g. a scanned directory does not exist. The task's action never runs.
	ErrDependencyResolutionFailed = zerr.New("dependency resolution failed")

	// ErrActionFailed is returned when a task's action reports failure.
	ErrActionFailed = zerr.New("action failed")

	// ErrTaskNotFound is returned when a requested task is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when no targets are given and the taskfile has no default.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrNilAction is returned when a task is registered without an action.
	ErrNilAction = zerr.New("task has no action")

	// ErrInvalidTransition is returned when a task state change is not allowed.
	ErrInvalidTransition = zerr.New("invalid task state transition")

	// ErrConfigNotFound is returned when no taskfile can be found.
	ErrConfigNotFound = zerr.New("could not find tend.yaml, tend.yml or tend.hcl")

	// ErrConfigReadFailed is returned when the taskfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the taskfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSkipPattern is returned when a scan skip pattern is not a valid regular expression.
	ErrInvalidSkipPattern = zerr.New("invalid skip pattern")

	// ErrInvalidTimeout is returned when a task timeout cannot be parsed.
	ErrInvalidTimeout = zerr.New("invalid timeout")

	// ErrInvalidFingerprintMode is returned when the taskfile names an unknown fingerprint mode.
	ErrInvalidFingerprintMode = zerr.New("invalid fingerprint mode, expected 'mtime' or 'content'")

	// ErrFingerprintFailed is returned when a file exists but cannot be fingerprinted.
	ErrFingerprintFailed = zerr.New("failed to fingerprint file")

	// ErrScanRootNotFound is returned when a scanned directory does not exist.
	ErrScanRootNotFound = zerr.New("scan root not found")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrUnknownTracer is returned when an unknown tracer name is requested.
	ErrUnknownTracer = zerr.New("unknown tracer, expected 'none', 'otel' or 'progrock'")

	// ErrReportWriteFailed is returned when the run report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write run report")

	// ErrBuildExecutionFailed is returned when at least one task did not end ran or fresh.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)

// Annotate attaches metadata to err while keeping errors.Is(result, err) true.
func Annotate(err error, kv ...any) error {
	out := zerr.Wrap(err, "")
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		out = zerr.With(out, key, kv[i+1])
	}
	return out
}

// WithKind classifies cause as kind. errors.Is matches both kind and anything in the cause chain.
func WithKind(kind, cause error, kv ...any) error {
	return Annotate(&kindError{kind: kind, cause: cause}, kv...)
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

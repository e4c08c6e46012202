package domain

// Reason explains a staleness decision.
type Reason string

const (
	// ReasonUpToDate means every target is at least as new as every dependency.
	ReasonUpToDate Reason = "up-to-date"
	// ReasonAlwaysRun means the task is flagged to run on every invocation.
	ReasonAlwaysRun Reason = "always-run"
	// ReasonTargetMissing means at least one declared target does not exist.
	ReasonTargetMissing Reason = "target-missing"
	// ReasonDependencyNewer means a dependency is newer than the oldest target.
	ReasonDependencyNewer Reason = "dependency-newer"
	// ReasonUpstreamRan means a task this task depends on ran in this invocation.
	ReasonUpstreamRan Reason = "upstream-ran"
	// ReasonDependencyFailed means a dependency task failed or was skipped.
	ReasonDependencyFailed Reason = "dependency-failed"
	// ReasonCancelled means the invocation stopped before the task started.
	ReasonCancelled Reason = "cancelled"
)

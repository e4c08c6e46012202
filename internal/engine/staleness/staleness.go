// Package staleness decides whether a task's targets are out of date.
package staleness

import (
	"fmt"

	"go.trai.ch/tend/internal/core/domain"
)

// Input is what the decision needs to know about one task.
type Input struct {
	AlwaysRun bool
	// UpstreamRan is true when a task this task references ran in this invocation.
	UpstreamRan bool
	// Upstream names the first dependency task that ran, for the decision detail.
	Upstream string
	Targets  []domain.TrackedFile
	// TargetPrints holds one fingerprint per target, in order.
	TargetPrints []domain.Fingerprint
	Inputs       []domain.TrackedFile
	// InputPrints holds one fingerprint per input, in order.
	InputPrints []domain.Fingerprint
}

// Decision is the outcome of a staleness check.
type Decision struct {
	Stale  bool
	Reason domain.Reason
	// Detail names the file or task that caused the decision, if any.
	Detail string
}

// Decide applies the staleness rules in order:
// always-run, missing target, upstream ran, newer dependency.
// A task without targets is only stale when forced or when something upstream ran.
func Decide(in Input) Decision {
	if in.AlwaysRun {
		return Decision{Stale: true, Reason: domain.ReasonAlwaysRun}
	}

	for i, fp := range in.TargetPrints {
		if !fp.Present() {
			return Decision{Stale: true, Reason: domain.ReasonTargetMissing, Detail: in.Targets[i].String()}
		}
	}

	if in.UpstreamRan {
		return Decision{Stale: true, Reason: domain.ReasonUpstreamRan, Detail: in.Upstream}
	}

	if len(in.TargetPrints) == 0 {
		return Decision{Reason: domain.ReasonUpToDate}
	}

	oldest := domain.Oldest(in.TargetPrints...)
	for i, fp := range in.InputPrints {
		if fp.NewerThan(oldest) {
			return Decision{Stale: true, Reason: domain.ReasonDependencyNewer, Detail: in.Inputs[i].String()}
		}
	}

	return Decision{Reason: domain.ReasonUpToDate}
}

// String renders the decision for logs.
func (d Decision) String() string {
	if d.Detail == "" {
		return string(d.Reason)
	}
	return fmt.Sprintf("%s (%s)", d.Reason, d.Detail)
}

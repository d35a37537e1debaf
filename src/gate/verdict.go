// Package gate implements the run verification core: resolving which run to
// inspect, polling it to completion, evaluating its jobs against the
// required set, and mapping the result to report text and an exit code.
package gate

import (
	"time"

	"cigate/src/provider"
)

// VerdictKind classifies the outcome of evaluating a run. The kinds are
// mutually exclusive; exactly one applies per invocation.
type VerdictKind int

const (
	VerdictSuccess VerdictKind = iota
	VerdictMissingJobs
	VerdictFailedJobs
	VerdictRunNotSuccessful
	VerdictTimedOut
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictSuccess:
		return "success"
	case VerdictMissingJobs:
		return "missing_jobs"
	case VerdictFailedJobs:
		return "failed_jobs"
	case VerdictRunNotSuccessful:
		return "run_not_successful"
	case VerdictTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// JobFailure records a required job whose conclusion was not success.
type JobFailure struct {
	Name       string
	Conclusion string
}

// Verdict is the single classified result of one verification.
type Verdict struct {
	Kind    VerdictKind
	Missing []string     // required-set order, set when Kind == VerdictMissingJobs
	Failed  []JobFailure // required-set order, set when Kind == VerdictFailedJobs
}

// Outcome carries everything the reporter needs: the verdict (or the error
// that prevented one) plus the last snapshot and job list observed.
type Outcome struct {
	RunID   int64
	Run     *provider.RunSnapshot // nil if resolution or the first fetch failed
	Jobs    []provider.Job
	Verdict *Verdict // nil when Err is set
	Elapsed time.Duration
	Err     error
}

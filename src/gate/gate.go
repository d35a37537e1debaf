package gate

import (
	"context"
	"time"

	"cigate/src/provider"
)

// State names a phase of one verification. Transitions are strictly
// forward: Resolving -> Polling -> Evaluating -> Done, with any failure
// jumping straight to Done.
type State int

const (
	StateResolving State = iota
	StatePolling
	StateEvaluating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StatePolling:
		return "polling"
	case StateEvaluating:
		return "evaluating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Runner drives one verification end to end. State is linear per
// invocation; the only values threaded between phases are the resolved run
// id and the snapshot captured when the run completed.
type Runner struct {
	provider provider.Provider
	repo     provider.RepoRef
	selector Selector
	required []string
	timeout  time.Duration
	interval time.Duration
	clock    Clock
	observer Observer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerClock sets a custom clock for the runner and its poller.
func WithRunnerClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// WithRunnerObserver sets the sink for poll observations.
func WithRunnerObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observer = o }
}

// NewRunner creates a Runner with the given options.
func NewRunner(prov provider.Provider, repo provider.RepoRef, sel Selector, required []string, timeout, interval time.Duration, opts ...RunnerOption) *Runner {
	r := &Runner{
		provider: prov,
		repo:     repo,
		selector: sel,
		required: required,
		timeout:  timeout,
		interval: interval,
		clock:    SystemClock(),
		observer: NopObserver(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes one verification and returns its outcome. The resolved run
// id is never re-resolved; the evaluator only ever sees the snapshot and
// job list obtained after the run completed.
func (r *Runner) Run(ctx context.Context) Outcome {
	start := r.clock.Now()
	out := Outcome{}

	state := StateResolving
	for state != StateDone {
		switch state {
		case StateResolving:
			runID, err := ResolveRun(ctx, r.provider, r.repo, r.selector)
			if err != nil {
				out.Err = err
				state = StateDone
				continue
			}
			out.RunID = runID
			state = StatePolling

		case StatePolling:
			poller := NewPoller(r.provider, r.repo, r.timeout, r.interval,
				WithClock(r.clock), WithObserver(r.observer))

			snap, timedOut, err := poller.AwaitCompletion(ctx, out.RunID)
			if err != nil {
				out.Err = err
				state = StateDone
				continue
			}
			if timedOut {
				out.Verdict = &Verdict{Kind: VerdictTimedOut}
				state = StateDone
				continue
			}
			out.Run = snap
			state = StateEvaluating

		case StateEvaluating:
			jobs, err := r.provider.FetchJobs(ctx, r.repo, out.RunID)
			if err != nil {
				out.Err = err
				state = StateDone
				continue
			}
			out.Jobs = jobs
			verdict := Evaluate(jobs, r.required, out.Run.Conclusion)
			out.Verdict = &verdict
			state = StateDone
		}
	}

	out.Elapsed = r.clock.Now().Sub(start)
	return out
}

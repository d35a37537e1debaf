package gate

import (
	"context"
	"time"

	"cigate/src/provider"
)

// Poller repeatedly fetches a run's snapshot until the run completes or the
// timeout elapses. A fixed interval is used deliberately: runs are long-lived
// relative to the interval, so backoff would add complexity without saving
// meaningful request volume. Transport failures are not retried; they abort
// the invocation.
type Poller struct {
	provider provider.Provider
	repo     provider.RepoRef
	timeout  time.Duration
	interval time.Duration
	clock    Clock
	observer Observer
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithClock sets a custom clock (useful for testing).
func WithClock(c Clock) PollerOption {
	return func(p *Poller) { p.clock = c }
}

// WithObserver sets the sink for non-terminal poll observations.
func WithObserver(o Observer) PollerOption {
	return func(p *Poller) { p.observer = o }
}

// NewPoller creates a Poller with the given options.
func NewPoller(prov provider.Provider, repo provider.RepoRef, timeout, interval time.Duration, opts ...PollerOption) *Poller {
	p := &Poller{
		provider: prov,
		repo:     repo,
		timeout:  timeout,
		interval: interval,
		clock:    SystemClock(),
		observer: NopObserver(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// AwaitCompletion polls the run until it reaches the completed status or the
// timeout elapses. timedOut is true if the deadline passed first; this is a
// legitimate terminal result, not an error. The timeout is checked only at
// the top of each iteration, so an expired deadline never triggers another
// fetch and never preempts an in-flight fetch or sleep.
func (p *Poller) AwaitCompletion(ctx context.Context, runID int64) (snap *provider.RunSnapshot, timedOut bool, err error) {
	start := p.clock.Now()

	for {
		if p.clock.Now().Sub(start) > p.timeout {
			return nil, true, nil
		}

		snap, err := p.provider.FetchRun(ctx, p.repo, runID)
		if err != nil {
			return nil, false, err
		}

		if snap.Completed() {
			return snap, false, nil
		}

		p.observer.PollObserved(Progress{
			RunID:      runID,
			Status:     snap.Status,
			Conclusion: snap.Conclusion,
			Elapsed:    p.clock.Now().Sub(start),
		})
		p.clock.Sleep(p.interval)
	}
}

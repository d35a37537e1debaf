package gate

import (
	"context"
	"time"

	"cigate/src/provider"
)

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// fakeProvider serves canned responses and counts fetches.
type fakeProvider struct {
	latest      *provider.RunSnapshot
	latestErr   error
	snapshots   []*provider.RunSnapshot // consumed in order; last repeats
	fetchErr    error
	jobs        []provider.Job
	jobsErr     error
	fetchCalls  int
	latestCalls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) LatestRun(ctx context.Context, repo provider.RepoRef, branch string) (*provider.RunSnapshot, error) {
	f.latestCalls++
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeProvider) FetchRun(ctx context.Context, repo provider.RepoRef, runID int64) (*provider.RunSnapshot, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	idx := f.fetchCalls - 1
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	}
	return f.snapshots[idx], nil
}

func (f *fakeProvider) FetchJobs(ctx context.Context, repo provider.RepoRef, runID int64) ([]provider.Job, error) {
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	return f.jobs, nil
}

func inProgress(id int64) *provider.RunSnapshot {
	return &provider.RunSnapshot{ID: id, Status: provider.StatusInProgress}
}

func completed(id int64, conclusion string) *provider.RunSnapshot {
	return &provider.RunSnapshot{
		ID:         id,
		Status:     provider.StatusCompleted,
		Conclusion: conclusion,
		HeadSHA:    "0123456789abcdef",
		URL:        "https://github.com/o/r/actions/runs/42",
	}
}

func job(name, conclusion string) provider.Job {
	return provider.Job{Name: name, Status: provider.StatusCompleted, Conclusion: conclusion}
}

var testRepo = provider.RepoRef{Owner: "o", Repo: "r"}

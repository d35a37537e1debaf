package provider

import "time"

// Run/job lifecycle statuses as reported by CI providers.
// Only StatusCompleted is terminal.
const (
	StatusQueued     = "queued"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Conclusions recorded once a run or job completes.
const (
	ConclusionSuccess   = "success"
	ConclusionFailure   = "failure"
	ConclusionCancelled = "cancelled"
	ConclusionSkipped   = "skipped"
	ConclusionTimedOut  = "timed_out"
)

// RepoRef identifies a repository on a CI provider.
type RepoRef struct {
	Owner string
	Repo  string
}

// String returns the "owner/repo" form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// RunSnapshot is a point-in-time observation of one workflow run.
// Produced fresh on every poll, never mutated.
type RunSnapshot struct {
	ID         int64
	Status     string
	Conclusion string // empty until Status == StatusCompleted
	HeadSHA    string
	URL        string
	CreatedAt  time.Time
}

// Completed reports whether the run has reached its terminal status.
func (s *RunSnapshot) Completed() bool {
	return s.Status == StatusCompleted
}

// ShortSHA returns the abbreviated head revision for display.
func (s *RunSnapshot) ShortSHA() string {
	if len(s.HeadSHA) > 7 {
		return s.HeadSHA[:7]
	}
	return s.HeadSHA
}

// Job is a single named unit of work within a run. Its conclusion is
// independent of the run-level conclusion.
type Job struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
}

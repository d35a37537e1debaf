package gate

import (
	"context"
	"errors"

	"cigate/src/provider"
)

var (
	ErrNoSelector       = errors.New("either a run id or a branch is required")
	ErrConflictSelector = errors.New("run id and branch are mutually exclusive")
)

// Selector names the run to verify: an explicit run id, or a branch whose
// most recent run is taken.
type Selector struct {
	RunID  int64
	Branch string
}

// Validate checks that exactly one selection mode is set.
func (s Selector) Validate() error {
	switch {
	case s.RunID == 0 && s.Branch == "":
		return ErrNoSelector
	case s.RunID != 0 && s.Branch != "":
		return ErrConflictSelector
	}
	return nil
}

// ResolveRun determines the run id to monitor. An explicit id is returned
// unchanged without any network call; a branch selector queries the provider
// for the latest run on that branch. The branch case fails with
// provider.ErrNoRuns when the branch has never run a workflow.
func ResolveRun(ctx context.Context, p provider.Provider, repo provider.RepoRef, sel Selector) (int64, error) {
	if err := sel.Validate(); err != nil {
		return 0, err
	}

	if sel.RunID != 0 {
		return sel.RunID, nil
	}

	snap, err := p.LatestRun(ctx, repo, sel.Branch)
	if err != nil {
		return 0, err
	}
	return snap.ID, nil
}

package provider

import (
	"context"
	"fmt"
)

// Provider defines the interface for CI/CD platform integrations
type Provider interface {
	// Name returns the provider name (e.g., "github")
	Name() string

	// LatestRun retrieves the most recent run for a branch.
	// Returns ErrNoRuns when the branch has no runs at all.
	LatestRun(ctx context.Context, repo RepoRef, branch string) (*RunSnapshot, error)

	// FetchRun retrieves a fresh snapshot of one run
	FetchRun(ctx context.Context, repo RepoRef, runID int64) (*RunSnapshot, error)

	// FetchJobs retrieves the full job list for a run
	FetchJobs(ctx context.Context, repo RepoRef, runID int64) ([]Job, error)
}

// Factory constructs a provider given an API token (may be empty for
// anonymous access).
type Factory func(token string) Provider

var registry = make(map[string]Factory)

// Register makes a provider factory available under the given name.
// Called from provider package init functions.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Get returns a provider instance by name.
func Get(name string, token string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown CI provider: %s", name)
	}
	return factory(token), nil
}

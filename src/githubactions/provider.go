package githubactions

import (
	"context"
	"fmt"

	"cigate/src/provider"
)

func init() {
	// Register the GitHub Actions provider factory
	provider.Register("github", func(token string) provider.Provider {
		return NewProvider(token)
	})
}

// Provider implements provider.Provider for GitHub Actions
type Provider struct {
	client *Client
}

// NewProvider creates a GitHub Actions provider with API token
func NewProvider(token string) *Provider {
	return &Provider{
		client: NewClient(token),
	}
}

// NewProviderWithClient creates a provider around an existing client
// (useful for tests that point the client at a local server).
func NewProviderWithClient(client *Client) *Provider {
	return &Provider{client: client}
}

// Name returns "github"
func (p *Provider) Name() string {
	return "github"
}

// LatestRun retrieves the most recent run for a branch
func (p *Provider) LatestRun(ctx context.Context, repo provider.RepoRef, branch string) (*provider.RunSnapshot, error) {
	runs, err := p.client.ListBranchRuns(ctx, repo.Owner, repo.Repo, branch, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w for branch %q", provider.ErrNoRuns, branch)
	}
	return snapshotFromRun(&runs[0]), nil
}

// FetchRun retrieves a fresh snapshot of one run
func (p *Provider) FetchRun(ctx context.Context, repo provider.RepoRef, runID int64) (*provider.RunSnapshot, error) {
	run, err := p.client.GetWorkflowRun(ctx, repo.Owner, repo.Repo, runID)
	if err != nil {
		return nil, err
	}
	return snapshotFromRun(run), nil
}

// FetchJobs retrieves the full job list for a run
func (p *Provider) FetchJobs(ctx context.Context, repo provider.RepoRef, runID int64) ([]provider.Job, error) {
	ghJobs, err := p.client.GetWorkflowJobs(ctx, repo.Owner, repo.Repo, runID)
	if err != nil {
		return nil, err
	}

	jobs := make([]provider.Job, 0, len(ghJobs))
	for _, j := range ghJobs {
		jobs = append(jobs, provider.Job{
			ID:         j.ID,
			Name:       j.Name,
			Status:     j.Status,
			Conclusion: j.Conclusion,
		})
	}
	return jobs, nil
}

func snapshotFromRun(run *WorkflowRun) *provider.RunSnapshot {
	return &provider.RunSnapshot{
		ID:         run.ID,
		Status:     run.Status,
		Conclusion: run.Conclusion,
		HeadSHA:    run.HeadSHA,
		URL:        run.HTMLURL,
		CreatedAt:  run.CreatedAt,
	}
}

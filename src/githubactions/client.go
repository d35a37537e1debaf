package githubactions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cigate/src/provider"
)

// Client is a GitHub Actions API client. An empty token makes
// unauthenticated requests, subject to the anonymous rate limit.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub Actions client
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// SetBaseURL overrides the API base URL (used in tests).
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "cigate")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// apiError maps HTTP status codes onto the provider error taxonomy.
func apiError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrRunNotFound, statusCode, string(body))
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrAuthFailed, statusCode, string(body))
	case http.StatusForbidden, http.StatusTooManyRequests:
		return fmt.Errorf("%w: GitHub API error %d: %s", provider.ErrRateLimited, statusCode, string(body))
	default:
		return fmt.Errorf("GitHub API error %d: %s", statusCode, string(body))
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetWorkflowRun fetches workflow run metadata
func (c *Client) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*WorkflowRun, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d", c.baseURL, owner, repo, runID)

	var run WorkflowRun
	if err := c.getJSON(ctx, url, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListBranchRuns fetches the most recent workflow runs for a branch,
// newest first.
func (c *Client) ListBranchRuns(ctx context.Context, owner, repo, branch string, perPage int) ([]WorkflowRun, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/actions/runs?branch=%s&per_page=%d",
		c.baseURL, owner, repo, url.QueryEscape(branch), perPage)

	var runsResp WorkflowRunsResponse
	if err := c.getJSON(ctx, reqURL, &runsResp); err != nil {
		return nil, err
	}
	return runsResp.WorkflowRuns, nil
}

// GetWorkflowJobs fetches jobs for a workflow run (handles pagination)
func (c *Client) GetWorkflowJobs(ctx context.Context, owner, repo string, runID int64) ([]WorkflowJob, error) {
	var allJobs []WorkflowJob
	page := 1
	perPage := 100 // GitHub's max per page

	for {
		url := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d/jobs?per_page=%d&page=%d",
			c.baseURL, owner, repo, runID, perPage, page)

		var jobsResp WorkflowJobsResponse
		if err := c.getJSON(ctx, url, &jobsResp); err != nil {
			return nil, err
		}

		allJobs = append(allJobs, jobsResp.Jobs...)

		// Check if we've fetched all jobs
		if len(allJobs) >= jobsResp.TotalCount || len(jobsResp.Jobs) < perPage {
			break
		}

		page++
	}

	return allJobs, nil
}

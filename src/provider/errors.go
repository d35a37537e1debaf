package provider

import (
	"errors"
	"fmt"
)

var (
	ErrNoRuns      = errors.New("no workflow runs found")
	ErrRunNotFound = errors.New("run not found")
	ErrAuthFailed  = errors.New("authentication failed")
	ErrRateLimited = errors.New("rate limited")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoRuns) {
		return &UserError{
			Message: "No workflow runs found for this branch",
			Hint:    "Check that the branch name is correct and at least one workflow has run on it.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRunNotFound) {
		return &UserError{
			Message: "Workflow run not found",
			Hint:    "Check that the run id is correct and you have access to the repository.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check that your API token is valid and has the correct permissions.\n  - GitHub: Set GITHUB_TOKEN or GH_TOKEN",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRateLimited) {
		return &UserError{
			Message: "Rate limited by the provider",
			Hint:    "Anonymous requests have a low rate limit. Set GITHUB_TOKEN to raise it.",
			Err:     err,
		}
	}

	return err
}

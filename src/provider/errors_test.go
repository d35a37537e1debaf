package provider

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *UserError
		want    []string
		notWant []string
	}{
		{
			name: "message only",
			err:  &UserError{Message: "something broke"},
			want: []string{"something broke"},
			notWant: []string{"Hint:", "Details:"},
		},
		{
			name: "message with hint",
			err:  &UserError{Message: "no runs", Hint: "check the branch"},
			want: []string{"no runs", "Hint: check the branch"},
		},
		{
			name: "message with wrapped error",
			err:  &UserError{Message: "auth failed", Err: errors.New("401")},
			want: []string{"auth failed", "Details: 401"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Error() = %q, missing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("Error() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestUserError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &UserError{Message: "outer", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is() should find the wrapped error")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint bool
		sentinel error
	}{
		{"nil error", nil, false, nil},
		{"no runs", fmt.Errorf("branch 'main': %w", ErrNoRuns), true, ErrNoRuns},
		{"run not found", ErrRunNotFound, true, ErrRunNotFound},
		{"auth failed", ErrAuthFailed, true, ErrAuthFailed},
		{"rate limited", ErrRateLimited, true, ErrRateLimited},
		{"unrelated error passes through", errors.New("boom"), false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("WrapError(nil) = %v, want nil", got)
				}
				return
			}
			if tt.wantHint {
				var ue *UserError
				if !errors.As(got, &ue) {
					t.Fatalf("WrapError() = %T, want *UserError", got)
				}
				if ue.Hint == "" {
					t.Error("UserError.Hint is empty")
				}
				if !errors.Is(got, tt.sentinel) {
					t.Error("wrapped error should still match its sentinel")
				}
			} else if got != tt.err {
				t.Errorf("WrapError() = %v, want original error", got)
			}
		})
	}
}

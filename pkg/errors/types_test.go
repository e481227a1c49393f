package errors

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestGitHubError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GitHubError
		expected string
	}{
		{
			name: "with status code",
			err: &GitHubError{
				Operation:  "CreatePR",
				StatusCode: 422,
				Message:    "a pull request already exists",
			},
			expected: "github CreatePR failed (HTTP 422): a pull request already exists",
		},
		{
			name: "without status code",
			err: &GitHubError{
				Operation: "RequestReviewers",
				Message:   "network unreachable",
			},
			expected: "github RequestReviewers failed: network unreachable",
		},
		{
			name: "empty message",
			err: &GitHubError{
				Operation: "CreatePR",
			},
			expected: "github CreatePR failed: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestGitError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GitError
		expected string
	}{
		{
			name:     "with operation",
			err:      &GitError{Operation: "Fetch", Message: "remote hung up"},
			expected: "git Fetch failed: remote hung up",
		},
		{
			name:     "without operation",
			err:      &GitError{Message: "not a repository"},
			expected: "git error: not a repository",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestWorkflowError_Error(t *testing.T) {
	err := NewWorkflowError("sync", "branches have diverged")
	want := "workflow step sync failed: branches have diverged"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &WorkflowError{Message: "something went wrong"}
	want = "workflow error: something went wrong"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying cause")

	ghErr := NewGitHubErrorWithCause("CreatePR", "request failed", cause)
	if !errors.Is(ghErr, cause) {
		t.Error("GitHubError should unwrap to its cause")
	}

	gitErr := NewGitErrorWithCause("Push", "push rejected", cause)
	if !errors.Is(gitErr, cause) {
		t.Error("GitError should unwrap to its cause")
	}

	wfErr := NewWorkflowErrorWithCause("submit", "submission failed", ghErr)
	var inner *GitHubError
	if !errors.As(wfErr, &inner) {
		t.Error("WorkflowError should expose the wrapped GitHubError via As")
	}
}

func TestNewGitHubErrorWithStatus_Retryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{401, false},
		{404, false},
		{408, true},
		{422, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, tt := range tests {
		err := NewGitHubErrorWithStatus("CreatePR", tt.status, "boom")
		if err.Retryable != tt.retryable {
			t.Errorf("status %d: Retryable = %v, want %v", tt.status, err.Retryable, tt.retryable)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("status %d: IsRetryable() = %v, want %v", tt.status, IsRetryable(err), tt.retryable)
		}
	}
}

func TestIsRetryable_NilAndPlain(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) should be false")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestTypePredicates(t *testing.T) {
	cfgErr := NewConfigError("github.token", "missing")
	if !IsConfigError(cfgErr) {
		t.Error("IsConfigError should match ConfigError")
	}
	if IsGitHubError(cfgErr) {
		t.Error("IsGitHubError should not match ConfigError")
	}

	wrapped := Wrap(NewGitError("Diff", "bad revision"), "while syncing")
	if !IsGitError(wrapped) {
		t.Error("IsGitError should see through wrapping")
	}

	if !IsWorkflowError(NewWorkflowError("edit", "empty description")) {
		t.Error("IsWorkflowError should match WorkflowError")
	}
}

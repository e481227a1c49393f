package github

import (
	"context"
	"os"

	"github.com/jeiman/git-workflow/pkg/config"
	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

// Client defines the GitHub operations the pull-request workflow needs.
type Client interface {
	// IsAuthenticated checks if the client is authenticated with GitHub.
	IsAuthenticated() bool

	// CreatePR creates a new pull request.
	CreatePR(ctx context.Context, repo Repo, opts CreatePROptions) (*PRInfo, error)

	// RequestReviewers asks the given users to review an existing pull
	// request. Callers treat a failure here as non-fatal: the pull request
	// already exists.
	RequestReviewers(ctx context.Context, repo Repo, number int, reviewers []string) error
}

// NewClient creates a GitHub client based on the provided configuration.
//
// Token resolution order:
//  1. GITHUB_TOKEN environment variable
//  2. GIT_WORKFLOW_GITHUB_TOKEN environment variable
//  3. Token from config file (github.token)
//  4. Stored username/token pair from `git-workflow login` (basic auth)
func NewClient(cfg *config.GitHubConfig, store CredentialStore, verbose bool) (Client, error) {
	if cfg == nil {
		return nil, wferrors.NewGitHubError("NewClient", "github config is required")
	}

	var opts []APIClientOption
	if cfg.APIURL != "" {
		opts = append(opts, WithBaseURL(cfg.APIURL))
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GIT_WORKFLOW_GITHUB_TOKEN")
	}
	if token == "" {
		token = cfg.Token
	}
	if token != "" {
		return NewAPIClient(token, verbose, opts...)
	}

	creds, err := store.Get()
	if err != nil {
		if wferrors.Is(err, ErrNoCredentials) {
			return nil, wferrors.NewGitHubError("NewClient",
				"no credentials found. Run 'git-workflow login' or set GITHUB_TOKEN")
		}
		return nil, wferrors.NewGitHubErrorWithCause("NewClient", "could not read stored credentials", err)
	}

	return NewBasicAuthClient(creds.Username, creds.Token, verbose, opts...)
}

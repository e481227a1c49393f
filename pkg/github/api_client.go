package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

// APIClient implements Client using the GitHub REST API.
type APIClient struct {
	client  *gh.Client
	verbose bool
	logger  *slog.Logger
	baseURL string
}

// Compile-time check that APIClient implements Client.
var _ Client = (*APIClient)(nil)

// APIClientOption is a functional option for configuring APIClient.
type APIClientOption func(*APIClient)

// WithAPILogger sets a custom logger for the API client.
func WithAPILogger(logger *slog.Logger) APIClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// WithBaseURL points the client at a non-default API endpoint (GitHub
// Enterprise, or a test server).
func WithBaseURL(baseURL string) APIClientOption {
	return func(c *APIClient) {
		c.baseURL = baseURL
	}
}

// NewAPIClient creates a GitHub API client authenticated with a personal
// access token.
func NewAPIClient(token string, verbose bool, opts ...APIClientOption) (*APIClient, error) {
	if token == "" {
		return nil, wferrors.NewGitHubError("NewAPIClient", "token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return newAPIClient(tc, verbose, opts)
}

// NewBasicAuthClient creates a GitHub API client authenticated with the
// stored username/token pair.
func NewBasicAuthClient(username, token string, verbose bool, opts ...APIClientOption) (*APIClient, error) {
	if username == "" || token == "" {
		return nil, wferrors.NewGitHubError("NewBasicAuthClient", "username and token are required")
	}

	transport := &gh.BasicAuthTransport{Username: username, Password: token}
	return newAPIClient(transport.Client(), verbose, opts)
}

func newAPIClient(httpClient *http.Client, verbose bool, opts []APIClientOption) (*APIClient, error) {
	client := &APIClient{
		client:  gh.NewClient(httpClient),
		verbose: verbose,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL != "" {
		u, err := url.Parse(client.baseURL)
		if err != nil {
			return nil, wferrors.NewGitHubErrorWithCause("NewAPIClient", "invalid API base URL", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.client.BaseURL = u
	}

	return client, nil
}

// IsAuthenticated checks if the client is authenticated with GitHub.
func (c *APIClient) IsAuthenticated() bool {
	ctx := context.Background()
	_, _, err := c.client.Users.Get(ctx, "")
	return err == nil
}

// CreatePR creates a new pull request.
func (c *APIClient) CreatePR(ctx context.Context, repo Repo, opts CreatePROptions) (*PRInfo, error) {
	if opts.Title == "" {
		return nil, wferrors.NewGitHubError("CreatePR", "title is required")
	}
	if opts.HeadBranch == "" || opts.BaseBranch == "" {
		return nil, wferrors.NewGitHubError("CreatePR", "head and base branches are required")
	}

	c.logDebug("creating PR", "repo", repo.String(), "head", opts.HeadBranch, "base", opts.BaseBranch)

	newPR := &gh.NewPullRequest{
		Title: gh.Ptr(opts.Title),
		Body:  gh.Ptr(opts.Body),
		Head:  gh.Ptr(opts.HeadBranch),
		Base:  gh.Ptr(opts.BaseBranch),
	}

	pr, resp, err := c.client.PullRequests.Create(ctx, repo.Owner, repo.Name, newPR)
	if err != nil {
		return nil, toGitHubError("CreatePR", resp, err)
	}

	return prInfoFromGitHub(pr), nil
}

// RequestReviewers asks the given users to review an existing pull request.
func (c *APIClient) RequestReviewers(ctx context.Context, repo Repo, number int, reviewers []string) error {
	if len(reviewers) == 0 {
		return nil
	}

	c.logDebug("requesting reviewers", "repo", repo.String(), "number", number, "reviewers", strings.Join(reviewers, ","))

	_, resp, err := c.client.PullRequests.RequestReviewers(ctx, repo.Owner, repo.Name, number, gh.ReviewersRequest{
		Reviewers: reviewers,
	})
	if err != nil {
		return toGitHubError("RequestReviewers", resp, err)
	}
	return nil
}

func (c *APIClient) logDebug(msg string, args ...any) {
	if c.verbose {
		c.logger.Debug(msg, args...)
	}
}

// Helper functions

func prInfoFromGitHub(pr *gh.PullRequest) *PRInfo {
	info := &PRInfo{
		ID:     pr.GetID(),
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
	}

	if pr.Head != nil {
		info.HeadBranch = pr.GetHead().GetRef()
	}
	if pr.Base != nil {
		info.BaseBranch = pr.GetBase().GetRef()
	}

	return info
}

// toGitHubError converts a go-github failure into a typed error. When the
// response carries a structured error list, its messages form the user
// message; otherwise a generic status-code message is used.
func toGitHubError(operation string, resp *gh.Response, err error) error {
	var errResp *gh.ErrorResponse
	if wferrors.As(err, &errResp) {
		status := 0
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}

		var messages []string
		for _, e := range errResp.Errors {
			if e.Message != "" {
				messages = append(messages, e.Message)
			}
		}
		if len(messages) > 0 {
			return wferrors.NewGitHubErrorWithStatus(operation, status, strings.Join(messages, "; "))
		}
		if errResp.Message != "" {
			return wferrors.NewGitHubErrorWithStatus(operation, status, errResp.Message)
		}
		return wferrors.NewGitHubErrorWithStatus(operation, status, "request rejected")
	}

	if resp != nil && resp.StatusCode > 0 {
		return wferrors.NewGitHubErrorWithStatus(operation, resp.StatusCode, err.Error())
	}
	return wferrors.NewGitHubErrorWithCause(operation, "API request failed", err)
}

// Package github submits pull requests through the GitHub REST API.
//
// This package implements the Client interface used by the pull-request
// workflow: creating the pull request and requesting reviewers for it.
// Authentication uses either a personal access token or the stored
// username/token pair from `git-workflow login`.
package github

import (
	"regexp"
	"strings"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

// String returns the owner/name path used in API URLs.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// PRInfo represents the created pull request.
type PRInfo struct {
	ID         int64
	Number     int
	Title      string
	URL        string
	HeadBranch string
	BaseBranch string
}

// CreatePROptions holds the pull request payload.
type CreatePROptions struct {
	Title      string // PR title (required)
	Body       string // PR description
	HeadBranch string // Source branch
	BaseBranch string // Target branch
}

// URL parsing patterns for GitHub remote URLs.
var (
	// SSH format: git@github.com:owner/repo.git or git@github.com:owner/repo
	sshURLRegex = regexp.MustCompile(`^git@[^:]+:([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?$`)

	// HTTPS format: https://github.com/owner/repo or https://github.com/owner/repo.git
	httpsURLRegex = regexp.MustCompile(`^https?://[^/]+/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?$`)
)

// ParseRemoteURL extracts the repository from a git remote URL in SSH or
// HTTPS form.
func ParseRemoteURL(url string) (Repo, error) {
	url = strings.TrimSpace(url)

	if matches := sshURLRegex.FindStringSubmatch(url); len(matches) == 3 {
		return Repo{Owner: matches[1], Name: matches[2]}, nil
	}
	if matches := httpsURLRegex.FindStringSubmatch(url); len(matches) == 3 {
		return Repo{Owner: matches[1], Name: matches[2]}, nil
	}

	return Repo{}, wferrors.NewGitHubError("ParseRemoteURL", "unrecognized remote URL format: "+url)
}

// Package template selects and renders the pull request description
// template.
//
// Substitution is literal string interpolation of named placeholders; this
// is deliberately not a templating language.
package template

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed default.md
var defaultTemplate string

// Placeholder tokens recognized in templates.
const (
	ReviewersPlaceholder = "{{reviewers}}"
	BranchPlaceholder    = "{{branch}}"
	ChangelogPlaceholder = "{{changelog}}"
)

// CommentPrefix marks description lines that are stripped before submission.
const CommentPrefix = "//"

// Header is prepended to the rendered description before the editor opens.
const Header = `// Describe the change below. Lines starting with '//' are
// comments and will be removed before the pull request is submitted.
// Saving an empty description aborts the submission.

`

// candidatePaths lists the template locations relative to the repository
// root, in resolution order.
var candidatePaths = []string{
	"pull_request_template.md",
	filepath.Join(".github", "pull_request_template.md"),
	filepath.Join("docs", "pull_request_template.md"),
}

// Select returns the template text for a repository. An explicit non-empty
// override path wins; otherwise the first existing candidate under root is
// used, falling back to the bundled default.
func Select(root, override string) (string, error) {
	if override != "" {
		data, err := os.ReadFile(override)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	for _, rel := range candidatePaths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err == nil {
			return string(data), nil
		}
	}

	return defaultTemplate, nil
}

// Render substitutes the reviewer, branch and changelog placeholders.
// Reviewers render as "@a, @b", or "tbd" when the list is empty.
func Render(tmpl, branch, changelog string, reviewers []string) string {
	rendered := strings.ReplaceAll(tmpl, ReviewersPlaceholder, FormatReviewers(reviewers))
	rendered = strings.ReplaceAll(rendered, BranchPlaceholder, branch)
	rendered = strings.ReplaceAll(rendered, ChangelogPlaceholder, changelog)
	return rendered
}

// FormatReviewers joins reviewer handles as @-mentions, or "tbd" when none
// were given.
func FormatReviewers(reviewers []string) string {
	if len(reviewers) == 0 {
		return "tbd"
	}

	mentions := make([]string, len(reviewers))
	for i, r := range reviewers {
		mentions[i] = "@" + r
	}
	return strings.Join(mentions, ", ")
}

// StripComments removes every line whose trimmed form starts with the
// comment prefix, rejoins the rest and trims surrounding whitespace.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), CommentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	// Check for ConfigError
	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	// Check for GitHubError
	var ghErr *GitHubError
	if As(err, &ghErr) {
		return formatGitHubError(ghErr)
	}

	// Check for GitError
	var gitErr *GitError
	if As(err, &gitErr) {
		return formatGitError(gitErr)
	}

	// Check for WorkflowError
	var wfErr *WorkflowError
	if As(err, &wfErr) {
		return formatWorkflowError(wfErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/git-workflow/config.toml\n")
	b.WriteString("  • Run 'git-workflow login' to reconfigure credentials\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatGitError formats a GitError with actionable guidance.
func formatGitError(err *GitError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Git error during %s: %s\n", err.Operation, err.Message)

	b.WriteString("\nTo troubleshoot:\n")
	b.WriteString("  • Make sure you are inside a git repository\n")
	b.WriteString("  • Check that the 'origin' remote is configured and reachable\n")
	b.WriteString("  • Run with --verbose to see the underlying git invocation\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatGitHubError formats a GitHubError with actionable guidance based on status code.
func formatGitHubError(err *GitHubError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "GitHub error during %s: %s\n", err.Operation, err.Message)

	switch err.StatusCode {
	case 401:
		b.WriteString("\nAuthentication failed. To fix this:\n")
		b.WriteString("  • Run 'git-workflow login' to store your username and token\n")
		b.WriteString("  • Or set the GITHUB_TOKEN environment variable\n")
		b.WriteString("  • Ensure your token has the required scopes (repo)\n")

	case 403:
		b.WriteString("\nPermission denied. To fix this:\n")
		b.WriteString("  • Ensure you have write access to this repository\n")
		b.WriteString("  • Check that your token has the 'repo' scope\n")
		b.WriteString("  • If using SSO, ensure the token is authorized for your organization\n")

	case 404:
		b.WriteString("\nResource not found. To fix this:\n")
		b.WriteString("  • Verify the repository name and owner are correct\n")
		b.WriteString("  • Ensure the branch exists on the remote\n")
		b.WriteString("  • Check that you have access to the repository\n")

	case 422:
		b.WriteString("\nValidation failed. To fix this:\n")
		b.WriteString("  • A pull request for this branch may already exist\n")
		b.WriteString("  • Ensure the head and base branches differ\n")
		b.WriteString("  • Review the error message for specific field issues\n")

	case 429:
		b.WriteString("\nRate limit exceeded. To fix this:\n")
		b.WriteString("  • Wait a few minutes before retrying\n")

	case 500, 502, 503, 504:
		b.WriteString("\nGitHub server error. To fix this:\n")
		b.WriteString("  • Wait a few moments and try again\n")
		b.WriteString("  • Check GitHub Status: https://www.githubstatus.com\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatWorkflowError formats a WorkflowError with actionable guidance.
func formatWorkflowError(err *WorkflowError) string {
	var b strings.Builder

	if err.Step != "" {
		fmt.Fprintf(&b, "Workflow error in '%s' step: %s\n", err.Step, err.Message)
	} else {
		fmt.Fprintf(&b, "Workflow error: %s\n", err.Message)
	}

	// Provide step-specific guidance
	switch err.Step {
	case "locate":
		b.WriteString("\nRepository checks failed. To fix this:\n")
		b.WriteString("  • Run git-workflow from inside a git working directory\n")
		b.WriteString("  • Commit or stash any uncommitted changes\n")
		b.WriteString("  • Ensure an 'origin' remote is configured\n")

	case "sync":
		b.WriteString("\nBranch synchronization failed. To fix this:\n")
		b.WriteString("  • Push or pull so the local and remote branches match\n")
		b.WriteString("  • git-workflow never merges or rebases on your behalf\n")

	case "changelog":
		b.WriteString("\nNo commits found for this branch. To fix this:\n")
		b.WriteString("  • Commit your work before opening a pull request\n")
		b.WriteString("  • Check that the base branch is detected correctly\n")

	case "edit":
		b.WriteString("\nDescription editing failed. To fix this:\n")
		b.WriteString("  • Leave at least one non-comment line in the description\n")
		b.WriteString("  • Check that your editor exits cleanly\n")

	case "submit":
		b.WriteString("\nSubmission failed. To fix this:\n")
		b.WriteString("  • Check your network connection and credentials\n")
		b.WriteString("  • Run with --verbose for more details\n")

	default:
		b.WriteString("\nTo troubleshoot:\n")
		b.WriteString("  • Run with --verbose for more details\n")
		b.WriteString("  • Check the error message for specific issues\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

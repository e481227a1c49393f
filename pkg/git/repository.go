// Package git wraps the git command line for the pull-request workflow.
//
// All operations shell out to the git binary through a CommandRunner so
// tests can substitute fakes. No git engine is embedded.
package git

import (
	"os"
	"path/filepath"
	"strings"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

// ErrNoRemoteRef indicates that the remote counterpart of a local branch
// does not exist.
var ErrNoRemoteRef = wferrors.New("remote branch does not exist")

// Repository is a handle to a local git working tree. It is resolved once
// at startup and treated as read-only afterwards.
type Repository struct {
	Root   string // top-level working tree path
	runner CommandRunner
}

// Open locates the repository enclosing dir by walking dir and its
// ancestors for a .git entry. It returns an error if none is found.
func Open(dir string, runner CommandRunner) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, wferrors.NewGitErrorWithCause("Open", "could not resolve working directory", err)
	}

	for d := abs; ; {
		gitPath := filepath.Join(d, ".git")
		// .git is a file for worktrees and submodules
		if info, statErr := os.Stat(gitPath); statErr == nil && (info.IsDir() || info.Mode().IsRegular()) {
			return &Repository{Root: d, runner: runner}, nil
		}

		parent := filepath.Dir(d)
		if parent == d {
			return nil, wferrors.NewGitError("Open", "not a git repository (or any of the parent directories)")
		}
		d = parent
	}
}

// NewRepository wraps an already-known repository root. Intended for tests.
func NewRepository(root string, runner CommandRunner) *Repository {
	return &Repository{Root: root, runner: runner}
}

// CurrentBranch returns the active branch name.
func (r *Repository) CurrentBranch() (string, error) {
	out, err := r.runner.Output(r.Root, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("CurrentBranch", "could not resolve HEAD", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HeadSubject returns the subject line of the head commit.
func (r *Repository) HeadSubject() (string, error) {
	out, err := r.runner.Output(r.Root, "git", "log", "-1", "--format=%s")
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("HeadSubject", "could not read last commit message", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsDirty reports whether the working tree has uncommitted changes.
func (r *Repository) IsDirty() (bool, error) {
	out, err := r.runner.Output(r.Root, "git", "status", "--porcelain")
	if err != nil {
		return false, wferrors.NewGitErrorWithCause("IsDirty", "could not read working tree status", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// HasRemote reports whether a remote with the given name is configured.
func (r *Repository) HasRemote(name string) (bool, error) {
	out, err := r.runner.Output(r.Root, "git", "remote")
	if err != nil {
		return false, wferrors.NewGitErrorWithCause("HasRemote", "could not list remotes", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// RemoteURL returns the URL of the given remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	out, err := r.runner.Output(r.Root, "git", "remote", "get-url", name)
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("RemoteURL", "could not read URL for remote "+name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Fetch updates the given remote and prunes refs deleted on the remote side.
func (r *Repository) Fetch(remote string) error {
	if err := r.runner.Run(r.Root, "git", "fetch", "--prune", remote); err != nil {
		return wferrors.NewGitErrorWithCause("Fetch", "fetch from "+remote+" failed", err)
	}
	return nil
}

// DiffRemote diffs the local branch against its remote counterpart and
// returns the diff text (empty when the branches match). It returns
// ErrNoRemoteRef when the remote branch does not exist.
//
// The remote branch is assumed to share the local branch name. That
// assumption breaks after a branch rename; known limitation.
func (r *Repository) DiffRemote(remote, branch string) (string, error) {
	ref := remote + "/" + branch
	if err := r.runner.Run(r.Root, "git", "show-ref", "--verify", "--quiet", "refs/remotes/"+ref); err != nil {
		return "", ErrNoRemoteRef
	}

	out, err := r.runner.Output(r.Root, "git", "diff", branch, ref)
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("DiffRemote", "diff against "+ref+" failed", err)
	}
	return string(out), nil
}

// Push pushes the branch to the remote, setting the upstream.
func (r *Repository) Push(remote, branch string) error {
	if err := r.runner.Run(r.Root, "git", "push", "-u", remote, branch); err != nil {
		return wferrors.NewGitErrorWithCause("Push", "push of "+branch+" to "+remote+" failed", err)
	}
	return nil
}

// Changelog returns the one-line-per-commit log for base..head, following
// only first parents and skipping merge commits. Each entry is formatted
// as "hash (date)\nsubject\nbody" with abbreviated hashes and ISO dates.
// An empty commit range yields an empty string.
func (r *Repository) Changelog(base, head string) (string, error) {
	out, err := r.runner.Output(r.Root, "git", "log",
		"--first-parent", "--no-merges",
		"--date=short", "--format=%h (%ad)%n%s%n%b",
		base+".."+head)
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("Changelog", "log for "+base+".."+head+" failed", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// BaseBranch resolves the branch pull requests should target. A non-empty
// override wins; otherwise the remote HEAD symbolic ref is consulted, then
// the common default branch names are probed.
func (r *Repository) BaseBranch(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	out, err := r.runner.Output(r.Root, "git", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		ref := strings.TrimSpace(string(out))
		if branch, ok := strings.CutPrefix(ref, "refs/remotes/origin/"); ok && branch != "" {
			return branch, nil
		}
	}

	for _, branch := range []string{"main", "master"} {
		if r.runner.Run(r.Root, "git", "show-ref", "--verify", "--quiet", "refs/remotes/origin/"+branch) == nil {
			return branch, nil
		}
	}

	return "", wferrors.NewGitError("BaseBranch", "could not determine the base branch; set git.base_branch in the config")
}

// ConfigSection reads a git config section as key/value pairs. Keys are
// returned without the section prefix. A missing section yields an empty
// map, not an error.
func (r *Repository) ConfigSection(section string) (map[string]string, error) {
	out, err := r.runner.Output(r.Root, "git", "config", "--get-regexp", "^"+section+`\.`)
	if err != nil {
		// git config exits 1 when nothing matches
		return map[string]string{}, nil
	}

	values := make(map[string]string)
	prefix := section + "."
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		values[strings.TrimPrefix(key, prefix)] = value
	}
	return values, nil
}

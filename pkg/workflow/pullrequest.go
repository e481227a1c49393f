// Package workflow drives the pull-request creation sequence.
//
// The workflow is linear and single-threaded: verify the local branch is
// in sync with its remote counterpart, build the changelog, gather title
// and reviewers, render and edit the description, then submit the pull
// request. Every collaborator is injected so the whole sequence runs
// against fakes in tests.
package workflow

import (
	"context"
	"fmt"
	"io"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
	"github.com/jeiman/git-workflow/pkg/git"
	"github.com/jeiman/git-workflow/pkg/github"
	"github.com/jeiman/git-workflow/pkg/reviewers"
	"github.com/jeiman/git-workflow/pkg/template"
	"github.com/jeiman/git-workflow/pkg/ui"
)

// Outcome describes how a workflow run ended without error.
type Outcome int

const (
	// OutcomeCreated means a pull request was submitted.
	OutcomeCreated Outcome = iota
	// OutcomeStopped means the run stopped cleanly before submission,
	// e.g. when the pushed branch is not yet visible on the remote.
	OutcomeStopped
)

// Result is the terminal state of a successful workflow run.
type Result struct {
	Outcome Outcome
	PR      *github.PRInfo
}

// Options carries the configuration the workflow consumes.
type Options struct {
	Remote       string // remote name, normally "origin"
	BaseBranch   string // base branch override; empty means auto-detect
	TemplatePath string // explicit template file; empty means resolution order
}

// EditFunc hands seed text to an editor and returns the edited result.
type EditFunc func(editor, seed string) (string, error)

// CopyFunc copies text to the clipboard, reporting whether it succeeded.
type CopyFunc func(text string) bool

// Deps are the workflow's injected collaborators.
type Deps struct {
	Repo     *git.Repository
	Client   github.Client
	Prompter *ui.Prompter
	Edit     EditFunc
	Copy     CopyFunc
	Out      io.Writer
}

// Run executes the pull-request workflow against an already-opened
// repository. It returns a Result on success; every fatal condition is
// returned as an error for the command layer to report.
func Run(ctx context.Context, opts Options, deps Deps) (*Result, error) {
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}

	branch, ghRepo, err := verifyEnvironment(deps.Repo, remote)
	if err != nil {
		return nil, err
	}

	stopped, err := syncWithRemote(deps, remote, branch)
	if err != nil {
		return nil, err
	}
	if stopped {
		return &Result{Outcome: OutcomeStopped}, nil
	}

	base, changelog, err := buildChangelog(deps.Repo, opts.BaseBranch, branch)
	if err != nil {
		return nil, err
	}

	// First contact with the API; the commit-range check above must stay
	// ahead of it. Failing here spares the user the editor session.
	if !deps.Client.IsAuthenticated() {
		return nil, wferrors.NewGitHubError("Auth",
			"not authenticated with GitHub. Run 'git-workflow login' or set GITHUB_TOKEN")
	}

	title, reviewerList, err := gatherInput(deps)
	if err != nil {
		return nil, err
	}

	body, err := composeDescription(deps, opts.TemplatePath, branch, changelog, reviewerList)
	if err != nil {
		return nil, err
	}

	pr, err := submit(ctx, deps, ghRepo, branch, base, title, body, reviewerList)
	if err != nil {
		return nil, err
	}

	return &Result{Outcome: OutcomeCreated, PR: pr}, nil
}

// verifyEnvironment checks the preconditions on the working tree and
// returns the current branch name and the GitHub repository behind the
// remote. Parsing the remote URL up front keeps a bad remote from
// surfacing only after the user has edited the description.
func verifyEnvironment(repo *git.Repository, remote string) (string, github.Repo, error) {
	dirty, err := repo.IsDirty()
	if err != nil {
		return "", github.Repo{}, err
	}
	if dirty {
		return "", github.Repo{}, wferrors.NewWorkflowError("locate",
			"the working tree has uncommitted changes; commit or stash them first")
	}

	hasRemote, err := repo.HasRemote(remote)
	if err != nil {
		return "", github.Repo{}, err
	}
	if !hasRemote {
		return "", github.Repo{}, wferrors.NewWorkflowError("locate",
			fmt.Sprintf("no %q remote is configured", remote))
	}

	url, err := repo.RemoteURL(remote)
	if err != nil {
		return "", github.Repo{}, err
	}
	ghRepo, err := github.ParseRemoteURL(url)
	if err != nil {
		return "", github.Repo{}, err
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		return "", github.Repo{}, err
	}
	return branch, ghRepo, nil
}

// syncWithRemote verifies the local branch matches its remote
// counterpart, offering to push when the remote branch does not exist
// yet. It reports stopped=true for the clean informational stop: the
// branch was pushed but the remote ref is still not visible.
func syncWithRemote(deps Deps, remote, branch string) (stopped bool, err error) {
	if err := deps.Repo.Fetch(remote); err != nil {
		return false, err
	}

	diff, err := deps.Repo.DiffRemote(remote, branch)
	if wferrors.Is(err, git.ErrNoRemoteRef) {
		push, perr := deps.Prompter.Confirm(
			fmt.Sprintf("Branch %s does not exist on %s. Push it now?", branch, remote), true)
		if perr != nil {
			return false, perr
		}
		if !push {
			fmt.Fprintln(deps.Out, "The branch must be on the remote before a pull request can be opened.")
			return false, wferrors.NewWorkflowError("sync", "branch not pushed")
		}

		if err := deps.Repo.Push(remote, branch); err != nil {
			return false, err
		}

		// One re-check after the push, not a polling loop.
		diff, err = deps.Repo.DiffRemote(remote, branch)
		if wferrors.Is(err, git.ErrNoRemoteRef) {
			fmt.Fprintf(deps.Out, "%s/%s is not visible yet. Wait a moment and rerun.\n", remote, branch)
			return true, nil
		}
	}
	if err != nil {
		return false, err
	}

	if diff != "" {
		fmt.Fprintf(deps.Out, "%s and %s/%s have diverged.\n", branch, remote, branch)
		show, perr := deps.Prompter.Confirm("Show the diff?", false)
		if perr != nil {
			return false, perr
		}
		if show {
			fmt.Fprintln(deps.Out, diff)
		}
		return false, wferrors.NewWorkflowError("sync",
			"local and remote branches differ; reconcile them and rerun")
	}

	return false, nil
}

// buildChangelog resolves the base branch and derives the commit log for
// the pull request range. An empty range is fatal; this runs before any
// network call.
func buildChangelog(repo *git.Repository, baseOverride, branch string) (base, changelog string, err error) {
	base, err = repo.BaseBranch(baseOverride)
	if err != nil {
		return "", "", err
	}

	changelog, err = repo.Changelog(base, branch)
	if err != nil {
		return "", "", err
	}
	if changelog == "" {
		return "", "", wferrors.NewWorkflowError("changelog",
			fmt.Sprintf("no changes to submit: %s..%s is empty", base, branch))
	}
	return base, changelog, nil
}

// gatherInput prompts for the title and the reviewer list. The title
// defaults to the head commit subject; reviewers default to none and are
// expanded through the gitworkflow.alias config section.
func gatherInput(deps Deps) (title string, reviewerList []string, err error) {
	subject, err := deps.Repo.HeadSubject()
	if err != nil {
		return "", nil, err
	}

	title, err = deps.Prompter.Ask("Pull request title", subject)
	if err != nil {
		return "", nil, err
	}

	raw, err := deps.Prompter.Ask("Reviewers (comma separated, empty for none)", "")
	if err != nil {
		return "", nil, err
	}

	aliases, err := deps.Repo.ConfigSection(reviewers.AliasSection)
	if err != nil {
		return "", nil, err
	}

	return title, reviewers.Resolve(reviewers.Split(raw), aliases), nil
}

// composeDescription renders the template and hands it to the editor.
// An empty description after comment stripping aborts the run.
func composeDescription(deps Deps, templatePath, branch, changelog string, reviewerList []string) (string, error) {
	tmpl, err := template.Select(deps.Repo.Root, templatePath)
	if err != nil {
		return "", wferrors.NewWorkflowErrorWithCause("render", "could not read the description template", err)
	}

	seed := template.Header + template.Render(tmpl, branch, changelog, reviewerList)

	edited, err := deps.Edit(deps.Repo.Editor(), seed)
	if err != nil {
		return "", err
	}

	body := template.StripComments(edited)
	if body == "" {
		return "", wferrors.NewWorkflowError("edit", "the description is empty; aborting")
	}
	return body, nil
}

// submit creates the pull request, requests reviewers when any were
// given, prints the URL and copies it to the clipboard best-effort.
func submit(ctx context.Context, deps Deps, repo github.Repo, branch, base, title, body string, reviewerList []string) (*github.PRInfo, error) {
	pr, err := deps.Client.CreatePR(ctx, repo, github.CreatePROptions{
		Title:      title,
		Body:       body,
		HeadBranch: branch,
		BaseBranch: base,
	})
	if err != nil {
		return nil, err
	}

	if len(reviewerList) > 0 {
		if err := deps.Client.RequestReviewers(ctx, repo, pr.Number, reviewerList); err != nil {
			// The pull request already exists; reviewer assignment is
			// best-effort from here.
			fmt.Fprintf(deps.Out, "warning: could not request reviewers: %v\n", err)
		}
	}

	fmt.Fprintf(deps.Out, "Pull request created: %s\n", pr.URL)
	if deps.Copy != nil {
		deps.Copy(pr.URL)
	}
	return pr, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeiman/git-workflow/pkg/clipboard"
	"github.com/jeiman/git-workflow/pkg/config"
	wferrors "github.com/jeiman/git-workflow/pkg/errors"
	"github.com/jeiman/git-workflow/pkg/git"
	"github.com/jeiman/git-workflow/pkg/github"
	"github.com/jeiman/git-workflow/pkg/ui"
	"github.com/jeiman/git-workflow/pkg/workflow"
)

// pullRequestCmd runs the whole pull-request workflow from the current branch.
var pullRequestCmd = &cobra.Command{
	Use:     "pull-request",
	Aliases: []string{"pr"},
	Short:   "Create a pull request from the current branch",
	Long: `Create a GitHub pull request from the current branch.

The branch must be pushed and in sync with its remote counterpart; if it
has not been pushed yet you are offered a push. The description is built
from the commit range against the base branch, rendered through the
repository's pull request template and opened in your editor. Lines
starting with '//' are stripped before submission.

Examples:
  git-workflow pull-request
  git-workflow pr --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return wferrors.NewConfigErrorWithCause("", "failed to load configuration", err)
		}

		deps, err := buildDeps(cfg)
		if err != nil {
			fmt.Println(wferrors.FormatUserError(err))
			return err
		}

		opts := workflow.Options{
			Remote:       cfg.Git.Remote,
			BaseBranch:   cfg.Git.BaseBranch,
			TemplatePath: cfg.Template.Path,
		}

		// Both terminal outcomes exit zero; the stopped case prints its
		// own explanation inside the workflow.
		if _, err := workflow.Run(cmd.Context(), opts, deps); err != nil {
			fmt.Println(wferrors.FormatUserError(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pullRequestCmd)
}

// buildDeps assembles the real collaborators for a workflow run.
func buildDeps(cfg *config.Config) (workflow.Deps, error) {
	runner := &git.RealCommandRunner{Verbose: verbose}

	cwd, err := os.Getwd()
	if err != nil {
		return workflow.Deps{}, wferrors.NewGitErrorWithCause("Open", "could not determine working directory", err)
	}

	repo, err := git.Open(cwd, runner)
	if err != nil {
		return workflow.Deps{}, err
	}

	client, err := github.NewClient(&cfg.GitHub, github.NewCredentialStore(), verbose)
	if err != nil {
		return workflow.Deps{}, err
	}

	return workflow.Deps{
		Repo:     repo,
		Client:   client,
		Prompter: ui.NewPrompter(os.Stdin, os.Stdout),
		Edit:     git.EditText,
		Copy:     clipboard.Copy,
		Out:      os.Stdout,
	}, nil
}

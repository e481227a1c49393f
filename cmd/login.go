package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
	"github.com/jeiman/git-workflow/pkg/github"
)

// loginCmd stores GitHub credentials for basic authentication.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store GitHub credentials",
	Long: `Store a GitHub username and personal access token for basic
authentication. The pair is kept in the OS keychain when one is
available, otherwise in a mode-0600 file under ~/.config/git-workflow/.

A GITHUB_TOKEN environment variable always takes precedence over
stored credentials.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(os.Stdin, os.Stdout, github.NewCredentialStore(), readTokenFromTerminal)
	},
}

// logoutCmd removes stored GitHub credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored GitHub credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout(os.Stdout, github.NewCredentialStore())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// runLogin prompts for a username and token and persists them. The token
// reader is injected because tests have no terminal to read from.
func runLogin(in io.Reader, out io.Writer, store github.CredentialStore, readToken func() (string, error)) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "GitHub username: ")
	username, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return wferrors.Wrap(err, "could not read username")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return wferrors.NewGitHubError("Login", "username must not be empty")
	}

	fmt.Fprint(out, "Personal access token: ")
	token, err := readToken()
	if err != nil {
		return wferrors.Wrap(err, "could not read token")
	}
	fmt.Fprintln(out)
	token = strings.TrimSpace(token)
	if token == "" {
		return wferrors.NewGitHubError("Login", "token must not be empty")
	}

	if err := store.Set(&github.Credentials{Username: username, Token: token}); err != nil {
		return err
	}

	fmt.Fprintf(out, "Credentials stored for %s.\n", username)
	return nil
}

// runLogout clears stored credentials.
func runLogout(out io.Writer, store github.CredentialStore) error {
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Stored credentials removed.")
	return nil
}

// readTokenFromTerminal reads the token without echo.
func readTokenFromTerminal() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package git

import (
	"os"
	"os/exec"
	"strings"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

// Editor resolves the editor the repository is configured to use.
// Resolution follows git itself: `git var GIT_EDITOR` honors core.editor,
// GIT_EDITOR and EDITOR; vi is the last resort.
func (r *Repository) Editor() string {
	out, err := r.runner.Output(r.Root, "git", "var", "GIT_EDITOR")
	if err == nil {
		if editor := strings.TrimSpace(string(out)); editor != "" {
			return editor
		}
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// EditText hands seed text to the given editor command and returns the
// edited result. The editor runs attached to the terminal and blocks the
// workflow until it exits.
func EditText(editor, seed string) (string, error) {
	f, err := os.CreateTemp("", "git-workflow-*.md")
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("EditText", "could not create temp file", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(seed); err != nil {
		f.Close()
		return "", wferrors.NewGitErrorWithCause("EditText", "could not write temp file", err)
	}
	if err := f.Close(); err != nil {
		return "", wferrors.NewGitErrorWithCause("EditText", "could not close temp file", err)
	}

	// The editor may be a command with arguments (e.g. "code --wait"),
	// so it runs through the shell the same way git runs it. The path is
	// handed over as a positional parameter, not spliced into the string.
	cmd := exec.Command("sh", "-c", editor+` "$1"`, "sh", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", wferrors.NewGitErrorWithCause("EditText", "editor "+editor+" did not exit cleanly", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", wferrors.NewGitErrorWithCause("EditText", "could not read edited file", err)
	}
	return string(edited), nil
}

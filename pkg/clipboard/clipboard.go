// Package clipboard copies text to the system clipboard on a best-effort
// basis.
package clipboard

import (
	"os/exec"
	"strings"
)

// candidates are the clipboard utilities probed in order.
var candidates = [][]string{
	{"pbcopy"},
	{"xclip", "-selection", "clipboard"},
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Copy pipes text to the first available clipboard utility. It reports
// whether a copy was attempted; absence of any utility and copy failures
// are swallowed.
func Copy(text string) bool {
	for _, candidate := range candidates {
		path, err := lookPath(candidate[0])
		if err != nil {
			continue
		}

		cmd := exec.Command(path, candidate[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return false
		}
		return true
	}
	return false
}

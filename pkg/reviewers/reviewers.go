// Package reviewers parses reviewer input and expands per-repository aliases.
//
// Aliases come from the gitworkflow.alias section of the repository config,
// e.g. `git config gitworkflow.alias.jd johndoe`.
package reviewers

import "strings"

// AliasSection is the git config section holding reviewer aliases.
const AliasSection = "gitworkflow.alias"

// Split breaks a free-text reviewer string into an ordered list of handles.
// Commas and any whitespace act as separators; empty input yields nil.
func Split(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Resolve replaces every handle present in the alias map with its mapped
// value. Order and duplicates are preserved; the output has the same
// length as the input.
func Resolve(handles []string, aliases map[string]string) []string {
	if len(handles) == 0 {
		return nil
	}

	resolved := make([]string, len(handles))
	for i, handle := range handles {
		if mapped, ok := aliases[handle]; ok {
			resolved[i] = mapped
		} else {
			resolved[i] = handle
		}
	}
	return resolved
}

package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "empty takes default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty takes default no", input: "\n", defaultYes: false, want: false},
		{name: "explicit yes", input: "y\n", defaultYes: false, want: true},
		{name: "explicit YES", input: "Yes\n", defaultYes: false, want: true},
		{name: "explicit no", input: "n\n", defaultYes: true, want: false},
		{name: "garbage is no", input: "maybe\n", defaultYes: true, want: false},
		{name: "eof takes default", input: "", defaultYes: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Push the branch?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Push the branch?")
		})
	}
}

func TestConfirm_HintShowsDefault(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\n"), &out)
	_, err := p.Confirm("q", true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Y/n]")

	out.Reset()
	p = NewPrompter(strings.NewReader("\n"), &out)
	_, err = p.Confirm("q", false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[y/N]")
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
	}{
		{name: "empty takes default", input: "\n", defaultValue: "Fix bug", want: "Fix bug"},
		{name: "input wins", input: "Custom title\n", defaultValue: "Fix bug", want: "Custom title"},
		{name: "empty with no default", input: "\n", defaultValue: "", want: ""},
		{name: "surrounding whitespace trimmed", input: "  alice, bob \n", defaultValue: "", want: "alice, bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Ask("Title", tt.defaultValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

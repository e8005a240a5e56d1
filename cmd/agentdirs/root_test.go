package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()

	want := []string{
		"list", "add", "rename", "sessions", "messages",
		"rm-session", "rm", "cursor", "watch",
	}
	got := make(map[string]bool)
	for _, c := range root.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "missing subcommand %s", name)
	}
}

func TestAddCmdRequiresName(t *testing.T) {
	cmd := newAddCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}

func TestPrintJSON(t *testing.T) {
	// Encoding must not HTML-escape paths or markup in summaries.
	require.NoError(t, printJSON(map[string]string{
		"summary": "<command-name>/clear</command-name>",
	}))
}

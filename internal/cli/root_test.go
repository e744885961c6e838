package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, out, "binview")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "validate")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := executeCommand("--format", "xml", "validate", "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

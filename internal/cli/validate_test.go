package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	path := writeScenarioFile(t, passingScenario)
	out, _, err := executeCommand("validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-smoke is valid (2 steps)")
}

func TestValidateCommand_JSON(t *testing.T) {
	path := writeScenarioFile(t, passingScenario)
	out, _, err := executeCommand("--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cli-smoke", data["name"])
	assert.Equal(t, true, data["valid"])
}

func TestValidateCommand_SchemaViolation(t *testing.T) {
	path := writeScenarioFile(t, `
name: broken
description: A bound kind outside the schema vocabulary.
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: sideways}
`)
	out, _, err := executeCommand("validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E003")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	out, _, err := executeCommand("validate", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalScenario = `
name: minimal
description: One full-range view over a tiny dense array.
source:
  dims: [x]
  shape: [2]
  unit: counts
  values: [1, 1]
  coords:
    x: {unit: m, edges: [0, 1, 2]}
steps:
  - bounds:
      x: {kind: full}
    resolutions: {x: 2}
`

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, KindFull, s.Steps[0].Bounds["x"].Kind)
	assert.Equal(t, 2, s.Steps[0].Resolutions["x"])
}

func TestLoadScenario_Testdata(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Name)
			assert.NotEmpty(t, s.Steps)
		})
	}
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: typo
description: An unknown top-level field must be rejected.
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: full}
assertion:
  - {type: view_count, count: 1}
`))
	require.Error(t, err)
}

func TestLoadScenario_BadBoundKind(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: bad-kind
description: Bound kinds outside the schema vocabulary are rejected.
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: teleport}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLoadScenario_MissingDescription(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: no-description
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: full}
`))
	require.Error(t, err)
}

func TestLoadScenario_InvertedWindow(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: window
description: A window with hi below lo is rejected by the loader.
source:
  dims: [x]
  shape: [4]
  values: [1, 1, 1, 1]
steps:
  - bounds:
      x: {kind: window, lo: 3, hi: 1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hi must not be below lo")
}

func TestLoadScenario_ValuesAndEventsExclusive(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: both-payloads
description: A source cannot be both dense and event-backed.
source:
  dims: [x]
  shape: [1]
  values: [1]
  events:
    - {coords: {x: 0.5}, weight: 1}
  coords:
    x: {unit: m, edges: [0, 1]}
steps:
  - bounds:
      x: {kind: full}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadScenario_EventSourceNeedsEdges(t *testing.T) {
	_, err := LoadScenario(writeScenario(t, `
name: no-edges
description: Event sources need an edge coordinate per dimension.
source:
  dims: [x]
  events:
    - {coords: {x: 0.5}, weight: 1}
steps:
  - bounds:
      x: {kind: full}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edge coords")
}

func TestValidateSchema_BadOutcome(t *testing.T) {
	err := ValidateSchema("inline.yaml", []byte(`
name: bad-outcome
description: Expect outcomes are a closed vocabulary.
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: full}
    expect: {outcome: maybe}
`))
	require.Error(t, err)
}

func TestValidateSchema_UppercaseNameRejected(t *testing.T) {
	err := ValidateSchema("inline.yaml", []byte(`
name: BadName
description: Scenario names are lowercase slugs.
source:
  dims: [x]
  shape: [1]
  values: [1]
steps:
  - bounds:
      x: {kind: full}
`))
	require.Error(t, err)
}

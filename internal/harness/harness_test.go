package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdataScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_ZoomRoundtrip(t *testing.T) {
	s := loadTestdataScenario(t, "zoom-roundtrip")
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 3, result.ViewCount())
	assert.Equal(t, 1, result.Stats.HomeHits)
	assert.Equal(t, 2, result.Stats.Recomputes)

	// Returning to the first request is served from the pinned home.
	last := result.Trace[len(result.Trace)-1]
	assert.Equal(t, "hit-home", last.Outcome)
	require.NotNil(t, last.Total)
	assert.InDelta(t, 8, *last.Total, 1e-9)
}

func TestRun_EventsHistogram(t *testing.T) {
	s := loadTestdataScenario(t, "events-histogram")
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.Stats.Hits)
	assert.Equal(t, 2, result.Stats.Recomputes)
}

func TestRun_ResetRecompute(t *testing.T) {
	s := loadTestdataScenario(t, "reset-recompute")
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, "view", result.Trace[0].Type)
	assert.Equal(t, "reset", result.Trace[1].Type)
	assert.Equal(t, "view", result.Trace[2].Type)
	assert.Equal(t, []int64{1, 2, 3}, []int64{
		result.Trace[0].Seq, result.Trace[1].Seq, result.Trace[2].Seq,
	})
	// Reset zeroes the counters, so only the post-reset view remains.
	assert.Equal(t, 1, result.Stats.Recomputes)
}

func TestRun_FailedExpectRecordsError(t *testing.T) {
	s := loadTestdataScenario(t, "zoom-roundtrip")
	wrong := 99.0
	s.Steps[0].Expect = &Expect{Total: &wrong}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "total")
}

func TestRun_FailedAssertionRecordsError(t *testing.T) {
	s := loadTestdataScenario(t, "events-histogram")
	s.Assertions = []Assertion{{Type: AssertViewCount, Count: 7}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "views, want 7")
}

func TestRun_UnknownDimensionFails(t *testing.T) {
	s := loadTestdataScenario(t, "zoom-roundtrip")
	s.Steps[0].Bounds["q"] = BoundSpec{Kind: KindFull}

	_, err := Run(s)
	require.Error(t, err)
}

func TestRun_MaskedSourceBuilds(t *testing.T) {
	s := &Scenario{
		Name:        "masked",
		Description: "masks declared in the source survive the build",
		Source: SourceSpec{
			Dims:   []string{"x"},
			Shape:  []int{4},
			Unit:   "counts",
			Values: []float64{1, 1, 1, 1},
			Coords: map[string]CoordSpec{
				"x": {Unit: "m", Edges: []float64{0, 1, 2, 3, 4}},
			},
			Masks: map[string]MaskSpec{
				"bad": {Dims: []string{"x"}, Values: []bool{false, true, false, false}},
			},
		},
		Steps: []Step{{
			Bounds:      map[string]BoundSpec{"x": {Kind: KindFull}},
			Resolutions: map[string]int{"x": 2},
		}},
	}
	require.NoError(t, validateScenario(s))

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, 1, result.ViewCount())
}

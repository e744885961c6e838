package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binview/binview/array"
	"github.com/binview/binview/unit"
)

// eventSource partitions ten weighted events into a 1x1 cell so the
// binned strategy has to re-derive everything from the event table.
func eventSource(t *testing.T) *array.Array {
	t.Helper()
	table := eventTable()
	binned, err := array.Bin(table,
		array.Binning{Dim: "y", Edges: []float64{0, 2}, Unit: unit.New("m")},
		array.Binning{Dim: "x", Edges: []float64{0, 3}, Unit: unit.New("m")},
	)
	require.NoError(t, err)
	return binned
}

func eventTable() *array.Table {
	events := []array.Event{
		{Coords: map[string]float64{"x": 0.2, "y": 0.5}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 0.7, "y": 0.5}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 1.2, "y": 0.1}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 1.8, "y": 0.9}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 2.4, "y": 0.3}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 0.4, "y": 1.5}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 1.1, "y": 1.1}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 1.9, "y": 1.9}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 2.2, "y": 1.4}, Weight: 1, Variance: 1},
		{Coords: map[string]float64{"x": 2.8, "y": 1.8}, Weight: 1, Variance: 1},
	}
	return &array.Table{
		Events: events,
		Units:  map[string]unit.Unit{"x": unit.New("m"), "y": unit.New("m")},
		Unit:   unit.Counts,
	}
}

func TestBinned_MatchesDirectHistogram(t *testing.T) {
	p, err := NewPolicy(eventSource(t))
	require.NoError(t, err)
	p.SetBound("x", FullRange())
	p.SetBound("y", FullRange())
	p.SetResolution("x", 3)
	p.SetResolution("y", 2)

	out, err := p.Data()
	require.NoError(t, err)
	require.Equal(t, []string{"y", "x"}, out.Dims())
	require.Equal(t, []int{2, 3}, out.Shape())

	// Reference: bin the same table by y, histogram along x.
	ref, err := array.Bin(eventTable(),
		array.Binning{Dim: "y", Edges: []float64{0, 1, 2}, Unit: unit.New("m")},
	)
	require.NoError(t, err)
	refDense, err := array.Histogram(ref, "x", []float64{0, 1, 2, 3})
	require.NoError(t, err)

	assert.InDeltaSlice(t, refDense.Values(), out.Values(), 1e-9)

	total := 0.0
	for _, v := range out.Values() {
		total += v
	}
	assert.InDelta(t, 10, total, 1e-9, "all ten events accounted for")
}

func TestBinned_ResultIsDense(t *testing.T) {
	p, err := NewPolicy(eventSource(t))
	require.NoError(t, err)
	p.SetBound("x", FullRange())
	p.SetResolution("x", 3)

	out, err := p.Data()
	require.NoError(t, err)
	assert.False(t, out.IsBinned(), "events are irreversibly aggregated")
}

func TestBinned_NoResamplePlansDensifies(t *testing.T) {
	p, err := NewPolicy(eventSource(t))
	require.NoError(t, err)

	out, err := p.Data()
	require.NoError(t, err)
	assert.False(t, out.IsBinned())
	assert.Equal(t, []int{1, 1}, out.Shape())
	assert.Equal(t, []float64{10}, out.Values())
}

func TestBinned_ValueRangeZoom(t *testing.T) {
	p, err := NewPolicy(eventSource(t))
	require.NoError(t, err)
	p.SetBound("x", ValueRange(
		unit.NewScalar(0, unit.New("m")),
		unit.NewScalar(1, unit.New("m"))))
	p.SetBound("y", FullRange())
	p.SetResolution("x", 2)
	p.SetResolution("y", 1)

	out, err := p.Data()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, out.Shape())
	// Events with x in [0, 1): x=0.2, 0.7, 0.4. Split at 0.5.
	assert.InDeltaSlice(t, []float64{2, 1}, out.Values(), 1e-9)
}

func TestBinned_ResampleAgainstCoarseBinIndex(t *testing.T) {
	// Events carry only an x coordinate. Resampling y must fall back to
	// the existing bin structure: each event inherits the center of the
	// cell it sits in.
	row := func(xs ...float64) []array.Event {
		evs := make([]array.Event, len(xs))
		for i, x := range xs {
			evs[i] = array.Event{Coords: map[string]float64{"x": x}, Weight: 1}
		}
		return evs
	}
	binned, err := array.NewBinned(
		[]string{"y", "x"}, []int{2, 1}, unit.Counts,
		[][]array.Event{row(0.2, 0.7, 1.2, 1.8), row(2.4, 0.4, 1.1, 1.9, 2.2, 2.8)},
		map[string]unit.Unit{"x": unit.New("m")},
	)
	require.NoError(t, err)
	yc, err := array.New([]string{"y"}, []int{3}, unit.New("m"), []float64{0, 1, 2})
	require.NoError(t, err)
	require.NoError(t, binned.SetCoord("y", yc))
	xc, err := array.New([]string{"x"}, []int{2}, unit.New("m"), []float64{0, 3})
	require.NoError(t, err)
	require.NoError(t, binned.SetCoord("x", xc))

	p, err := NewPolicy(binned)
	require.NoError(t, err)
	p.SetBound("y", FullRange())
	p.SetBound("x", FullRange())
	p.SetResolution("y", 2)
	p.SetResolution("x", 3)

	out, err := p.Data()
	require.NoError(t, err)
	require.Equal(t, []string{"y", "x"}, out.Dims())
	require.Equal(t, []int{2, 3}, out.Shape())
	assert.InDeltaSlice(t, []float64{2, 2, 0, 1, 2, 3}, out.Values(), 1e-9)
}

func TestBinned_SelectAndWindow(t *testing.T) {
	binned, err := array.Bin(eventTable(),
		array.Binning{Dim: "y", Edges: []float64{0, 1, 2}, Unit: unit.New("m")},
		array.Binning{Dim: "x", Edges: []float64{0, 1, 2, 3}, Unit: unit.New("m")},
	)
	require.NoError(t, err)

	p, err := NewPolicy(binned)
	require.NoError(t, err)
	p.SetBound("y", AtIndex(0))
	p.SetBound("x", FullRange())
	p.SetResolution("x", 3)

	out, err := p.Data()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out.Dims())
	assert.InDeltaSlice(t, []float64{2, 2, 1}, out.Values(), 1e-9)
}

func TestBinned_MasksCarried(t *testing.T) {
	binned, err := array.Bin(eventTable(),
		array.Binning{Dim: "y", Edges: []float64{0, 1, 2}, Unit: unit.New("m")},
		array.Binning{Dim: "x", Edges: []float64{0, 1, 2, 3}, Unit: unit.New("m")},
	)
	require.NoError(t, err)
	ym, err := array.NewMask([]string{"y"}, []int{2}, []bool{false, true})
	require.NoError(t, err)
	require.NoError(t, binned.SetMask("bad-row", ym))
	xm, err := array.NewMask([]string{"x"}, []int{3}, []bool{true, false, false})
	require.NoError(t, err)
	require.NoError(t, binned.SetMask("bad-col", xm))

	p, err := NewPolicy(binned)
	require.NoError(t, err)
	p.SetBound("x", FullRange())
	p.SetResolution("x", 3)

	out, err := p.Data()
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, out.Shape())

	// The y mask fits the kept dimension and is broadcast over x; the x
	// mask is along the resampled dimension and cannot survive the new
	// bin structure.
	union := out.Mask("union")
	require.NotNil(t, union)
	assert.Equal(t, []string{"y", "x"}, union.Dims())
	assert.Equal(t, []bool{false, false, false, true, true, true}, union.Values())
}

func TestBinned_VariancesSummed(t *testing.T) {
	p, err := NewPolicy(eventSource(t))
	require.NoError(t, err)
	p.SetBound("x", FullRange())
	p.SetResolution("x", 3)

	out, err := p.Data()
	require.NoError(t, err)
	require.True(t, out.HasVariances())
	assert.InDeltaSlice(t, out.Values(), out.Variances(), 1e-9,
		"unit-weight events carry unit variances")
}

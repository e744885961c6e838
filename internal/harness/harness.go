package harness

import (
	"fmt"
	"math"

	"github.com/binview/binview/array"
	"github.com/binview/binview/internal/testutil"
	"github.com/binview/binview/resample"
	"github.com/binview/binview/unit"
)

// expectTolerance bounds float comparison in step expects.
const expectTolerance = 1e-9

// Run executes a scenario and returns its result. Every step mutates
// the policy's request and takes one view; the trace records each view
// with a sequence number from a fresh step clock, so repeated runs are
// byte-identical.
func Run(scenario *Scenario) (*Result, error) {
	source, err := buildSource(&scenario.Source)
	if err != nil {
		return nil, fmt.Errorf("building source array: %w", err)
	}
	policy, err := resample.NewPolicy(source)
	if err != nil {
		return nil, fmt.Errorf("creating policy: %w", err)
	}

	clock := testutil.NewStepClock()
	result := NewResult()

	for i, step := range scenario.Steps {
		if step.Reset {
			policy.Reset()
			result.Trace = append(result.Trace, TraceEvent{Type: "reset", Seq: clock.Next()})
		}
		if err := applyStep(policy, &step); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}

		view, outcome, err := policy.DataOutcome()
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: taking view: %w", i, err)
		}

		total := sum(view.Values())
		result.Trace = append(result.Trace, TraceEvent{
			Type:    "view",
			Seq:     clock.Next(),
			Outcome: outcome.String(),
			Dims:    view.Dims(),
			Shape:   view.Shape(),
			Unit:    view.Unit().String(),
			Total:   &total,
		})

		if step.Expect != nil {
			checkExpect(result, i, step.Expect, view, outcome)
		}
	}

	result.Stats = policy.Stats()
	evaluateAssertions(result, scenario.Assertions)
	return result, nil
}

// applyStep translates one step's mutations onto the policy.
func applyStep(policy *resample.Policy, step *Step) error {
	for _, dim := range step.Clear {
		policy.ClearBound(dim)
		policy.ClearResolution(dim)
	}
	for dim, spec := range step.Bounds {
		b, err := parseBound(&spec)
		if err != nil {
			return fmt.Errorf("bounds[%s]: %w", dim, err)
		}
		policy.SetBound(dim, b)
	}
	for dim, res := range step.Resolutions {
		policy.SetResolution(dim, res)
	}
	return nil
}

func parseBound(spec *BoundSpec) (resample.Bound, error) {
	switch spec.Kind {
	case KindFull:
		return resample.FullRange(), nil
	case KindIndex:
		return resample.AtIndex(spec.Index), nil
	case KindWindow:
		return resample.IndexWindow(int(spec.Lo), int(spec.Hi)), nil
	case KindValues:
		u, err := unit.Parse(spec.Unit)
		if err != nil {
			return resample.Bound{}, fmt.Errorf("parsing unit: %w", err)
		}
		return resample.ValueRange(
			unit.NewScalar(spec.Lo, u),
			unit.NewScalar(spec.Hi, u)), nil
	}
	return resample.Bound{}, fmt.Errorf("unknown bound kind %q", spec.Kind)
}

// buildSource constructs the scenario's source array. Dense sources are
// built from shape and values; event sources are partitioned into the
// binning given by their edge coordinates.
func buildSource(spec *SourceSpec) (*array.Array, error) {
	u, err := unit.Parse(spec.Unit)
	if err != nil {
		return nil, fmt.Errorf("parsing source unit: %w", err)
	}

	var a *array.Array
	if len(spec.Events) > 0 {
		a, err = buildEventSource(spec, u)
	} else {
		a, err = buildDenseSource(spec, u)
	}
	if err != nil {
		return nil, err
	}

	for name, m := range spec.Masks {
		shape := make([]int, len(m.Dims))
		for i, dim := range m.Dims {
			n, err := a.Len(dim)
			if err != nil {
				return nil, fmt.Errorf("masks[%s]: %w", name, err)
			}
			shape[i] = n
		}
		mask, err := array.NewMask(m.Dims, shape, m.Values)
		if err != nil {
			return nil, fmt.Errorf("masks[%s]: %w", name, err)
		}
		if err := a.SetMask(name, mask); err != nil {
			return nil, fmt.Errorf("masks[%s]: %w", name, err)
		}
	}
	return a, nil
}

func buildDenseSource(spec *SourceSpec, u unit.Unit) (*array.Array, error) {
	a, err := array.New(spec.Dims, spec.Shape, u, spec.Values)
	if err != nil {
		return nil, err
	}
	if len(spec.Variances) > 0 {
		if err := a.SetVariances(spec.Variances); err != nil {
			return nil, err
		}
	}
	for name, c := range spec.Coords {
		cu, err := unit.Parse(c.Unit)
		if err != nil {
			return nil, fmt.Errorf("coords[%s]: parsing unit: %w", name, err)
		}
		values := c.Edges
		if len(values) == 0 {
			values = c.Centers
		}
		coord, err := array.New([]string{name}, []int{len(values)}, cu, values)
		if err != nil {
			return nil, fmt.Errorf("coords[%s]: %w", name, err)
		}
		if err := a.SetCoord(name, coord); err != nil {
			return nil, fmt.Errorf("coords[%s]: %w", name, err)
		}
	}
	return a, nil
}

func buildEventSource(spec *SourceSpec, u unit.Unit) (*array.Array, error) {
	units := map[string]unit.Unit{}
	for name, s := range spec.EventUnits {
		eu, err := unit.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("event_units[%s]: %w", name, err)
		}
		units[name] = eu
	}

	events := make([]array.Event, len(spec.Events))
	for i, ev := range spec.Events {
		events[i] = array.Event{Coords: ev.Coords, Weight: ev.Weight, Variance: ev.Variance}
	}
	table := &array.Table{Events: events, Units: units, Unit: u}

	binnings := make([]array.Binning, 0, len(spec.Dims))
	for _, dim := range spec.Dims {
		c := spec.Coords[dim]
		cu, err := unit.Parse(c.Unit)
		if err != nil {
			return nil, fmt.Errorf("coords[%s]: parsing unit: %w", dim, err)
		}
		binnings = append(binnings, array.Binning{Dim: dim, Edges: c.Edges, Unit: cu})
	}
	return array.Bin(table, binnings...)
}

// checkExpect validates one step's view against its expect clause.
func checkExpect(result *Result, step int, e *Expect, view *array.Array, outcome resample.Outcome) {
	if e.Outcome != "" && e.Outcome != outcome.String() {
		result.AddError(fmt.Sprintf("steps[%d]: outcome %q, want %q", step, outcome.String(), e.Outcome))
	}
	if e.Dims != nil && !sameStrings(e.Dims, view.Dims()) {
		result.AddError(fmt.Sprintf("steps[%d]: dims %v, want %v", step, view.Dims(), e.Dims))
	}
	if e.Shape != nil && !sameInts(e.Shape, view.Shape()) {
		result.AddError(fmt.Sprintf("steps[%d]: shape %v, want %v", step, view.Shape(), e.Shape))
	}
	if e.Total != nil {
		got := sum(view.Values())
		if math.Abs(got-*e.Total) > expectTolerance {
			result.AddError(fmt.Sprintf("steps[%d]: total %g, want %g", step, got, *e.Total))
		}
	}
	if e.Values != nil {
		got := view.Values()
		if len(got) != len(e.Values) {
			result.AddError(fmt.Sprintf("steps[%d]: %d values, want %d", step, len(got), len(e.Values)))
			return
		}
		for i := range got {
			if math.Abs(got[i]-e.Values[i]) > expectTolerance {
				result.AddError(fmt.Sprintf("steps[%d]: values[%d] = %g, want %g", step, i, got[i], e.Values[i]))
				return
			}
		}
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

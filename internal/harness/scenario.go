package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one harness run: a source array, a sequence of
// request mutations, and assertions over the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// Source describes the array the policy is built over.
	Source SourceSpec `yaml:"source"`

	// Steps is the main flow. Every step mutates the request and then
	// takes a view.
	Steps []Step `yaml:"steps"`

	// Assertions validate the whole run after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// SourceSpec describes the source array. A dense source carries Shape
// and Values; an event source carries Events instead, and every
// dimension must have an edge coordinate defining its initial binning.
type SourceSpec struct {
	Dims       []string             `yaml:"dims"`
	Unit       string               `yaml:"unit,omitempty"`
	Shape      []int                `yaml:"shape,omitempty"`
	Values     []float64            `yaml:"values,omitempty"`
	Variances  []float64            `yaml:"variances,omitempty"`
	Coords     map[string]CoordSpec `yaml:"coords,omitempty"`
	Masks      map[string]MaskSpec  `yaml:"masks,omitempty"`
	Events     []EventSpec          `yaml:"events,omitempty"`
	EventUnits map[string]string    `yaml:"event_units,omitempty"`
}

// CoordSpec is one coordinate: either bin edges (extent+1 values) or
// bin centers (extent values), with a unit.
type CoordSpec struct {
	Unit    string    `yaml:"unit,omitempty"`
	Edges   []float64 `yaml:"edges,omitempty"`
	Centers []float64 `yaml:"centers,omitempty"`
}

// MaskSpec is one named mask over a subset of the source dimensions.
type MaskSpec struct {
	Dims   []string `yaml:"dims"`
	Values []bool   `yaml:"values"`
}

// EventSpec is one weighted event for an event-table source.
type EventSpec struct {
	Coords   map[string]float64 `yaml:"coords"`
	Weight   float64            `yaml:"weight"`
	Variance float64            `yaml:"variance,omitempty"`
}

// Step is one harness action: optionally reset the cache, mutate
// bounds and resolutions, then take a view.
type Step struct {
	// Reset invalidates the cache before this step's mutations.
	Reset bool `yaml:"reset,omitempty"`

	// Bounds sets per-dimension requests.
	Bounds map[string]BoundSpec `yaml:"bounds,omitempty"`

	// Resolutions sets per-dimension target bin counts.
	Resolutions map[string]int `yaml:"resolutions,omitempty"`

	// Clear removes the named dimensions' bounds and resolutions.
	Clear []string `yaml:"clear,omitempty"`

	// Expect validates the view this step produces. Optional.
	Expect *Expect `yaml:"expect,omitempty"`
}

// BoundSpec is the YAML form of a resample.Bound.
type BoundSpec struct {
	// Kind is one of "full", "index", "window", "values".
	Kind string `yaml:"kind"`

	// Index is the exact bin for kind "index".
	Index int `yaml:"index,omitempty"`

	// Lo and Hi are bin indices for kind "window", coordinate values
	// for kind "values".
	Lo float64 `yaml:"lo,omitempty"`
	Hi float64 `yaml:"hi,omitempty"`

	// Unit is the unit of Lo and Hi for kind "values".
	Unit string `yaml:"unit,omitempty"`
}

// Expect specifies the expected view for one step. Only set fields are
// checked.
type Expect struct {
	Outcome string    `yaml:"outcome,omitempty"` // "miss", "hit", "hit-home"
	Dims    []string  `yaml:"dims,omitempty"`
	Shape   []int     `yaml:"shape,omitempty"`
	Total   *float64  `yaml:"total,omitempty"`
	Values  []float64 `yaml:"values,omitempty"`
}

// Assertion validates the whole run.
type Assertion struct {
	// Type is "stats" or "view_count".
	Type string `yaml:"type"`

	// Stats fields (type "stats").
	Hits       int `yaml:"hits,omitempty"`
	HomeHits   int `yaml:"home_hits,omitempty"`
	Recomputes int `yaml:"recomputes,omitempty"`

	// Count is the expected number of views (type "view_count").
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertStats     = "stats"
	AssertViewCount = "view_count"
)

// Bound kind constants, matching the CUE schema.
const (
	KindFull   = "full"
	KindIndex  = "index"
	KindWindow = "window"
	KindValues = "values"
)

// LoadScenario reads, schema-checks, and parses a scenario YAML file.
// The CUE schema runs first so structural mistakes are reported against
// the schema rather than as Go decoding errors; the strict YAML decode
// then catches unknown fields (typos), and validateScenario checks the
// semantic rules the schema cannot express.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	if err := ValidateSchema(path, data); err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks the semantic rules: required fields, payload
// consistency, and per-kind bound fields.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Source.Dims) == 0 {
		return fmt.Errorf("source.dims is required and must be non-empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	dense := len(s.Source.Values) > 0
	events := len(s.Source.Events) > 0
	switch {
	case dense && events:
		return fmt.Errorf("source: values and events are mutually exclusive")
	case dense && len(s.Source.Shape) != len(s.Source.Dims):
		return fmt.Errorf("source: shape must name one extent per dimension")
	case events:
		for _, dim := range s.Source.Dims {
			c, ok := s.Source.Coords[dim]
			if !ok || len(c.Edges) < 2 {
				return fmt.Errorf("source: event sources need edge coords for every dimension, missing %q", dim)
			}
		}
	case !dense:
		return fmt.Errorf("source: either values or events is required")
	}

	for name, c := range s.Source.Coords {
		if len(c.Edges) > 0 && len(c.Centers) > 0 {
			return fmt.Errorf("source.coords[%s]: edges and centers are mutually exclusive", name)
		}
		if len(c.Edges) == 0 && len(c.Centers) == 0 {
			return fmt.Errorf("source.coords[%s]: edges or centers is required", name)
		}
	}

	for i, step := range s.Steps {
		for dim, b := range step.Bounds {
			switch b.Kind {
			// A values bound may be given inverted; the policy normalizes
			// it to the coordinate's direction.
			case KindFull, KindIndex, KindValues:
			case KindWindow:
				if b.Hi < b.Lo {
					return fmt.Errorf("steps[%d].bounds[%s]: hi must not be below lo", i, dim)
				}
			default:
				return fmt.Errorf("steps[%d].bounds[%s]: unknown kind %q", i, dim, b.Kind)
			}
		}
		if step.Expect != nil {
			switch step.Expect.Outcome {
			case "", "miss", "hit", "hit-home":
			default:
				return fmt.Errorf("steps[%d].expect: unknown outcome %q", i, step.Expect.Outcome)
			}
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertStats, AssertViewCount:
		case "":
			return fmt.Errorf("assertions[%d]: type is required", i)
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
	}
	return nil
}

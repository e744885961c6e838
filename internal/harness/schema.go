package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// scenarioSchema is the CUE definition every scenario file must satisfy.
// It pins the closed vocabulary (bound kinds, outcomes, assertion types)
// and basic shapes; the loader's validateScenario covers the semantic
// rules that need cross-field knowledge.
const scenarioSchema = `
#Scenario: {
	name:        =~"^[a-z][a-z0-9-]*$"
	description: string & !=""
	source:      #Source
	steps: [#Step, ...#Step]
	assertions?: [...#Assertion]
}

#Source: {
	dims: [string, ...string]
	unit?: string
	shape?: [...int & >0]
	values?: [...number]
	variances?: [...number]
	coords?: {[string]: #Coord}
	masks?: {[string]: #Mask}
	events?: [...#Event]
	event_units?: {[string]: string}
}

#Coord: {
	unit?: string
	edges?: [number, number, ...number]
	centers?: [number, ...number]
}

#Mask: {
	dims: [string, ...string]
	values: [bool, ...bool]
}

#Event: {
	coords: {[string]: number}
	weight: number
	variance?: number
}

#Bound: {
	kind:   "full" | "index" | "window" | "values"
	index?: int & >=0
	lo?:    number
	hi?:    number
	unit?:  string
}

#Step: {
	reset?: bool
	bounds?: {[string]: #Bound}
	resolutions?: {[string]: int & >0}
	clear?: [...string]
	expect?: #Expect
}

#Expect: {
	outcome?: "miss" | "hit" | "hit-home"
	dims?: [...string]
	shape?: [...int]
	total?: number
	values?: [...number]
}

#Assertion: {
	type:        "stats" | "view_count"
	hits?:       int & >=0
	home_hits?:  int & >=0
	recomputes?: int & >=0
	count?:      int & >=0
}
`

// ValidateSchema checks raw scenario YAML against the CUE schema.
// The filename is only used in error positions.
func ValidateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if !def.Exists() {
		return fmt.Errorf("scenario schema has no #Scenario definition")
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parsing scenario YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("building scenario value: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("scenario does not match schema: %w", err)
	}
	return nil
}

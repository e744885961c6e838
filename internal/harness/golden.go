package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"testing"

	"github.com/sebdah/goldie/v2"
	"golang.org/x/text/unicode/norm"
)

// Snapshot is the canonical form of one run, compared byte-for-byte
// against the golden file.
type Snapshot struct {
	ScenarioName string
	Trace        []TraceEvent
}

// toCanonicalMap flattens the snapshot for canonical JSON. Optional
// trace fields are dropped when unset so reset events stay terse.
func (s *Snapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		m := map[string]any{
			"type": ev.Type,
			"seq":  ev.Seq,
		}
		if ev.Outcome != "" {
			m["outcome"] = ev.Outcome
		}
		if ev.Dims != nil {
			dims := make([]any, len(ev.Dims))
			for j, d := range ev.Dims {
				dims[j] = d
			}
			m["dims"] = dims
		}
		if ev.Shape != nil {
			shape := make([]any, len(ev.Shape))
			for j, n := range ev.Shape {
				shape[j] = n
			}
			m["shape"] = shape
		}
		if ev.Unit != "" {
			m["unit"] = ev.Unit
		}
		if ev.Total != nil {
			m["total"] = *ev.Total
		}
		trace[i] = m
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
	}
}

// RunWithGolden executes a scenario and compares its canonical trace
// against testdata/golden/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{ScenarioName: scenario.Name, Trace: result.Trace}
	data, err := marshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return result, nil
}

// marshalCanonical renders a value as deterministic compact JSON:
// object keys sorted, strings NFC-normalized and not HTML-escaped,
// floats in shortest round-trip form. Nulls have no canonical form and
// are rejected.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null has no canonical form")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case float64:
		return []byte(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := marshalCanonicalString(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}

package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureOf_Deterministic(t *testing.T) {
	components := map[string]sigComponent{
		"x": {"kind": "full", "min": 0.0, "max": 100.0, "unit": "m", "res": 10, "default": false},
		"y": {"kind": "index", "index": 3},
	}
	a := signatureOf(components)
	b := signatureOf(components)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestSignatureOf_SensitiveToEveryField(t *testing.T) {
	base := func() map[string]sigComponent {
		return map[string]sigComponent{
			"x": {"kind": "values", "low": 1.0, "high": 2.0, "unit": "m", "res": 10, "default": false},
		}
	}
	ref := signatureOf(base())

	mutations := []struct {
		name  string
		field string
		value any
	}{
		{"low", "low", 1.5},
		{"high", "high", 3.0},
		{"unit", "unit", "s"},
		{"res", "res", 20},
		{"default", "default", true},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			c := base()
			c["x"][m.field] = m.value
			assert.NotEqual(t, ref, signatureOf(c))
		})
	}
}

func TestSignatureOf_DimSetMatters(t *testing.T) {
	a := signatureOf(map[string]sigComponent{"x": {"kind": "index", "index": 0}})
	b := signatureOf(map[string]sigComponent{"y": {"kind": "index", "index": 0}})
	assert.NotEqual(t, a, b)
}

func TestEncodeCanonical_FloatFormatting(t *testing.T) {
	// Integral floats and ints must not collide by rendering alike in a
	// way that depends on locale or width.
	a := signatureOf(map[string]sigComponent{"x": {"v": 10.0}})
	b := signatureOf(map[string]sigComponent{"x": {"v": 10.0}})
	assert.Equal(t, a, b)
}

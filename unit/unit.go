package unit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Unit is a normalized symbolic physical unit: a product of base symbols
// raised to non-zero integer powers. The zero value is dimensionless.
type Unit struct {
	// powers maps base symbol to exponent. Symbols with exponent zero are
	// never stored. A nil map is dimensionless.
	powers map[string]int
}

// Dimensionless is the empty unit.
var Dimensionless = Unit{}

// Counts is the unit of count-like (histogrammed) data.
var Counts = Unit{powers: map[string]int{"counts": 1}}

// New returns the unit for a single base symbol.
func New(symbol string) Unit {
	if symbol == "" || symbol == "1" {
		return Dimensionless
	}
	return Unit{powers: map[string]int{symbol: 1}}
}

// Parse parses a unit expression of the form "a*b/c^2". An empty string
// or "1" parses to Dimensionless. Symbols are opaque; "m" and "meter" are
// distinct units. Division is sticky: every factor after the first "/"
// belongs to the denominator, so "a/b/c" means a/(b*c) and Parse is the
// inverse of String.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "1" {
		return Dimensionless, nil
	}
	powers := map[string]int{}
	sign := 1
	for _, part := range splitFactors(s) {
		if part == "/" {
			sign = -1
			continue
		}
		if part == "*" {
			continue
		}
		sym, exp := part, 1
		if i := strings.IndexByte(part, '^'); i >= 0 {
			n, err := strconv.Atoi(part[i+1:])
			if err != nil {
				return Unit{}, &Error{Op: "parse", Message: fmt.Sprintf("invalid exponent in %q", part)}
			}
			sym, exp = part[:i], n
		}
		if sym == "" {
			return Unit{}, &Error{Op: "parse", Message: fmt.Sprintf("empty symbol in %q", s)}
		}
		if sym != "1" {
			powers[sym] += sign * exp
		}
	}
	for sym, exp := range powers {
		if exp == 0 {
			delete(powers, sym)
		}
	}
	if len(powers) == 0 {
		return Dimensionless, nil
	}
	return Unit{powers: powers}, nil
}

// MustParse is Parse but panics on error. For constants and tests.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// splitFactors tokenizes "a*b/c" into ["a", "*", "b", "/", "c"].
func splitFactors(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '/':
			if i > start {
				out = append(out, s[start:i])
			}
			out = append(out, string(s[i]))
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// String renders the unit in a normalized "a*b/c^2" form with symbols
// sorted alphabetically, positive exponents first.
func (u Unit) String() string {
	if len(u.powers) == 0 {
		return "1"
	}
	syms := make([]string, 0, len(u.powers))
	for sym := range u.powers {
		syms = append(syms, sym)
	}
	sort.Strings(syms)

	var num, den []string
	for _, sym := range syms {
		exp := u.powers[sym]
		if exp > 0 {
			num = append(num, factorString(sym, exp))
		} else {
			den = append(den, factorString(sym, -exp))
		}
	}
	out := strings.Join(num, "*")
	if out == "" {
		out = "1"
	}
	if len(den) > 0 {
		out += "/" + strings.Join(den, "/")
	}
	return out
}

func factorString(sym string, exp int) string {
	if exp == 1 {
		return sym
	}
	return fmt.Sprintf("%s^%d", sym, exp)
}

// Equal reports whether two units have identical normalized form.
func (u Unit) Equal(v Unit) bool {
	if len(u.powers) != len(v.powers) {
		return false
	}
	for sym, exp := range u.powers {
		if v.powers[sym] != exp {
			return false
		}
	}
	return true
}

// Compatible reports whether values in the two units may be added or
// compared. Units are symbolic, so compatibility is exact equality;
// there is no conversion between, say, "mm" and "m".
func (u Unit) Compatible(v Unit) bool {
	return u.Equal(v)
}

// IsDimensionless reports whether the unit is empty.
func (u Unit) IsDimensionless() bool {
	return len(u.powers) == 0
}

// IsCounts reports whether the unit is count-like. Dimensionless data is
// also treated as count-like for resampling purposes: with no physical
// density to preserve, summing is the only meaningful aggregation.
func (u Unit) IsCounts() bool {
	return u.Equal(Counts) || u.IsDimensionless()
}

// Mul returns the product unit.
func (u Unit) Mul(v Unit) Unit {
	return u.combine(v, 1)
}

// Div returns the quotient unit.
func (u Unit) Div(v Unit) Unit {
	return u.combine(v, -1)
}

func (u Unit) combine(v Unit, sign int) Unit {
	powers := map[string]int{}
	for sym, exp := range u.powers {
		powers[sym] += exp
	}
	for sym, exp := range v.powers {
		powers[sym] += sign * exp
	}
	for sym, exp := range powers {
		if exp == 0 {
			delete(powers, sym)
		}
	}
	if len(powers) == 0 {
		return Dimensionless
	}
	return Unit{powers: powers}
}

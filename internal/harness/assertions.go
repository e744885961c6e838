package harness

import "fmt"

// evaluateAssertions checks the whole-run assertions against the
// accumulated result. Failures are recorded, not returned: a scenario
// with a broken assertion still yields its full trace for inspection.
func evaluateAssertions(result *Result, assertions []Assertion) {
	for i, a := range assertions {
		switch a.Type {
		case AssertStats:
			s := result.Stats
			if s.Hits != a.Hits || s.HomeHits != a.HomeHits || s.Recomputes != a.Recomputes {
				result.AddError(fmt.Sprintf(
					"assertions[%d]: stats hits=%d home_hits=%d recomputes=%d, want hits=%d home_hits=%d recomputes=%d",
					i, s.Hits, s.HomeHits, s.Recomputes, a.Hits, a.HomeHits, a.Recomputes))
			}
		case AssertViewCount:
			if n := result.ViewCount(); n != a.Count {
				result.AddError(fmt.Sprintf("assertions[%d]: %d views, want %d", i, n, a.Count))
			}
		}
	}
}

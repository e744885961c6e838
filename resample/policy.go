package resample

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/binview/binview/array"
)

// DefaultResolution is the bin count used for a dimension whose
// resolution was never set.
const DefaultResolution = 1

// Stats counts cache outcomes observed by a policy since construction or
// the last Reset.
type Stats struct {
	Hits       int // served from the most recent view
	HomeHits   int // served from the first-ever view
	Recomputes int // delegated to the strategy
}

// Policy owns the per-dimension resolution and bounds state and derives
// bounded-resolution views of its source array on demand, recomputing
// only when the structural signature of the request changes.
//
// A Policy is not safe for concurrent use; the intended caller is a
// single interactive controller issuing requests in sequence.
type Policy struct {
	source     *array.Array
	strategy   Strategy
	cache      Cache
	logger     *slog.Logger
	defaultRes int

	bounds     map[string]Bound
	resolution map[string]int

	stats Stats
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithDefaultResolution sets the bin count used for dimensions whose
// resolution is unset. The default is DefaultResolution.
func WithDefaultResolution(res int) PolicyOption {
	return func(p *Policy) {
		p.defaultRes = res
	}
}

// WithCache swaps the cache policy. The default retains the home and the
// most recent view; NewLRUCache adds bounded history with the same home
// guarantee.
func WithCache(c Cache) PolicyOption {
	return func(p *Policy) {
		p.cache = c
	}
}

// WithStrategy overrides the strategy chosen from the payload kind.
// Intended for instrumented strategies in tests; UpdateArray re-selects
// from the payload and discards the override.
func WithStrategy(s Strategy) PolicyOption {
	return func(p *Policy) {
		p.strategy = s
	}
}

// WithLogger sets the logger for plan and cache diagnostics. The default
// discards everything.
func WithLogger(l *slog.Logger) PolicyOption {
	return func(p *Policy) {
		p.logger = l
	}
}

// NewPolicy creates a policy over the given source array. The strategy
// is selected from the source's payload kind.
func NewPolicy(source *array.Array, opts ...PolicyOption) (*Policy, error) {
	if source == nil {
		return nil, fmt.Errorf("nil source array")
	}
	p := &Policy{
		source:     source,
		strategy:   strategyFor(source),
		cache:      NewHomeLastCache(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultRes: DefaultResolution,
		bounds:     map[string]Bound{},
		resolution: map[string]int{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SetBound sets the request for one dimension. Dimensions without a
// bound are left untouched by Data.
func (p *Policy) SetBound(dim string, b Bound) {
	p.bounds[dim] = b
}

// ClearBound removes a dimension's request.
func (p *Policy) ClearBound(dim string) {
	delete(p.bounds, dim)
}

// Bounds returns a copy of the per-dimension requests.
func (p *Policy) Bounds() map[string]Bound {
	out := make(map[string]Bound, len(p.bounds))
	for dim, b := range p.bounds {
		out[dim] = b
	}
	return out
}

// SetResolution sets the target bin count for a dimension.
func (p *Policy) SetResolution(dim string, res int) {
	p.resolution[dim] = res
}

// ClearResolution reverts a dimension to the default resolution.
func (p *Policy) ClearResolution(dim string) {
	delete(p.resolution, dim)
}

// Resolution returns a copy of the explicitly set resolutions.
func (p *Policy) Resolution() map[string]int {
	out := make(map[string]int, len(p.resolution))
	for dim, res := range p.resolution {
		out[dim] = res
	}
	return out
}

// Source returns the current source array.
func (p *Policy) Source() *array.Array {
	return p.source
}

// Stats returns the cache outcome counters.
func (p *Policy) Stats() Stats {
	return p.stats
}

// Data resolves the current request and returns the derived view,
// recomputing only when the request's signature matches neither cached
// view. A failed computation leaves the cache untouched, so a transient
// bad request cannot poison subsequent good ones.
func (p *Policy) Data() (*array.Array, error) {
	arr, _, err := p.compute()
	return arr, err
}

// DataOutcome is Data plus the cache outcome that produced the view.
func (p *Policy) DataOutcome() (*array.Array, Outcome, error) {
	return p.compute()
}

func (p *Policy) compute() (*array.Array, Outcome, error) {
	plans, components, err := resolvePlans(p.source, p.bounds, p.resolution, p.defaultRes)
	if err != nil {
		return nil, Miss, err
	}
	sig := signatureOf(components)

	if arr, outcome := p.cache.Lookup(sig); outcome != Miss {
		switch outcome {
		case HitRecent:
			p.stats.Hits++
		case HitHome:
			p.stats.HomeHits++
		}
		p.logger.Debug("view served from cache",
			"outcome", outcome.String(), "signature", sig[:12], "source", p.source.ID())
		return arr, outcome, nil
	}

	arr, err := p.strategy.Resample(p.source, plans)
	if err != nil {
		return nil, Miss, err
	}

	// A dimension that collapsed to one bin without an explicit
	// resolution behaves like an exact index select: drop it.
	for i := range plans {
		pl := &plans[i]
		if !pl.squeeze() || !arr.HasDim(pl.dim) {
			continue
		}
		n, err := arr.Len(pl.dim)
		if err != nil || n != 1 {
			continue
		}
		arr, err = arr.Slice(pl.dim, 0)
		if err != nil {
			return nil, Miss, err
		}
	}

	p.cache.Store(sig, arr)
	p.stats.Recomputes++
	p.logger.Debug("view recomputed",
		"strategy", p.strategy.Name(), "signature", sig[:12], "source", p.source.ID())
	return arr, Miss, nil
}

// Reset invalidates all cached views, forcing recomputation on the next
// access. Use after the source array's contents are known to differ.
func (p *Policy) Reset() {
	p.cache.Reset()
	p.stats = Stats{}
}

// UpdateArray swaps the source array while preserving cached signatures:
// an unchanged request can still be served from cache. Call Reset
// afterwards when the new array must force recomputation. The strategy
// is re-selected from the new payload kind.
func (p *Policy) UpdateArray(source *array.Array) error {
	if source == nil {
		return fmt.Errorf("nil source array")
	}
	p.logger.Debug("source swapped", "old", p.source.ID(), "new", source.ID())
	p.source = source
	p.strategy = strategyFor(source)
	return nil
}

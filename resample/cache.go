package resample

import "github.com/binview/binview/array"

// Outcome classifies a cache lookup.
type Outcome int

const (
	// Miss: no cached view matches the signature.
	Miss Outcome = iota

	// HitRecent: the most recently stored view matches.
	HitRecent

	// HitHome: the first-ever stored view matches.
	HitHome
)

func (o Outcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case HitRecent:
		return "hit"
	case HitHome:
		return "hit-home"
	}
	return "unknown"
}

// Cache retains computed views keyed by structural signature. Every
// implementation must preserve the home guarantee: the first view ever
// stored stays retrievable until Reset.
//
// Store is only called after a successful computation, so a failed
// request can never displace a cached view.
type Cache interface {
	Lookup(sig string) (*array.Array, Outcome)
	Store(sig string, a *array.Array)
	Reset()
}

// view is one cached (signature, array) pair.
type view struct {
	sig string
	arr *array.Array
}

// homeLast retains exactly two views: the first ever computed (home,
// typically the full-range default a user returns to) and the most
// recent one. This matches interactive usage, where return-to-start is
// common and arbitrary history is not.
type homeLast struct {
	home *view
	last *view
}

// NewHomeLastCache returns the default two-view cache.
func NewHomeLastCache() Cache {
	return &homeLast{}
}

func (c *homeLast) Lookup(sig string) (*array.Array, Outcome) {
	if c.last != nil && c.last.sig == sig {
		return c.last.arr, HitRecent
	}
	if c.home != nil && c.home.sig == sig {
		return c.home.arr, HitHome
	}
	return nil, Miss
}

func (c *homeLast) Store(sig string, a *array.Array) {
	v := &view{sig: sig, arr: a}
	c.last = v
	if c.home == nil {
		c.home = v
	}
}

func (c *homeLast) Reset() {
	c.home = nil
	c.last = nil
}

// lru is a small fixed-capacity cache that still pins the home view. The
// observable behavior matches homeLast for any access sequence homeLast
// can serve; extra capacity only turns some misses into hits.
type lru struct {
	cap     int
	home    *view
	entries []*view // most recent first
}

// NewLRUCache returns an LRU cache holding up to capacity views beyond
// the pinned home view. Capacity below one is raised to one.
func NewLRUCache(capacity int) Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &lru{cap: capacity}
}

func (c *lru) Lookup(sig string) (*array.Array, Outcome) {
	for i, v := range c.entries {
		if v.sig == sig {
			// Move to front.
			copy(c.entries[1:i+1], c.entries[:i])
			c.entries[0] = v
			return v.arr, HitRecent
		}
	}
	if c.home != nil && c.home.sig == sig {
		return c.home.arr, HitHome
	}
	return nil, Miss
}

func (c *lru) Store(sig string, a *array.Array) {
	v := &view{sig: sig, arr: a}
	if c.home == nil {
		c.home = v
	}
	c.entries = append([]*view{v}, c.entries...)
	if len(c.entries) > c.cap {
		c.entries = c.entries[:c.cap]
	}
}

func (c *lru) Reset() {
	c.home = nil
	c.entries = nil
}

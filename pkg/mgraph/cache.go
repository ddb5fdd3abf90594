// Package mgraph resolves a set of mfacet.Hook values into a deterministic
// build order over the "attach" relation, and caches that resolution
// keyed by the hook set's signature so that repeated builds of an
// unchanged Subsystem skip the sort entirely.
package mgraph

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Plan is what a DependencyGraphCache stores for one hook-set signature:
// either a valid build order, or a frozen error from a previous attempt.
type Plan struct {
	Valid        bool
	OrderedKinds []string
	Err          error
}

// DependencyGraphCache is a bounded LRU of hook-set signature ->
// Plan. A hit on a prior cycle error is returned without recomputation,
// per the "a cached cycle error propagates without re-computing the
// sort" requirement.
type DependencyGraphCache struct {
	cache *lru.Cache[string, Plan]
}

// DefaultCapacity is used when NewDependencyGraphCache is given a
// capacity <= 0.
const DefaultCapacity = 100

// NewDependencyGraphCache builds a cache bounded to capacity entries.
func NewDependencyGraphCache(capacity int) *DependencyGraphCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c, err := lru.New[string, Plan](capacity)
	if err != nil {
		// Only returned by lru.New for a non-positive size, which
		// DefaultCapacity above rules out.
		panic(err)
	}

	return &DependencyGraphCache{cache: c}
}

// Get promotes signature to most-recently-used and returns its cached
// Plan, if any.
func (c *DependencyGraphCache) Get(signature string) (Plan, bool) {
	return c.cache.Get(signature)
}

// Set stores plan under signature. An existing key is updated in place
// and marked most-recently-used, without evicting anything; a brand-new
// key may evict the least-recently-used entry.
func (c *DependencyGraphCache) Set(signature string, plan Plan) {
	c.cache.Add(signature, plan)
}

// Len reports the number of entries currently cached.
func (c *DependencyGraphCache) Len() int { return c.cache.Len() }

// Purge clears the cache entirely.
func (c *DependencyGraphCache) Purge() { c.cache.Purge() }

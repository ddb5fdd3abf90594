package mfacet

import (
	"fmt"
	"sync"
)

// FacetContract describes the interface a well-known facet kind is
// expected to satisfy. Registering a contract lets a FacetContractRegistry
// validate, at attach time, that a candidate facet actually implements
// what its Kind promises instead of failing later at first use.
type FacetContract struct {
	// Kind is the facet kind this contract governs (e.g. "router").
	Kind string
	// Implements is called with a built Facet and reports whether it
	// satisfies the contract (typically a type assertion to an
	// interface defined alongside the contract's consumer).
	Implements func(f Facet) bool
}

// FacetContractRegistry holds the known FacetContracts for one
// MessageSystem. It is safe for concurrent use.
type FacetContractRegistry struct {
	mu        sync.RWMutex
	contracts map[string]FacetContract
}

// NewFacetContractRegistry builds an empty registry. mfacet has no
// knowledge of any concrete facet's real interface (router, queue,
// processor, ...) — those types live in the package that defines them,
// so a caller wiring up the well-known dispatch-core contracts calls
// that package's own contract-registration helper (e.g.
// mdispatch.RegisterDefaultContracts) against the registry returned
// here. Register adds further contracts the same way.
func NewFacetContractRegistry() *FacetContractRegistry {
	return &FacetContractRegistry{contracts: make(map[string]FacetContract)}
}

// Register adds or replaces the contract for its Kind.
func (r *FacetContractRegistry) Register(c FacetContract) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contracts[c.Kind] = c
}

// Lookup returns the contract registered for kind, if any.
func (r *FacetContractRegistry) Lookup(kind string) (FacetContract, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contracts[kind]

	return c, ok
}

// Check validates that f satisfies the contract registered for its own
// Kind. A kind with no registered contract always passes: contracts are
// opt-in stricter checks, not a closed kind registry.
func (r *FacetContractRegistry) Check(f Facet) error {
	c, ok := r.Lookup(f.Kind())
	if !ok {
		return nil
	}

	if !c.Implements(f) {
		return ValidationError(fmt.Sprintf("facet of kind %q does not satisfy its contract", f.Kind()))
	}

	return nil
}

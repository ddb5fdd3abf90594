package mdispatch

import (
	"sync"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// QueriesFacet answers Messages marked IsQuery synchronously, bypassing
// the queue entirely. Routes are registered through the same Router the
// processor uses; enableQueryHandler installs an override on this facet
// that runs before route resolution.
type QueriesFacet struct {
	mfacet.Base

	mu      sync.RWMutex
	router  *RouterFacet
	handler HandlerFunc
}

// NewQueriesFacet returns a factory for the "queries" kind. The router
// query routes are registered against must be listed in this hook's
// Attach; it is wired in through AttachDeps once built, not handed to
// the factory itself.
func NewQueriesFacet(source string) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &QueriesFacet{Base: mfacet.NewBase("queries", source)}, nil
	}
}

// AttachDeps wires in the router named "router" in Attach, if present.
// A queries facet attached without a router simply answers every query
// with a "no route handler found" result.
func (q *QueriesFacet) AttachDeps(deps map[string]mfacet.Facet) error {
	router, _ := deps["router"].(*RouterFacet)

	q.mu.Lock()
	q.router = router
	q.mu.Unlock()

	return nil
}

// EnableQueryHandler installs fn as an override for ProcessQuery,
// replacing route-based dispatch.
func (q *QueriesFacet) EnableQueryHandler(fn HandlerFunc) {
	q.mu.Lock()
	q.handler = fn
	q.mu.Unlock()
}

// ProcessQuery resolves and runs the handler for message synchronously.
// If an override handler was installed via EnableQueryHandler, it runs
// instead of route resolution.
func (q *QueriesFacet) ProcessQuery(message *Message, options map[string]any) (Result, error) {
	q.mu.RLock()
	override := q.handler
	router := q.router
	q.mu.RUnlock()

	if override != nil {
		return override(message, map[string]string{}, options)
	}

	if router == nil {
		return Result{Success: false, Error: "no route handler found: " + message.Path}, nil
	}

	resolved, ok := router.ResolveRoute(message.Path)
	if !ok {
		return Result{Success: false, Error: "no route handler found: " + message.Path}, nil
	}

	return resolved.Handler(message, resolved.Params, options)
}

package mdispatch

import (
	"context"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// routerContract is the interface RouterFacet satisfies; it is what a
// facet attached under the "router" kind must actually provide.
type routerContract interface {
	RegisterRoute(pattern string, handler HandlerFunc, opts RouteOptions) error
	UnregisterRoute(pattern string)
	ResolveRoute(path string) (*ResolvedRoute, bool)
}

// queueContract is the interface QueueFacet satisfies.
type queueContract interface {
	Enqueue(msg *Message) error
	Dequeue() (*Message, bool)
}

// processorContract is the interface ProcessorFacet satisfies. It is
// also satisfied by any other facet kind registered under "processor"
// that offers the same accept/processTick/statistics surface.
type processorContract interface {
	Accept(ctx context.Context, message *Message, currentPiece any) (bool, error)
	ProcessTick(ctx context.Context, options map[string]any) (*Result, error)
	Statistics() Snapshot
}

// listenersContract is the interface ListenersFacet satisfies.
type listenersContract interface {
	AddListener(fn ListenerFunc)
}

// hierarchyContract is the interface HierarchyFacet satisfies.
type hierarchyContract interface {
	OverridesAddChild() bool
	AddChild(name string, child any) error
	OverridesRemoveChild() bool
	RemoveChild(name string)
}

// schedulerContract is the interface SchedulerFacet satisfies.
type schedulerContract interface {
	Pause()
	Resume()
	Process(ctx context.Context) (*Result, error)
}

// RegisterDefaultContracts populates registry with the six well-known
// dispatch-core contracts, each asserting the facet attached under that
// kind actually implements the methods its consumers call, instead of
// only matching on the Kind string a malformed facet could claim
// regardless of what it implements.
func RegisterDefaultContracts(registry *mfacet.FacetContractRegistry) {
	registry.Register(mfacet.FacetContract{
		Kind: "router",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(routerContract)
			return ok
		},
	})

	registry.Register(mfacet.FacetContract{
		Kind: "queue",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(queueContract)
			return ok
		},
	})

	registry.Register(mfacet.FacetContract{
		Kind: "processor",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(processorContract)
			return ok
		},
	})

	registry.Register(mfacet.FacetContract{
		Kind: "listeners",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(listenersContract)
			return ok
		},
	})

	registry.Register(mfacet.FacetContract{
		Kind: "hierarchy",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(hierarchyContract)
			return ok
		},
	})

	registry.Register(mfacet.FacetContract{
		Kind: "scheduler",
		Implements: func(f mfacet.Facet) bool {
			_, ok := f.(schedulerContract)
			return ok
		},
	})
}

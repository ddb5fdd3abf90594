package mdispatch

import (
	"context"
	"testing"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// malformedFacet has the right Kind() but none of the methods its
// consumers actually call; it exists to prove the default contracts
// reject on substance, not on Kind() alone.
type malformedFacet struct {
	mfacet.Base
}

func newMalformedFacet(kind string) *malformedFacet {
	return &malformedFacet{Base: mfacet.NewBase(kind, "test")}
}

func TestRegisterDefaultContracts_RejectsMalformedFacetOfEachKind(t *testing.T) {
	registry := mfacet.NewFacetContractRegistry()
	RegisterDefaultContracts(registry)

	for _, kind := range []string{"router", "queue", "processor", "listeners", "hierarchy", "scheduler"} {
		if err := registry.Check(newMalformedFacet(kind)); err == nil {
			t.Fatalf("expected a facet of kind %q with no real methods to fail its contract", kind)
		}
	}
}

func TestRegisterDefaultContracts_AcceptsRealRouterFacet(t *testing.T) {
	registry := mfacet.NewFacetContractRegistry()
	RegisterDefaultContracts(registry)

	router, _ := NewRouterFacet("test")()
	if err := registry.Check(router); err != nil {
		t.Fatalf("expected a real RouterFacet to satisfy the router contract, got %v", err)
	}
}

func TestRegisterDefaultContracts_AcceptsRealQueueFacet(t *testing.T) {
	registry := mfacet.NewFacetContractRegistry()
	RegisterDefaultContracts(registry)

	queue, _ := NewQueueFacet("test", 8)()
	if err := registry.Check(queue); err != nil {
		t.Fatalf("expected a real QueueFacet to satisfy the queue contract, got %v", err)
	}
}

func TestRegisterDefaultContracts_AcceptsRealProcessorFacet(t *testing.T) {
	registry := mfacet.NewFacetContractRegistry()
	RegisterDefaultContracts(registry)

	router, _ := NewRouterFacet("test")()
	queue, _ := NewQueueFacet("test", 8)()

	proc, err := NewProcessorFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error building processor: %v", err)
	}

	procFacet := proc.(*ProcessorFacet)
	if err := procFacet.AttachDeps(map[string]mfacet.Facet{"router": router, "queue": queue}); err != nil {
		t.Fatalf("unexpected error attaching processor deps: %v", err)
	}

	if err := registry.Check(proc); err != nil {
		t.Fatalf("expected a real ProcessorFacet to satisfy the processor contract, got %v", err)
	}
}

func TestRegisterDefaultContracts_AcceptsRealListenersHierarchySchedulerFacets(t *testing.T) {
	registry := mfacet.NewFacetContractRegistry()
	RegisterDefaultContracts(registry)

	listeners, _ := NewListenersFacet("test")()
	if err := registry.Check(listeners); err != nil {
		t.Fatalf("expected a real ListenersFacet to satisfy the listeners contract, got %v", err)
	}

	hierarchy, _ := NewHierarchyFacet("test", nil, nil)()
	if err := registry.Check(hierarchy); err != nil {
		t.Fatalf("expected a real HierarchyFacet to satisfy the hierarchy contract, got %v", err)
	}

	scheduler, _ := NewSchedulerFacet("test", func(context.Context) (*Result, error) { return nil, nil })()
	if err := registry.Check(scheduler); err != nil {
		t.Fatalf("expected a real SchedulerFacet to satisfy the scheduler contract, got %v", err)
	}
}

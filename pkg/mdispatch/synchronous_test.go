package mdispatch

import (
	"context"
	"testing"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

func newTestSynchronous(t *testing.T, deps map[string]mfacet.Facet) *SynchronousFacet {
	t.Helper()

	facet, err := NewSynchronousFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := facet.(*SynchronousFacet)

	if err := s.AttachDeps(deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s
}

func TestSynchronousFacet_AcceptProcessesImmediately(t *testing.T) {
	router, err := NewRouterFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := router.(*RouterFacet)

	var handled *Message

	if err := r.RegisterRoute("echo", func(message *Message, params map[string]string, options map[string]any) (Result, error) {
		handled = message
		return Result{Success: true, Data: message.Body}, nil
	}, RouteOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sync := newTestSynchronous(t, map[string]mfacet.Facet{"router": r})

	msg := NewMessage("echo", "hello")

	accepted, err := sync.Accept(context.Background(), msg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !accepted {
		t.Fatalf("expected Accept to report true")
	}

	if handled != msg {
		t.Fatalf("expected the handler to run synchronously before Accept returned")
	}
}

func TestSynchronousFacet_MissingRouteReportsFailureWithoutPanicking(t *testing.T) {
	router, err := NewRouterFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sync := newTestSynchronous(t, map[string]mfacet.Facet{"router": router})

	result := sync.ProcessImmediately(context.Background(), NewMessage("missing", nil), nil)

	if result.Success {
		t.Fatalf("expected failure for an unregistered path")
	}

	if result.Error == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestSynchronousFacet_ProcessTickIsAlwaysEmpty(t *testing.T) {
	router, err := NewRouterFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sync := newTestSynchronous(t, map[string]mfacet.Facet{"router": router})

	result, err := sync.ProcessTick(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != nil {
		t.Fatalf("expected ProcessTick to always report nothing to dequeue, got %+v", result)
	}
}

func TestSynchronousFacet_MissingRouterIsDependencyError(t *testing.T) {
	facet, err := NewSynchronousFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := facet.(*SynchronousFacet)

	if err := s.AttachDeps(map[string]mfacet.Facet{}); err == nil {
		t.Fatalf("expected a missing router dependency to fail")
	}
}

func TestSynchronousFacet_QueryFastPathBypassesHandlerRouting(t *testing.T) {
	router, err := NewRouterFacet("test")()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	queriesFacet := newTestQueries(t, router.(*RouterFacet))

	sync := newTestSynchronous(t, map[string]mfacet.Facet{"router": router, "queries": queriesFacet})

	msg := NewMessage("echo", "hi")
	msg.IsQuery = true

	r := router.(*RouterFacet)
	if err := r.RegisterRoute("echo", func(message *Message, params map[string]string, options map[string]any) (Result, error) {
		return Result{Success: true, Data: "answer"}, nil
	}, RouteOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accepted, err := sync.Accept(context.Background(), msg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !accepted {
		t.Fatalf("expected Accept to report true")
	}

	if msg.QueryResult == nil {
		t.Fatalf("expected QueryResult to be populated synchronously")
	}
}

package mfacet

import "testing"

func TestHook_ValidateRequiresKindAndFactory(t *testing.T) {
	if err := (Hook{}).Validate(); err == nil {
		t.Fatalf("expected empty hook to fail validation")
	}

	if err := (Hook{Kind: "router"}).Validate(); err == nil {
		t.Fatalf("expected hook with no factory to fail validation")
	}

	h := Hook{Kind: "router", Factory: noopFactory}
	if err := h.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHook_ValidateRejectsSelfAttach(t *testing.T) {
	h := Hook{Kind: "router", Attach: []string{"router"}, Factory: noopFactory}

	if err := h.Validate(); err == nil {
		t.Fatalf("expected self-attach to fail validation")
	}
}

func TestHook_SignatureIgnoresSourceAndFactoryIdentity(t *testing.T) {
	a := Hook{Kind: "router", Attach: []string{"queue"}, Source: "a", Factory: noopFactory}
	b := Hook{Kind: "router", Attach: []string{"queue"}, Source: "b", Factory: noopFactory}

	if a.Signature() != b.Signature() {
		t.Fatalf("expected signatures to match regardless of Source/Factory identity: %q vs %q", a.Signature(), b.Signature())
	}
}

func noopFactory() (Facet, error) { return nil, nil }

package msecurity

import "testing"

type fakeKernel struct {
	sent []any
}

func (k *fakeKernel) SendProtected(owner PKR, message any, options map[string]any) (any, error) {
	k.sent = append(k.sent, message)
	return "ok", nil
}

func TestIdentity_PermissionGateDeniesNonGrantHolder(t *testing.T) {
	kernel := &fakeKernel{}
	registry := NewPrincipalRegistry(kernel)

	pkrA := registry.CreatePrincipal(TopLevel)
	pkrB := registry.CreatePrincipal(TopLevel)

	identityA, err := NewIdentity(registry, pkrA, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !identityA.CanRead(pkrA) {
		t.Fatalf("expected the owner to always be able to read its own identity")
	}

	identityB, err := NewIdentity(registry, pkrB, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := registry.CreatePrincipal(Resource)

	if !identityB.GrantReader(pkrB, other) {
		t.Fatalf("expected B to be able to grant read on its own identity, since the owner always holds grant on its own RWS")
	}

	if identityA.GrantReader(pkrB, other) {
		t.Fatalf("expected identity A's GrantReader to deny an actor (B) who does not hold grant on A's own RWS")
	}

	if identityA.GrantReader(pkrA, other) != true {
		t.Fatalf("expected the owner A to succeed granting read since A always holds grant on its own RWS")
	}

	if !identityA.CanRead(other) {
		t.Fatalf("expected other to gain read access after a successful grant")
	}
}

func TestNewIdentity_StableValidationMessages(t *testing.T) {
	kernel := &fakeKernel{}
	registry := NewPrincipalRegistry(kernel)
	pkr := registry.CreatePrincipal(TopLevel)

	if _, err := NewIdentity(nil, pkr, kernel); err == nil || err.Error() != "invalid principals registry" {
		t.Fatalf("expected stable message %q, got %v", "invalid principals registry", err)
	}

	if _, err := NewIdentity(registry, PKR("unknown"), kernel); err == nil || err.Error() != "invalid owner PKR" {
		t.Fatalf("expected stable message %q, got %v", "invalid owner PKR", err)
	}

	if _, err := NewIdentity(registry, pkr, nil); err == nil || err.Error() != "must support sendProtected" {
		t.Fatalf("expected stable message %q, got %v", "must support sendProtected", err)
	}
}

func TestIdentity_RequireAuthRunsHandlerOnlyWhenAllowed(t *testing.T) {
	kernel := &fakeKernel{}
	registry := NewPrincipalRegistry(kernel)
	pkr := registry.CreatePrincipal(TopLevel)

	identity, err := NewIdentity(registry, pkr, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ran := false

	_, err = identity.RequireRead(func() (any, error) {
		ran = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ran {
		t.Fatalf("expected owner's RequireRead to run the handler")
	}

	otherPKR := registry.CreatePrincipal(TopLevel)
	otherIdentity, err := NewIdentity(registry, otherPKR, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranForOther := false

	_, err = otherIdentity.RequireAuth(AuthType("bogus"), func() (any, error) {
		ranForOther = true
		return nil, nil
	})
	if err == nil {
		t.Fatalf("expected an unknown auth type to fail")
	}

	if ranForOther {
		t.Fatalf("expected handler not to run for an unknown auth type")
	}
}

func TestIdentity_SendProtectedForwardsToKernelWithOwnerPKR(t *testing.T) {
	kernel := &fakeKernel{}
	registry := NewPrincipalRegistry(kernel)
	pkr := registry.CreatePrincipal(TopLevel)

	identity, err := NewIdentity(registry, pkr, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := identity.SendProtected("hello", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(kernel.sent) != 1 || kernel.sent[0] != "hello" {
		t.Fatalf("expected the kernel to receive the forwarded message, got %v", kernel.sent)
	}
}

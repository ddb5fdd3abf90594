package msecurity

import "testing"

func TestRWS_OwnerAlwaysMember(t *testing.T) {
	owner := PKR("owner")
	rws := NewRWS(owner)

	if !rws.CanRead(owner) || !rws.CanWrite(owner) || !rws.CanGrant(owner) {
		t.Fatalf("expected owner to hold read, write and grant by default")
	}
}

func TestRWS_WriteImpliesRead(t *testing.T) {
	owner := PKR("owner")
	other := PKR("other")
	rws := NewRWS(owner)

	rws.AddWriter(other)

	if !rws.CanRead(other) {
		t.Fatalf("expected AddWriter to also grant read, preserving write subset read invariant")
	}

	if !rws.CanWrite(other) {
		t.Fatalf("expected other to hold write after AddWriter")
	}
}

func TestRWS_RemoveReaderAlsoRemovesWrite(t *testing.T) {
	owner := PKR("owner")
	other := PKR("other")
	rws := NewRWS(owner)

	rws.AddWriter(other)
	rws.RemoveReader(other)

	if rws.CanRead(other) || rws.CanWrite(other) {
		t.Fatalf("expected removing read to also remove write, preserving write ⊆ read invariant")
	}
}

func TestRWS_OwnerCannotBeRemoved(t *testing.T) {
	owner := PKR("owner")
	rws := NewRWS(owner)

	if rws.RemoveReader(owner) {
		t.Fatalf("expected RemoveReader on the owner to report failure")
	}

	if rws.RemoveWriter(owner) {
		t.Fatalf("expected RemoveWriter on the owner to report failure")
	}

	if !rws.CanRead(owner) || !rws.CanWrite(owner) {
		t.Fatalf("expected owner access to remain intact after a rejected removal")
	}
}

func TestRWS_RemoveWriterLeavesReadIntact(t *testing.T) {
	owner := PKR("owner")
	other := PKR("other")
	rws := NewRWS(owner)

	rws.AddWriter(other)
	rws.RemoveWriter(other)

	if !rws.CanRead(other) {
		t.Fatalf("expected read access to survive RemoveWriter")
	}

	if rws.CanWrite(other) {
		t.Fatalf("expected write access to be revoked")
	}
}

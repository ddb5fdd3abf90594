package msecurity

// RWS (ReaderWriterSet) tracks which PKRs are authorized for read,
// write and grant on one owned resource. Invariants: the owner is
// always a member of all three sets; write is always a subset of
// read ∪ {owner}.
type RWS struct {
	owner   PKR
	readers map[PKR]struct{}
	writers map[PKR]struct{}
	granters map[PKR]struct{}
}

// NewRWS constructs an RWS owned by owner, with owner already a member
// of all three sets.
func NewRWS(owner PKR) *RWS {
	r := &RWS{
		owner:    owner,
		readers:  map[PKR]struct{}{owner: {}},
		writers:  map[PKR]struct{}{owner: {}},
		granters: map[PKR]struct{}{owner: {}},
	}

	return r
}

func (r *RWS) CanRead(pkr PKR) bool {
	_, ok := r.readers[pkr]
	return ok
}

func (r *RWS) CanWrite(pkr PKR) bool {
	_, ok := r.writers[pkr]
	return ok
}

func (r *RWS) CanGrant(pkr PKR) bool {
	_, ok := r.granters[pkr]
	return ok
}

// AddReader grants pkr read access. A pkr gaining write access must
// already have (or concurrently gain) read access to preserve
// write ⊆ read ∪ {owner}; AddWriter enforces that by adding to readers
// too.
func (r *RWS) AddReader(pkr PKR) { r.readers[pkr] = struct{}{} }

// AddWriter grants pkr write access, implicitly granting read as well
// so that write ⊆ read ∪ {owner} holds.
func (r *RWS) AddWriter(pkr PKR) {
	r.readers[pkr] = struct{}{}
	r.writers[pkr] = struct{}{}
}

// RemoveReader revokes read access. The owner can never be removed.
func (r *RWS) RemoveReader(pkr PKR) bool {
	if pkr == r.owner {
		return false
	}

	delete(r.readers, pkr)
	delete(r.writers, pkr) // write ⊆ read, so losing read loses write too

	return true
}

// RemoveWriter revokes write access only, leaving read access intact.
// The owner can never be removed.
func (r *RWS) RemoveWriter(pkr PKR) bool {
	if pkr == r.owner {
		return false
	}

	delete(r.writers, pkr)

	return true
}

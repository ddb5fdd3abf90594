// Package msecurity implements the capability/permission layer:
// Principals identified by opaque PKRs, ReaderWriterSets authorizing
// read/write/grant access to an owned resource, and the Identity bundle
// that mediates sendProtected through a kernel.
package msecurity

import "github.com/LerianStudio/mdispatch/common"

// Kind identifies what a Principal represents.
type Kind string

const (
	TopLevel   Kind = "TopLevel"
	FriendKind Kind = "Friend"
	Resource   Kind = "Resource"
)

// Principal is a capability holder: a stable UUID plus a Kind
// distinguishing how it participates (a top-level actor, a connected
// Friend, or a Resource being protected).
type Principal struct {
	ID   string
	Kind Kind
}

// NewPrincipal mints a Principal of kind with a fresh UUIDv7 ID.
func NewPrincipal(kind Kind) Principal {
	return Principal{ID: common.GenerateUUIDv7().String(), Kind: kind}
}

// PKR ("public key record") is an opaque token referring to a Principal
// via a PrincipalRegistry. It carries no information interpretable
// outside the registry that minted it.
type PKR string

package msecurity

import (
	"fmt"
	"sync"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
)

// Kernel is the minimal surface a PrincipalRegistry and the Identities it
// builds need from a MessageSystem: a capability-checked send. Defined
// here (not imported from pkg/msystem) to avoid a dependency cycle,
// since pkg/msystem itself depends on msecurity.
type Kernel interface {
	SendProtected(owner PKR, message any, options map[string]any) (any, error)
}

// PrincipalRegistry is the single source of truth mapping PKRs to
// Principals for one process. Per the design notes, it is explicitly
// constructed at startup and passed into the Subsystems that need it,
// rather than held as an implicit package-global singleton.
type PrincipalRegistry struct {
	mu         sync.RWMutex
	principals map[PKR]Principal
	kernel     Kernel
}

// NewPrincipalRegistry constructs an empty registry bound to kernel,
// used by Identities built from it to satisfy sendProtected.
func NewPrincipalRegistry(kernel Kernel) *PrincipalRegistry {
	return &PrincipalRegistry{
		principals: make(map[PKR]Principal),
		kernel:     kernel,
	}
}

// CreatePrincipal mints a new Principal of kind, registers it under a
// fresh opaque PKR, and returns that PKR.
func (r *PrincipalRegistry) CreatePrincipal(kind Kind) PKR {
	p := NewPrincipal(kind)
	pkr := PKR(common.GenerateUUIDv7().String())

	r.mu.Lock()
	r.principals[pkr] = p
	r.mu.Unlock()

	return pkr
}

// ResolvePKR returns the Principal pkr refers to, or a PermissionError
// if pkr is not known to this registry.
func (r *PrincipalRegistry) ResolvePKR(pkr PKR) (Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.principals[pkr]
	if !ok {
		return Principal{}, common.PermissionError{
			Code:    cn.ErrInvalidPKR.Error(),
			Title:   "Invalid PKR",
			Message: fmt.Sprintf("PKR %q does not resolve to a known principal", pkr),
		}
	}

	return p, nil
}

// ListPrincipals returns every (PKR, Principal) pair currently
// registered.
func (r *PrincipalRegistry) ListPrincipals() map[PKR]Principal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[PKR]Principal, len(r.principals))
	for k, v := range r.principals {
		out[k] = v
	}

	return out
}

package msecurity

import (
	"fmt"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
)

// AuthType names which RWS set requireAuth consults.
type AuthType string

const (
	AuthRead  AuthType = "read"
	AuthWrite AuthType = "write"
	AuthGrant AuthType = "grant"
)

// Identity bundles a registry, an owned RWS and a kernel reference into
// the capability-checked messaging surface exposed to a Friend or
// TopLevel Principal.
type Identity struct {
	registry *PrincipalRegistry
	ownerPKR PKR
	kernel   Kernel
	rws      *RWS
}

// NewIdentity validates registry, resolves ownerPKR and requires kernel
// to be non-nil (kernel.SendProtected callable), mirroring the stable
// failure messages: "invalid principals registry", "invalid owner PKR",
// "must support sendProtected".
func NewIdentity(registry *PrincipalRegistry, ownerPKR PKR, kernel Kernel) (*Identity, error) {
	if registry == nil {
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Invalid Principals Registry",
			Message: "invalid principals registry",
		}
	}

	if _, err := registry.ResolvePKR(ownerPKR); err != nil {
		return nil, common.ValidationError{
			Code:    cn.ErrInvalidPKR.Error(),
			Title:   "Invalid Owner PKR",
			Message: "invalid owner PKR",
		}
	}

	if kernel == nil {
		return nil, common.ValidationError{
			Code:    cn.ErrMustSupportSendProtected.Error(),
			Title:   "Kernel Does Not Support sendProtected",
			Message: "must support sendProtected",
		}
	}

	return &Identity{
		registry: registry,
		ownerPKR: ownerPKR,
		kernel:   kernel,
		rws:      NewRWS(ownerPKR),
	}, nil
}

func (id *Identity) CanRead(pkr PKR) bool  { return id.rws.CanRead(pkr) }
func (id *Identity) CanWrite(pkr PKR) bool { return id.rws.CanWrite(pkr) }
func (id *Identity) CanGrant(pkr PKR) bool { return id.rws.CanGrant(pkr) }

// RequireAuth runs handler iff id's owner has the permission named by
// authType; otherwise it returns a PermissionError without running
// handler. An unknown authType or a nil handler are ValidationErrors.
func (id *Identity) RequireAuth(authType AuthType, handler func() (any, error)) (any, error) {
	if handler == nil {
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Invalid Handler",
			Message: "handler must be a function",
		}
	}

	var allowed bool

	switch authType {
	case AuthRead:
		allowed = id.CanRead(id.ownerPKR)
	case AuthWrite:
		allowed = id.CanWrite(id.ownerPKR)
	case AuthGrant:
		allowed = id.CanGrant(id.ownerPKR)
	default:
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Unknown Auth Type",
			Message: "unknown auth type",
		}
	}

	if !allowed {
		return nil, common.PermissionError{
			Code:    cn.ErrPermissionDenied.Error(),
			Title:   "Permission Denied",
			Message: fmt.Sprintf("owner lacks %s permission", authType),
		}
	}

	return handler()
}

// RequireRead, RequireWrite and RequireGrant are RequireAuth wrappers
// fixed to their respective AuthType.
func (id *Identity) RequireRead(handler func() (any, error)) (any, error) {
	return id.RequireAuth(AuthRead, handler)
}

func (id *Identity) RequireWrite(handler func() (any, error)) (any, error) {
	return id.RequireAuth(AuthWrite, handler)
}

func (id *Identity) RequireGrant(handler func() (any, error)) (any, error) {
	return id.RequireAuth(AuthGrant, handler)
}

// GrantReader gives target read access, if actor holds grant. Returns
// false (no side effects) if actor lacks grant.
func (id *Identity) GrantReader(actor, target PKR) bool {
	if !id.CanGrant(actor) {
		return false
	}

	id.rws.AddReader(target)

	return true
}

// GrantWriter gives target write access, if actor holds grant.
func (id *Identity) GrantWriter(actor, target PKR) bool {
	if !id.CanGrant(actor) {
		return false
	}

	id.rws.AddWriter(target)

	return true
}

// RevokeReader removes target's read access, if actor holds grant.
func (id *Identity) RevokeReader(actor, target PKR) bool {
	if !id.CanGrant(actor) {
		return false
	}

	return id.rws.RemoveReader(target)
}

// RevokeWriter removes target's write access, if actor holds grant.
func (id *Identity) RevokeWriter(actor, target PKR) bool {
	if !id.CanGrant(actor) {
		return false
	}

	return id.rws.RemoveWriter(target)
}

// Promote elevates target from reader to writer, if actor holds grant.
func (id *Identity) Promote(actor, target PKR) bool {
	return id.GrantWriter(actor, target)
}

// Demote removes target's write access while leaving read access
// intact, if actor holds grant.
func (id *Identity) Demote(actor, target PKR) bool {
	return id.RevokeWriter(actor, target)
}

// SendProtected forwards to kernel.SendProtected(ownerPKR, message,
// options), the capability-checked entry point into the dispatch core.
func (id *Identity) SendProtected(message any, options map[string]any) (any, error) {
	return id.kernel.SendProtected(id.ownerPKR, message, options)
}

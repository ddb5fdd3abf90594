// Package msystem wires the facet lifecycle engine, the dispatch core
// and the capability layer together into one root MessageSystem:
// registering child Subsystems, building them, and mediating
// capability-checked sends between them.
package msystem

import (
	"context"
	"fmt"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/common/mlog"
	"github.com/LerianStudio/mdispatch/pkg/mdispatch"
	"github.com/LerianStudio/mdispatch/pkg/msecurity"
	"github.com/LerianStudio/mdispatch/pkg/msubsystem"
)

// processorFacet is the minimal shape msystem needs from whichever
// facet a Subsystem chose as its coreProcessor (ProcessorFacet or
// SynchronousFacet) to deliver a protected send.
type processorFacet interface {
	Accept(ctx context.Context, message *mdispatch.Message, currentPiece any) (bool, error)
}

// MessageSystem is the root Subsystem. It owns the PrincipalRegistry
// used to mint and resolve PKRs, and offers the capability-checked
// sendProtected surface that Identity and Friend forward through.
//
// MessageSystem satisfies msecurity.Kernel (owner, message, options)
// directly, and msecurity.FriendKernel (friend, message, options)
// through the adapter its FriendKernel method returns: target resolution for those two calls is implicit, taken from the
// leading path segment of the *mdispatch.Message against the
// MessageSystem's own registered children. Callers that already hold a
// specific target Subsystem should use SendProtectedTo instead.
type MessageSystem struct {
	*msubsystem.Subsystem

	registry *msecurity.PrincipalRegistry
	logger   mlog.Logger
	onError  func(err error, meta map[string]any)
}

// New constructs a MessageSystem named name, rooting the Subsystem tree.
// Its own PrincipalRegistry is constructed bound to this system as the
// Kernel, per the design notes' rejection of an implicit process-global
// registry.
func New(name string, logger mlog.Logger) (*MessageSystem, error) {
	root, err := msubsystem.New(name, logger)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = &mlog.NoneLogger{}
	}

	ms := &MessageSystem{
		Subsystem: root,
		logger:    logger,
		onError:   func(error, map[string]any) {},
	}
	ms.registry = msecurity.NewPrincipalRegistry(ms)

	return ms, nil
}

// Registry returns the MessageSystem's PrincipalRegistry.
func (ms *MessageSystem) Registry() *msecurity.PrincipalRegistry { return ms.registry }

// SetOnError installs the callback SendError forwards to.
func (ms *MessageSystem) SetOnError(fn func(err error, meta map[string]any)) {
	if fn != nil {
		ms.onError = fn
	}
}

// RegisterSubsystem adds sub as a child of the root, naming it with
// sub.Name(), and builds it immediately if it is not already built.
func (ms *MessageSystem) RegisterSubsystem(ctx context.Context, sub *msubsystem.Subsystem) error {
	if err := ms.Subsystem.AddChild(sub.Name(), sub); err != nil {
		return err
	}

	if !sub.IsBuilt() {
		return sub.Build(ctx)
	}

	return nil
}

// resolveTarget finds the immediate child whose name is message.Path's
// leading segment (e.g. "billing/charge" routes to the "billing"
// child). A message addressed directly at the root (no matching child)
// falls back to the root Subsystem itself.
func (ms *MessageSystem) resolveTarget(path string) *msubsystem.Subsystem {
	seg := path

	for i, c := range path {
		if c == '/' {
			seg = path[:i]
			break
		}
	}

	if child, ok := ms.Subsystem.Child(seg); ok {
		return child
	}

	return ms.Subsystem
}

// SendProtectedTo validates target is non-nil and exposes a
// coreProcessor capable of sendProtected, then forwards message to its
// Accept.
func (ms *MessageSystem) SendProtectedTo(target *msubsystem.Subsystem, message *mdispatch.Message, options map[string]any) (any, error) {
	if target == nil {
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Invalid Target",
			Message: "sendProtected target must not be nil",
		}
	}

	proc, ok := target.CoreProcessor().(processorFacet)
	if !ok {
		return nil, common.PermissionError{
			EntityType: target.GetNameString(),
			Code:       cn.ErrMustSupportSendProtected.Error(),
			Title:      "Target Lacks Processor",
			Message:    fmt.Sprintf("target %q must support sendProtected", target.GetNameString()),
		}
	}

	var currentPiece any
	if options != nil {
		currentPiece = options["currentPiece"]
	}

	return proc.Accept(context.Background(), message, currentPiece)
}

// SendProtected implements msecurity.Kernel: owner is the already-
// resolved/authorized PKR (capability gating happens in the caller's
// Identity wrapper before this is reached); message must be
// *mdispatch.Message. The target Subsystem is resolved from the
// message's path.
func (ms *MessageSystem) SendProtected(owner msecurity.PKR, message any, options map[string]any) (any, error) {
	msg, ok := message.(*mdispatch.Message)
	if !ok {
		return nil, common.ValidationError{
			Code:    cn.ErrBadRequest.Error(),
			Title:   "Invalid Message",
			Message: "sendProtected message must be a *mdispatch.Message",
		}
	}

	return ms.SendProtectedTo(ms.resolveTarget(msg.Path), msg, options)
}

// friendKernel adapts MessageSystem to msecurity.FriendKernel: Friend's
// SendProtected has a distinct signature from msecurity.Kernel's (it
// carries the *Friend itself rather than a bare PKR), so it cannot be a
// second method on MessageSystem with the same name.
type friendKernel struct{ ms *MessageSystem }

func (k friendKernel) SendProtected(friend *msecurity.Friend, message any, options map[string]any) (any, error) {
	return k.ms.SendProtected(friend.PKR, message, options)
}

// FriendKernel returns the msecurity.FriendKernel adapter for this
// MessageSystem, used when constructing Friends that should forward
// sendProtected here.
func (ms *MessageSystem) FriendKernel() msecurity.FriendKernel {
	return friendKernel{ms: ms}
}

// SendError is the best-effort error channel processors call on
// handler failure; it is logged and forwarded to any installed
// onError callback, never returned to the caller.
func (ms *MessageSystem) SendError(err error, meta map[string]any) {
	ms.logger.Errorf("message dispatch error: %v (meta=%v)", err, meta)
	ms.onError(err, meta)
}

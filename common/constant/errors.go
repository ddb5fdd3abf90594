package constant

import "errors"

// Stable sentinel fragments referenced by the facet lifecycle engine, the
// dispatch core and the capability layer. Tests match on Error() text, so
// these strings are part of the contract and should not be reworded.
var (
	ErrHookAlreadyExists            = errors.New("hook already exists")
	ErrFacetAlreadyExists           = errors.New("facet already exists")
	ErrRequiredAttachMissing        = errors.New("required attach not available")
	ErrDependencyCycle              = errors.New("dependency cycle detected")
	ErrUnknownContract              = errors.New("unknown facet contract")
	ErrNoActiveTransaction          = errors.New("no active transaction")
	ErrTransactionAlreadyOpen       = errors.New("transaction already open")
	ErrFacetSealed                  = errors.New("facet is sealed")
	ErrSubsystemDisposed            = errors.New("subsystem is disposed")
	ErrSubsystemAlreadyBuilt        = errors.New("subsystem already built")
	ErrRouteAlreadyRegistered       = errors.New("route already registered")
	ErrRouteNotFound                = errors.New("no route matches the given path")
	ErrQueueFull                    = errors.New("queue is at capacity")
	ErrQueryOnNonQuery              = errors.New("message is not a query")
	ErrPermissionDenied             = errors.New("principal lacks the required permission")
	ErrNotAMember                   = errors.New("principal is not a member of the set")
	ErrOwnerNotRemovable            = errors.New("owner cannot be removed from its own set")
	ErrFriendNotConnected           = errors.New("friend is not connected")
	ErrMustSupportSendProtected     = errors.New("target must support sendProtected")
	ErrPrincipalNotFound            = errors.New("principal not found")
	ErrInvalidPKR                   = errors.New("PKR does not resolve to a known principal")
	ErrMetadataKeyLengthExceeded    = errors.New("metadata key length exceeded")
	ErrMetadataValueLengthExceeded  = errors.New("metadata value length exceeded")
	ErrInternalServer               = errors.New("internal error")
	ErrUnexpectedFieldsInTheRequest = errors.New("unexpected fields in the request")
	ErrBadRequest                   = errors.New("bad request")
)

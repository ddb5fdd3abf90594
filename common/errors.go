package common

import (
	"fmt"
	"strings"

	cn "github.com/LerianStudio/mdispatch/common/constant"
)

// ValidationError records a Hook or Message that failed shape/contract
// validation before it could be used: a missing required field, a
// duplicate route pattern, a malformed path.
type ValidationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

func (e ValidationError) Unwrap() error { return e.Err }

// DependencyError records a facet dependency that could not be satisfied:
// a missing required attach, or a cycle discovered while ordering hooks.
type DependencyError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e DependencyError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

func (e DependencyError) Unwrap() error { return e.Err }

// BuildError wraps a panic or error recovered from a facet factory or Init
// call during SubsystemBuilder.Build, together with the hook whose
// construction failed.
type BuildError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e BuildError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

func (e BuildError) Unwrap() error { return e.Err }

// RouteNotFoundError records a Router miss: no registered pattern matched
// a Message's path.
type RouteNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e RouteNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("no route found for %s", e.EntityType)
		}

		return "no route found"
	}

	return e.Message
}

func (e RouteNotFoundError) Unwrap() error { return e.Err }

// HandlerError wraps a panic or error raised by a route handler while
// processing a Message.
type HandlerError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e HandlerError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

func (e HandlerError) Unwrap() error { return e.Err }

// PermissionError records an Identity check (canRead/canWrite/canGrant)
// that denied an operation, or a sendProtected call made against a Friend
// that does not support it.
type PermissionError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e PermissionError) Error() string {
	return e.Message
}

func (e PermissionError) Unwrap() error { return e.Err }

// DisposeError aggregates the errors swallowed while tearing down a
// Subsystem's facets in reverse insertion order.
type DisposeError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e DisposeError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

func (e DisposeError) Unwrap() error { return e.Err }

// ValidateInternalError wraps an unclassified error as a BuildError tagged
// with the given entity.
func ValidateInternalError(err error, entityType string) error {
	return BuildError{
		EntityType: entityType,
		Code:       cn.ErrInternalServer.Error(),
		Title:      "Internal Error",
		Message:    "An unexpected error occurred while building or disposing a subsystem.",
		Err:        err,
	}
}

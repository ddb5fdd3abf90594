package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_ErrorIncludesCodeWhenSet(t *testing.T) {
	err := ValidationError{Code: "BAD_REQUEST", Message: "path is required"}
	assert.Equal(t, "BAD_REQUEST - path is required", err.Error())

	bare := ValidationError{Message: "path is required"}
	assert.Equal(t, "path is required", bare.Error())
}

func TestDependencyError_UnwrapReturnsWrappedErr(t *testing.T) {
	wrapped := errors.New("cycle detected")
	err := DependencyError{Message: "build failed", Err: wrapped}

	assert.Equal(t, wrapped, errors.Unwrap(err))
}

func TestBuildError_FallsBackToWrappedErrMessage(t *testing.T) {
	wrapped := errors.New("factory panicked")
	err := BuildError{Err: wrapped}

	assert.Equal(t, "factory panicked", err.Error())

	withMessage := BuildError{Message: "explicit message", Err: wrapped}
	assert.Equal(t, "explicit message", withMessage.Error())
}

func TestRouteNotFoundError_DefaultsToEntityTypeOrGenericMessage(t *testing.T) {
	withEntity := RouteNotFoundError{EntityType: "billing/charge"}
	assert.Equal(t, "no route found for billing/charge", withEntity.Error())

	bare := RouteNotFoundError{}
	assert.Equal(t, "no route found", bare.Error())

	explicit := RouteNotFoundError{Message: "custom message", EntityType: "billing/charge"}
	assert.Equal(t, "custom message", explicit.Error())
}

func TestPermissionError_ErrorIsMessageVerbatim(t *testing.T) {
	err := PermissionError{Message: "actor does not hold grant"}
	assert.Equal(t, "actor does not hold grant", err.Error())
}

func TestDisposeError_FallsBackToWrappedErrMessage(t *testing.T) {
	wrapped := errors.New("dispose failed")
	err := DisposeError{Err: wrapped}

	assert.Equal(t, "dispose failed", err.Error())
}

func TestValidateInternalError_WrapsAsBuildError(t *testing.T) {
	wrapped := errors.New("boom")

	err := ValidateInternalError(wrapped, "gateway")

	var buildErr BuildError
	assert.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "gateway", buildErr.EntityType)
	assert.Equal(t, wrapped, errors.Unwrap(buildErr))
}

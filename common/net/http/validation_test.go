package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationTestPayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct_ReturnsNilForValidPayload(t *testing.T) {
	payload := validationTestPayload{Name: "alice", Email: "alice@example.com"}

	assert.NoError(t, ValidateStruct(&payload))
}

func TestValidateStruct_ReturnsValidationKnownFieldsErrorForMissingField(t *testing.T) {
	payload := validationTestPayload{Email: "alice@example.com"}

	err := ValidateStruct(&payload)
	require.Error(t, err)

	vErr, ok := err.(ValidationKnownFieldsError)
	require.True(t, ok, "expected a ValidationKnownFieldsError, got %T", err)
	assert.Contains(t, vErr.Fields, "name")
}

func TestValidateStruct_ReturnsValidationKnownFieldsErrorForInvalidEmail(t *testing.T) {
	payload := validationTestPayload{Name: "alice", Email: "not-an-email"}

	err := ValidateStruct(&payload)
	require.Error(t, err)

	vErr, ok := err.(ValidationKnownFieldsError)
	require.True(t, ok, "expected a ValidationKnownFieldsError, got %T", err)
	assert.Contains(t, vErr.Fields, "email")
}

func TestValidateStruct_IgnoresNonStructValues(t *testing.T) {
	assert.NoError(t, ValidateStruct("not a struct"))
	assert.NoError(t, ValidateStruct(42))
}

package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "Valid UUIDv4", input: "123e4567-e89b-42d3-a456-426614174000", expected: true},
		{name: "Valid UUIDv7", input: "018e5f6a-7b3c-7def-a456-426614174000", expected: true},
		{name: "Invalid UUID - Missing Segments", input: "123e4567-e89b-12d3-a456", expected: false},
		{name: "Invalid UUID - Extra Characters", input: "123e4567-e89b-12d3-a456-426614174000xyz", expected: false},
		{name: "Invalid UUID - Wrong Version", input: "123e4567-e89b-92d3-a456-426614174000", expected: false},
		{name: "Invalid UUID - Wrong Variant", input: "123e4567-e89b-12d3-c456-426614174000", expected: false},
		{name: "Empty String", input: "", expected: false},
		{name: "Random String", input: "not-a-uuid", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsUUID(tt.input)
			assert.Equal(t, tt.expected, result, "IsUUID(%q) should return %v", tt.input, tt.expected)
		})
	}
}

func Test_GenerateUUIDv7(t *testing.T) {
	u := GenerateUUIDv7()
	assert.NotEqual(t, uuid.Nil, u, "Generated UUIDv7 should not be nil")
	assert.Equal(t, 7, int(u.Version()), "Generated UUID version should be 7")
	assert.Equal(t, 36, len(u.String()), "Generated UUID length should be 36")
	assert.True(t, IsUUID(u.String()), "a freshly generated UUIDv7 must satisfy IsUUID")
}

func TestStructToJSONString(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    string
		expectError bool
	}{
		{
			name:        "Valid Struct",
			input:       struct{ Name string }{Name: "John"},
			expected:    `{"Name":"John"}`,
			expectError: false,
		},
		{
			name:        "Nil Input",
			input:       nil,
			expected:    "null",
			expectError: false,
		},
		{
			name:        "Struct with Multiple Fields",
			input:       struct {
				Name string
				Age  int
			}{Name: "Alice", Age: 30},
			expected:    `{"Name":"Alice","Age":30}`,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := StructToJSONString(tt.input)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.JSONEq(t, tt.expected, result)
			}
		})
	}
}

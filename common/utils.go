package common

import (
	"encoding/json"
	"regexp"

	"github.com/google/uuid"
)

// IsUUID validates if the string passed through is a UUID.
func IsUUID(s string) bool {
	r := regexp.MustCompile("^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[1-7][a-fA-F0-9]{3}-[89abAB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$")
	return r.MatchString(s)
}

// GenerateUUIDv7 generates a new time-ordered UUIDv7, used for Message and
// Principal identifiers so storage and log ordering track creation order.
func GenerateUUIDv7() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// StructToJSONString converts a struct to its JSON string representation.
func StructToJSONString(s any) (string, error) {
	jsonByte, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	return string(jsonByte), nil
}

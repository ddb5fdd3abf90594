package common

import "strings"

// IsNilOrEmpty returns a boolean indicating if a *string is nil or empty.
// It uses TrimSpace so a string "  " and "" will both be considered empty.
func IsNilOrEmpty(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// Package validation rejects user input before any network call is made.
package validation

import (
	"fmt"
	"strings"
)

// Error reports an input field that cannot be submitted.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Text fails when value is empty or whitespace only.
func Text(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Reason: "must not be empty"}
	}
	return nil
}

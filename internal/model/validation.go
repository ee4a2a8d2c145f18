package model

import "fmt"

// ValidationError reports why a raw input failed domain validation.
// It is the only error type the parse functions return.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

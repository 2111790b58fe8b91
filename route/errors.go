package route

import (
	"errors"
	"fmt"
)

// ValidationError reports a coordinate that cannot be placed on the globe.
type ValidationError struct {
	Index int
	Field string
	Value any
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("route coordinate %d: %s=%v fails %s", e.Index, e.Field, e.Value, e.Rule)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package gopaginate

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid pagination config")

// ConfigError reports a pagination request field of the wrong type or value.
// It is returned before any query is executed.
type ConfigError struct {
	// Field is the request field name as it appears in the payload, e.g. "perPage".
	Field string
	// Reason completes the sentence "<field> must be <reason>".
	Reason string
}

func newConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("paginate error: %s must be %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

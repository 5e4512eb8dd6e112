package protocol

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError reports settings that cannot be encoded for the device.
// It is raised before any encoding work starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func newConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

var _ error = (*ConfigurationError)(nil)

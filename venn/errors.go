package venn

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError with errors.Is.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation matches every *ValidationError with errors.Is.
	ErrValidation = errors.New("validation error")
)

// ConfigurationError reports a request that can never succeed as configured:
// no inputs, too many inputs, an unknown mode, normalizing against an empty
// union, or a diagram that has no template.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrConfiguration, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError reports an input that cannot be turned into a set. Index is
// the position of the offending input.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: input %d: %s", ErrValidation, e.Index, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func configurationErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

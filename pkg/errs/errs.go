// Package errs holds the sentinel errors shared by the containers and the index.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a bad key, prefix or construction parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSuchElement is returned when an exhausted iterator is advanced.
	ErrNoSuchElement = errors.New("no such element")
)

// Invalidf wraps ErrInvalidArgument with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

package manager

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a structure is malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned when an adaptor is misconfigured or
	// stacked on an incompatible manager.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrGeometry is returned when a structure cannot be handled by a layer,
	// e.g. an atom outside the unit cell or a non-periodic k-space request.
	ErrGeometry = errors.New("invalid geometry")

	// ErrInconsistent is returned when a rebuild produced index or offset
	// tables that disagree with each other.
	ErrInconsistent = errors.New("inconsistent cluster tables")

	// ErrAmbiguousOrder is returned by ClusterCount for order 1, which can
	// mean centers only or centers plus ghosts. Use Size or SizeWithGhosts.
	ErrAmbiguousOrder = errors.New("ambiguous cluster order")

	// ErrReadOnly is returned when a frozen manager is asked to take a new
	// structure.
	ErrReadOnly = errors.New("read-only manager")
)

// ConfigError describes a rejected adaptor option or stacking.
//
// It unwraps to ErrConfiguration.
type ConfigError struct {
	Adaptor string
	Option  string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("%s: %s", e.Adaptor, e.Reason)
	}
	return fmt.Sprintf("%s: option %q: %s", e.Adaptor, e.Option, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// GeometryError describes a structure a layer cannot process.
//
// It unwraps to ErrGeometry and, when set, to the underlying cause.
type GeometryError struct {
	Adaptor string
	Reason  string
	cause   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Adaptor, e.Reason)
}

func (e *GeometryError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrGeometry}
	}
	return []error{ErrGeometry, e.cause}
}

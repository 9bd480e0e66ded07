package neighborhood

import (
	"errors"
	"fmt"

	"github.com/hupe1980/neighborhood/manager"
	"github.com/hupe1980/neighborhood/snapshot"
)

var (
	// ErrInvalidInput is returned for structures or arguments that cannot
	// be processed.
	ErrInvalidInput = manager.ErrInvalidInput

	// ErrConfiguration is returned when a stack cannot be assembled.
	ErrConfiguration = manager.ErrConfiguration

	// ErrGeometry is returned when a structure does not fit an adaptor.
	ErrGeometry = manager.ErrGeometry

	// ErrInconsistent is returned when a rebuilt layer violates its own
	// bookkeeping.
	ErrInconsistent = manager.ErrInconsistent

	// ErrAmbiguousOrder is returned for order-1 cluster counts; use Size
	// or SizeWithGhosts.
	ErrAmbiguousOrder = manager.ErrAmbiguousOrder

	// ErrReadOnly is returned when a restored stack is given a new
	// structure.
	ErrReadOnly = manager.ErrReadOnly

	// ErrCorruptSnapshot is returned for snapshot files that cannot be
	// decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrNotUpdated is returned by operations that need a structure.
	ErrNotUpdated = errors.New("no structure")
)

// ErrInvalidCutoff indicates a rejected cutoff hyper-parameter.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidCutoff struct {
	Adaptor string
	Option  string
	cause   error
}

func (e *ErrInvalidCutoff) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Option, e.cause)
}

func (e *ErrInvalidCutoff) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *manager.ConfigError
	if errors.As(err, &ce) && (ce.Option == "cutoff" || ce.Option == "kcut") {
		return &ErrInvalidCutoff{Adaptor: ce.Adaptor, Option: ce.Option, cause: err}
	}

	// Snapshot format errors.
	if errors.Is(err, snapshot.ErrCorrupt) ||
		errors.Is(err, snapshot.ErrInvalidMagic) ||
		errors.Is(err, snapshot.ErrInvalidVersion) ||
		errors.Is(err, snapshot.ErrUnknownCodec) ||
		errors.Is(err, snapshot.ErrUnknownCompression) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}

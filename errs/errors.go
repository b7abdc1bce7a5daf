// Package errs defines the sentinel error values shared across pixelstack.
//
// Call sites wrap these sentinels with fmt.Errorf("%w: detail", ...) so that
// callers can classify failures with errors.Is while still receiving a
// descriptive message.
package errs

import "errors"

var (
	// ErrInvalidDimension indicates a construction-time dimension or
	// pixel-size violation (any dimension < 1, pixel size < 1).
	ErrInvalidDimension = errors.New("invalid stack dimension")

	// ErrInvalidArgument indicates malformed borrowed-region parameters,
	// such as a nil region or a stride that is not a multiple of the
	// pixel size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStackDisposed indicates an operation on a stack whose backing
	// region has already been released.
	ErrStackDisposed = errors.New("stack disposed")

	// ErrIncompatibleStack indicates a pairwise operation between stacks
	// whose dimensions or slice order do not match, or whose right-hand
	// operand is disposed.
	ErrIncompatibleStack = errors.New("incompatible stack")

	// ErrIndexOutOfRange indicates an addressing request outside the
	// stack bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidOperation indicates a structurally invalid request, such
	// as copying from a disposed source, an aliasing region copy, or
	// restoring a snapshot into a stack of a different shape.
	ErrInvalidOperation = errors.New("invalid operation")
)

// Package errs defines the sentinel errors shared across blockstore's packages.
//
// Callers should compare against these values with errors.Is; error messages
// produced by the package wrap the sentinel with additional context via
// fmt.Errorf("%w: ...", ...).
package errs

import "errors"

var (
	// ErrInvalidDescriptor is returned by Open when the file descriptor
	// preamble's version or tag does not match the expected values.
	ErrInvalidDescriptor = errors.New("blockstore: invalid file descriptor")

	// ErrTruncatedHeader is returned when fewer than block.Header.Size()
	// bytes are available where a header was expected.
	ErrTruncatedHeader = errors.New("blockstore: truncated block header")

	// ErrIntegrityMismatch is returned by a payload-aware header read when
	// the stored digest does not match the recomputed digest of the payload.
	ErrIntegrityMismatch = errors.New("blockstore: payload digest mismatch")

	// ErrOutOfBounds is returned when a block index is >= Store.Len().
	ErrOutOfBounds = errors.New("blockstore: block index out of bounds")

	// ErrClosed is returned by any Store operation performed after Close.
	ErrClosed = errors.New("blockstore: store is closed")

	// ErrHasherMismatch is returned by Open when the first block found during
	// indexing declares a size that runs past end of file, which is how a
	// Hasher whose digest width differs from the file's shows up. A genuinely
	// truncated first block yields the same error.
	ErrHasherMismatch = errors.New("blockstore: hasher digest width mismatch")
)

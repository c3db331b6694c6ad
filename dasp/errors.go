package dasp

import "github.com/pkg/errors"

// Sentinel error kinds callers can match with errors.Is (spec.md section
// 7). DegenerateFrame is deliberately not one of these: it is reported by
// returning an empty Result with a nil error, not as a failure.
var (
	// ErrInvalidInput marks a rejected request: mismatched buffer sizes,
	// zero cluster_count, or a non-finite parameter.
	ErrInvalidInput = errors.New("dasp: invalid input")
	// ErrNumericFailure marks a spectral eigensolve that did not converge.
	ErrNumericFailure = errors.New("dasp: numeric failure")
	// ErrCancelled marks cooperative cancellation via context.Context.
	ErrCancelled = errors.New("dasp: cancelled")
)

// Package tdcerr defines the typed error taxonomy that the core packages
// return. Driver code inspects these with errors.Is to decide how to log a
// failure; none of them are retried.
package tdcerr

import "errors"

var (
	// ErrFormat marks a truncated file or a malformed offset file.
	ErrFormat = errors.New("format error")

	// ErrAlloc marks a buffer that could not be acquired.
	ErrAlloc = errors.New("allocation error")

	// ErrMatch marks a Matcher scan that found no anchor within
	// MatchThreshold.
	ErrMatch = errors.New("match error")

	// ErrNotFound marks an overrun lookup, such as FindNthClock asking
	// for a clock tick past the end of the stream.
	ErrNotFound = errors.New("not found")

	// ErrArithmetic marks a degenerate computation, such as a drift
	// regression with a zero denominator.
	ErrArithmetic = errors.New("arithmetic error")
)

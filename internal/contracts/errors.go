package contracts

import "errors"

// Typed errors shared across the scan pipeline.
var (
	// ErrInvalidInput indicates the input text or dictionary was rejected
	// before scanning started (empty text, oversized text, malformed
	// dictionary file). Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternalInconsistency indicates a contract violation between
	// pipeline stages, e.g. a built portfolio referencing a symbol absent
	// from the dictionary. Surfaced to the caller as a defect, never
	// swallowed.
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

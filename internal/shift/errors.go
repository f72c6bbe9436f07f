package shift

import "errors"

var (
	// ErrInvalidConfiguration reports an unusable shift configuration:
	// empty or mismatched candidate/weight lists, bad weights, an empty
	// idle repeat set or a malformed hour window.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRowCountMismatch reports a sampled sequence whose length differs
	// from the partition it is meant to fill.
	ErrRowCountMismatch = errors.New("row count mismatch")
)

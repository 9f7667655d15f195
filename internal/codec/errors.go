package codec

import "errors"

var (
	// ErrMalformed indicates value data that does not decode under its
	// declared type (odd length, missing terminator, short buffer).
	ErrMalformed = errors.New("codec: malformed value data")

	// ErrUnknownType indicates a type tag outside the closed kind set.
	ErrUnknownType = errors.New("codec: unknown value type")
)

package transposition

import "errors"

var (
	// ErrInvalidKey indicates the cipher key has fewer than two unique letters
	// once non-letters and case-insensitive repeats are dropped.
	ErrInvalidKey = errors.New("transposition: cipher key must contain at least 2 unique letters")

	// ErrUnknownMode indicates an operation selector other than encrypt or decrypt.
	ErrUnknownMode = errors.New("transposition: unknown mode")
)

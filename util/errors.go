package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile = errors.New("expected file, got directory")

	// Hashing errors
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
)

package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidChecksum  = errors.New("invalid checksum file")
	ErrTopology         = errors.New("network topology does not match")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "input_size", "output_size")
	Layer   int    // Layer index involved, -1 if none
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Layer >= 0 {
		return fmt.Sprintf("%s: layer %d: %s", e.Type, e.Layer, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns ErrTopology.
func (e *ValidationError) Unwrap() error { return ErrTopology }

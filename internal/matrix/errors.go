package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
	ErrOutOfRange        = errors.New("matrix: index out of range")
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")
	ErrMalformedStream   = errors.New("matrix: malformed stream")
)

// ShapeError describes an operation invoked on incompatibly shaped operands.
type ShapeError struct {
	Op    string // Operation name, e.g. "Dot".
	Left  Shape  // Shape of the receiver.
	Right Shape  // Shape of the argument (zero for unary operations).
	Err   error  // Sentinel the error unwraps to.
}

// NewShapeError returns a ShapeError for a dimension mismatch.
func NewShapeError(op string, left, right Shape) *ShapeError {
	return &ShapeError{Op: op, Left: left, Right: right, Err: ErrDimensionMismatch}
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s and %s: %v", e.Op, e.Left, e.Right, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// IndexError describes an element access outside a matrix's shape.
type IndexError struct {
	Row, Col int
	Shape    Shape
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index (%d,%d) outside %s: %v", e.Row, e.Col, e.Shape, ErrOutOfRange)
}

// Unwrap returns ErrOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

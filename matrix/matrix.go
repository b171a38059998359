// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"io"

	"github.com/born-ml/digits/internal/matrix"
)

// Matrix is a dense row-major float64 matrix.
type Matrix = matrix.Matrix

// Shape is the dimensions of a matrix.
type Shape = matrix.Shape

// ShapeError is the panic value of operations on incompatible shapes.
type ShapeError = matrix.ShapeError

// IndexError is the panic value of out-of-range element access.
type IndexError = matrix.IndexError

// Decoder reads a sequence of matrices in text format.
type Decoder = matrix.Decoder

// Errors.
var (
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrOutOfRange        = matrix.ErrOutOfRange
	ErrInvalidDimensions = matrix.ErrInvalidDimensions
	ErrMalformedStream   = matrix.ErrMalformedStream
)

// New returns a rows×cols matrix of zeros.
func New(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// Full returns a rows×cols matrix with every element set to fill.
func Full(rows, cols int, fill float64) *Matrix {
	return matrix.Full(rows, cols, fill)
}

// FromSlice wraps row-major data as a rows×cols matrix.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// FromRows builds a matrix from equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	return matrix.FromRows(rows)
}

// Column returns a len(values)×1 column vector.
func Column(values ...float64) *Matrix {
	return matrix.Column(values...)
}

// Parse decodes exactly one matrix in text format.
func Parse(s string) (*Matrix, error) {
	return matrix.Parse(s)
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return matrix.NewDecoder(r)
}

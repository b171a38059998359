package matrix

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Shape is the (rows, cols) extent of a matrix.
type Shape struct {
	Rows, Cols int
}

// String returns the shape as "RxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Matrix is a dense row-major matrix of float64 values.
// len(data) == rows*cols always holds.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New creates a rows×cols matrix filled with zeros.
//
// Zero-sized matrices are valid and behave as empty containers.
// Negative dimensions panic with ErrInvalidDimensions.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(&ShapeError{Op: "New", Left: Shape{rows, cols}, Err: ErrInvalidDimensions})
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Full creates a rows×cols matrix with every entry set to fill.
func Full(rows, cols int, fill float64) *Matrix {
	m := New(rows, cols)
	if fill != 0 {
		for i := range m.data {
			m.data[i] = fill
		}
	}
	return m
}

// FromSlice creates a rows×cols matrix backed by a copy of data, which must
// hold exactly rows*cols values in row-major order.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("FromSlice %s: %w", Shape{rows, cols}, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromSlice %s: got %d values: %w", Shape{rows, cols}, len(data), ErrDimensionMismatch)
	}
	m := New(rows, cols)
	copy(m.data, data)
	return m, nil
}

// FromRows creates a matrix from a slice of equally long rows.
// Jagged input is rejected with ErrDimensionMismatch.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		copy(m.data[i*cols:], row)
	}
	return m, nil
}

// Column creates a len(values)×1 column matrix.
func Column(values ...float64) *Matrix {
	m := New(len(values), 1)
	copy(m.data, values)
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Height is an alias for Rows.
func (m *Matrix) Height() int { return m.rows }

// Width is an alias for Cols.
func (m *Matrix) Width() int { return m.cols }

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape { return Shape{m.rows, m.cols} }

// Len returns the number of elements, rows*cols.
func (m *Matrix) Len() int { return len(m.data) }

// IsEmpty reports whether the matrix has no elements.
func (m *Matrix) IsEmpty() bool { return len(m.data) == 0 }

func (m *Matrix) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(&IndexError{Row: i, Col: j, Shape: m.Shape()})
	}
	return i*m.cols + j
}

// At returns the element at row i, column j.
// It panics with an *IndexError if (i, j) is outside the matrix.
func (m *Matrix) At(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set assigns v to the element at row i, column j.
// It panics with an *IndexError if (i, j) is outside the matrix.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

// Raw returns the row-major backing slice. Writes through it modify the
// matrix.
func (m *Matrix) Raw() []float64 {
	return m.data
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(&IndexError{Row: i, Col: 0, Shape: m.Shape()})
	}
	row := make([]float64, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Equal reports whether m and other have the same shape and identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols && floats.Equal(m.data, other.data)
}

// EqualApprox reports whether m and other have the same shape and every
// pair of values differs by at most tol (absolute or relative).
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return m.rows == other.rows && m.cols == other.cols && floats.EqualApprox(m.data, other.data, tol)
}

// ArgMax returns the flat row-major index of the largest element. For a
// column vector this is the row of the maximum; ties resolve to the lowest
// index. It panics with ErrOutOfRange on an empty matrix.
func (m *Matrix) ArgMax() int {
	if len(m.data) == 0 {
		panic(&IndexError{Row: 0, Col: 0, Shape: m.Shape()})
	}
	return floats.MaxIdx(m.data)
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float64 {
	return floats.Sum(m.data)
}

// String returns the matrix in its text serialization format.
func (m *Matrix) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

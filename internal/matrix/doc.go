// Package matrix implements the dense, row-major float64 matrix used by the
// network.
//
// A Matrix stores rows*cols values in one flat slice. Arithmetic never
// mutates its operands: Add, Sub, Scale, Hadamard, Apply, Transpose and Dot
// all return a freshly allocated result, so a *Matrix handed to an operation
// can be shared freely afterwards.
//
// # Errors
//
// Shape and index violations are programming errors. They panic with a
// *ShapeError or *IndexError; both unwrap to the package sentinels
// (ErrDimensionMismatch, ErrOutOfRange, ErrInvalidDimensions), so code that
// recovers can still classify them with errors.Is. Decoding never panics and
// reports ErrMalformedStream.
//
// # Text format
//
// A matrix is written as a "rows cols" header line followed by rows lines of
// cols space-separated values:
//
//	2 3
//	1 2 3
//	4 5 6
//
// Values use the shortest representation that parses back to the same
// float64, so a write/read round trip is exact.
//
// # Performance
//
// Dot transposes its right operand before multiplying so that both operands
// are traversed row by row. Each output element is then a contiguous dot
// product, computed by gonum's floats.Dot kernel. Products large enough to
// amortize goroutine start-up are split across workers by output row.
package matrix

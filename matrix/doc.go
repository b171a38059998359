// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrix used by digits networks.
//
// # Overview
//
// Matrices are row-major and immutable under arithmetic: Dot, Add, Sub,
// Hadamard, Scale, Apply and Transpose all return a new matrix. Shape
// mismatches are programming errors and panic with a *ShapeError that wraps
// ErrDimensionMismatch.
//
// # Basic Usage
//
//	import "github.com/born-ml/digits/matrix"
//
//	func main() {
//	    w, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	    x := matrix.Column(1, 1)
//	    y := w.Dot(x).Add(matrix.Column(0.5, -0.5))
//	    fmt.Print(y) // "2 1\n3.5\n6.5\n"
//	}
//
// # Text Format
//
// WriteTo and Parse use a whitespace-separated text format: a "rows cols"
// header followed by rows lines of cols values. Values are written with the
// shortest representation that parses back to the same float64.
package matrix

package matrix

import (
	"github.com/born-ml/digits/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// minParallelWork is the number of multiply-adds a worker should receive
// before splitting a product across goroutines pays off.
const minParallelWork = 1 << 15

// Dot returns the matrix product m·rhs using the default parallel
// configuration. m.Cols() must equal rhs.Rows(); the result is
// m.Rows()×rhs.Cols().
//
// Dot panics with a *ShapeError wrapping ErrDimensionMismatch when the inner
// dimensions disagree.
func (m *Matrix) Dot(rhs *Matrix) *Matrix {
	return m.DotWith(rhs, parallel.DefaultConfig())
}

// DotWith is Dot with an explicit parallel configuration.
// parallel.Sequential() keeps the whole product on the calling goroutine.
func (m *Matrix) DotWith(rhs *Matrix, cfg parallel.Config) *Matrix {
	if m.cols != rhs.rows {
		panic(NewShapeError("Dot", m.Shape(), rhs.Shape()))
	}
	out := New(m.rows, rhs.cols)
	if out.IsEmpty() {
		return out
	}

	inner := m.cols
	if inner == 0 {
		return out
	}

	// Row j of rhsT is column j of rhs, so every output element is the dot
	// product of two contiguous slices.
	rhsT := rhs.Transpose()
	n := rhs.cols

	kernel := func(start, end int) {
		for i := start; i < end; i++ {
			lhsRow := m.data[i*inner : (i+1)*inner]
			dst := out.data[i*n : (i+1)*n]
			for j := range dst {
				dst[j] = floats.Dot(lhsRow, rhsT.data[j*inner:(j+1)*inner])
			}
		}
	}

	rowWork := inner * n
	cfg.MinChunkSize = max(cfg.MinChunkSize, (minParallelWork+rowWork-1)/rowWork)
	parallel.ForRange(m.rows, kernel, cfg)
	return out
}

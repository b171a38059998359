package matrix

import "gonum.org/v1/gonum/floats"

// mustSameShape panics with a *ShapeError unless m and rhs have equal shapes.
// Element-wise operations never broadcast.
func (m *Matrix) mustSameShape(op string, rhs *Matrix) {
	if m.rows != rhs.rows || m.cols != rhs.cols {
		panic(NewShapeError(op, m.Shape(), rhs.Shape()))
	}
}

// Add returns m + rhs. Both operands must have the same shape.
func (m *Matrix) Add(rhs *Matrix) *Matrix {
	m.mustSameShape("Add", rhs)
	out := New(m.rows, m.cols)
	floats.AddTo(out.data, m.data, rhs.data)
	return out
}

// Sub returns m - rhs. Both operands must have the same shape.
func (m *Matrix) Sub(rhs *Matrix) *Matrix {
	m.mustSameShape("Sub", rhs)
	out := New(m.rows, m.cols)
	floats.SubTo(out.data, m.data, rhs.data)
	return out
}

// Hadamard returns the element-wise product m ⊙ rhs.
// Both operands must have the same shape.
func (m *Matrix) Hadamard(rhs *Matrix) *Matrix {
	m.mustSameShape("Hadamard", rhs)
	out := New(m.rows, m.cols)
	floats.MulTo(out.data, m.data, rhs.data)
	return out
}

// Scale returns c·m.
func (m *Matrix) Scale(c float64) *Matrix {
	out := New(m.rows, m.cols)
	floats.ScaleTo(out.data, c, m.data)
	return out
}

// Apply returns a matrix with fn applied to every element of m.
func (m *Matrix) Apply(fn func(float64) float64) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = fn(v)
	}
	return out
}

// Transpose returns the cols×rows matrix t with t[j][i] == m[i][j].
//
// A matrix with no rows or no columns is returned as an unchanged copy,
// keeping its original shape.
func (m *Matrix) Transpose() *Matrix {
	if m.IsEmpty() {
		return m.Clone()
	}
	out := New(m.cols, m.rows)
	// Column vectors and row vectors share the same backing layout.
	if m.rows == 1 || m.cols == 1 {
		copy(out.data, m.data)
		return out
	}
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			out.data[j*m.rows+i] = v
		}
	}
	return out
}

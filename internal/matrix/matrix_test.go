package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePanicIs runs fn and checks that it panics with an error matching target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

func randomMatrix(rng *rand.Rand, rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := range m.Raw() {
		m.Raw()[i] = rng.Float64()*2 - 1
	}
	return m
}

func TestNew(t *testing.T) {
	m := New(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, Shape{2, 3}, m.Shape())
	assert.Len(t, m.Raw(), 6)
	for _, v := range m.Raw() {
		assert.Zero(t, v)
	}
}

func TestFull(t *testing.T) {
	m := Full(3, 2, 0.25)
	assert.Len(t, m.Raw(), 6)
	for _, v := range m.Raw() {
		assert.Equal(t, 0.25, v)
	}
}

func TestNew_ZeroSized(t *testing.T) {
	for _, s := range []Shape{{0, 0}, {0, 4}, {4, 0}} {
		m := New(s.Rows, s.Cols)
		assert.True(t, m.IsEmpty(), "shape %s", s)
		assert.Equal(t, s, m.Shape())
	}
}

func TestNew_Negative(t *testing.T) {
	requirePanicIs(t, ErrInvalidDimensions, func() { New(-1, 2) })
	requirePanicIs(t, ErrInvalidDimensions, func() { Full(2, -3, 1) })
}

func TestFromSlice(t *testing.T) {
	m, err := FromSlice(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(1, 0))

	_, err = FromSlice(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FromSlice(-2, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestFromSlice_Copies(t *testing.T) {
	data := []float64{1, 2}
	m, err := FromSlice(1, 2, data)
	require.NoError(t, err)

	data[0] = 99
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, m.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Raw())

	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	empty, err := FromRows(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestColumn(t *testing.T) {
	c := Column(1, 2, 3)
	assert.Equal(t, Shape{3, 1}, c.Shape())
	assert.Equal(t, 2.0, c.At(1, 0))
}

func TestAtSet(t *testing.T) {
	m := New(2, 3)
	m.Set(1, 2, 7.5)
	assert.Equal(t, 7.5, m.At(1, 2))
	assert.Equal(t, 7.5, m.Raw()[5], "storage is row-major")
}

func TestAt_OutOfRange(t *testing.T) {
	m := New(2, 3)
	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {5, 5}}
	for _, c := range cases {
		requirePanicIs(t, ErrOutOfRange, func() { m.At(c[0], c[1]) })
		requirePanicIs(t, ErrOutOfRange, func() { m.Set(c[0], c[1], 1) })
	}
	requirePanicIs(t, ErrOutOfRange, func() { m.Row(2) })
}

func TestIndexError_Message(t *testing.T) {
	err := &IndexError{Row: 3, Col: 1, Shape: Shape{2, 2}}
	assert.Contains(t, err.Error(), "(3,1)")
	assert.Contains(t, err.Error(), "2x2")
}

func TestRow_IsCopy(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	row := m.Row(1)
	assert.Equal(t, []float64{3, 4}, row)
	row[0] = 0
	assert.Equal(t, 3.0, m.At(1, 0))
}

func TestClone(t *testing.T) {
	m := Full(2, 2, 1)
	c := m.Clone()
	require.True(t, m.Equal(c))

	c.Set(0, 0, 5)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.False(t, m.Equal(c))
}

func TestEqual_ShapeMatters(t *testing.T) {
	a := New(2, 3)
	b := New(3, 2)
	assert.False(t, a.Equal(b))
	assert.False(t, a.EqualApprox(b, 1))
}

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, Column(0.1, 0.3, 0.9, 0.2).ArgMax())
	assert.Equal(t, 0, Column(1, 1, 1).ArgMax(), "ties resolve to lowest index")
	requirePanicIs(t, ErrOutOfRange, func() { New(0, 1).ArgMax() })
}

func TestSum(t *testing.T) {
	assert.Equal(t, 10.0, Column(1, 2, 3, 4).Sum())
	assert.Zero(t, New(0, 0).Sum())
}

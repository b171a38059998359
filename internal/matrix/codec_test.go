package matrix

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTo_Format(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2.5, -3}, {0, 1e-7, 4}})

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)

	want := "2 3\n1 2.5 -3\n0 1e-07 4\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, want, m.String())
}

func TestRoundTrip_BitExact(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := randomMatrix(rng, 7, 5)
	m.Set(0, 0, math.SmallestNonzeroFloat64)
	m.Set(0, 1, math.MaxFloat64)
	m.Set(0, 2, -0.1)
	m.Set(0, 3, math.Inf(-1))

	text, err := m.MarshalText()
	require.NoError(t, err)

	var back Matrix
	require.NoError(t, back.UnmarshalText(text))
	assert.True(t, back.Equal(m))
}

func TestRoundTrip_Empty(t *testing.T) {
	for _, s := range []Shape{{0, 0}, {0, 3}, {3, 0}} {
		m := New(s.Rows, s.Cols)
		back, err := Parse(m.String())
		require.NoError(t, err)
		assert.Equal(t, s, back.Shape())
	}
}

func TestDecoder_Sequence(t *testing.T) {
	a := Column(1, 2)
	b := mustRows(t, [][]float64{{3, 4, 5}})

	var buf bytes.Buffer
	_, err := a.WriteTo(&buf)
	require.NoError(t, err)
	_, err = b.WriteTo(&buf)
	require.NoError(t, err)

	dec := NewDecoder(&buf)
	gotA, err := dec.Decode()
	require.NoError(t, err)
	gotB, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, gotA.Equal(a))
	assert.True(t, gotB.Equal(b))

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_WhitespaceTolerant(t *testing.T) {
	// Trailing spaces and blank lines, as older writers produced them.
	m, err := Parse("2 2\n1 2 \n\n3 4 \n\n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Raw())
}

func TestDecoder_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing cols", "2"},
		{"non-numeric rows", "x 2\n1 2\n3 4\n"},
		{"non-numeric cols", "2 y\n1 2\n3 4\n"},
		{"negative rows", "-1 2\n"},
		{"negative cols", "1 -2\n"},
		{"fractional header", "1.5 2\n1 2\n"},
		{"truncated values", "2 2\n1 2\n3\n"},
		{"non-numeric value", "1 2\n1 abc\n"},
		{"huge header", "100000 100000\n"},
		{"trailing token", "1 1\n1\n2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedStream)
		})
	}
}

func TestDecoder_TruncatedIsUnexpectedEOF(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("3 1\n1\n")).Decode()
	assert.ErrorIs(t, err, ErrMalformedStream)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestDecoder_ReadError(t *testing.T) {
	dec := NewDecoder(failingReader{})
	_, err := dec.Decode()
	assert.ErrorIs(t, err, ErrMalformedStream)
	assert.ErrorContains(t, err, "disk on fire")

	// Errors are sticky.
	_, again := dec.Decode()
	assert.Equal(t, err, again)
}

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return 0, io.ErrShortWrite
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriteTo_PropagatesError(t *testing.T) {
	m := Full(100, 100, 1)
	_, err := m.WriteTo(&shortWriter{limit: 10})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

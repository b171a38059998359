package network

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/born-ml/digits/internal/matrix"
)

// WriteTo writes the network in text form: the layer widths as a 1×L
// matrix, then every bias column, then every weight matrix, each in the
// matrix text format. It implements io.WriterTo.
func (n *Network) WriteTo(w io.Writer) (int64, error) {
	sizes := matrix.New(1, len(n.sizes))
	for i, s := range n.sizes {
		sizes.Set(0, i, float64(s))
	}

	blocks := make([]*matrix.Matrix, 0, 1+len(n.biases)+len(n.weights))
	blocks = append(blocks, sizes)
	blocks = append(blocks, n.biases...)
	blocks = append(blocks, n.weights...)

	var total int64
	for _, m := range blocks {
		written, err := m.WriteTo(w)
		total += written
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Read decodes a network written by WriteTo. Every block's shape is checked
// against the layer widths; any inconsistency, truncation or non-numeric
// token is reported as matrix.ErrMalformedStream.
func Read(r io.Reader) (*Network, error) {
	dec := matrix.NewDecoder(r)

	header, err := decodeBlock(dec, "layer sizes")
	if err != nil {
		return nil, err
	}
	sizes, err := sizesFromHeader(header)
	if err != nil {
		return nil, err
	}

	n := &Network{
		sizes:   sizes,
		weights: make([]*matrix.Matrix, len(sizes)-1),
		biases:  make([]*matrix.Matrix, len(sizes)-1),
	}
	for l := range n.biases {
		b, err := decodeBlock(dec, fmt.Sprintf("biases %d", l))
		if err != nil {
			return nil, err
		}
		if err := expectShape(b, matrix.Shape{Rows: sizes[l+1], Cols: 1}, "biases", l); err != nil {
			return nil, err
		}
		n.biases[l] = b
	}
	for l := range n.weights {
		w, err := decodeBlock(dec, fmt.Sprintf("weights %d", l))
		if err != nil {
			return nil, err
		}
		if err := expectShape(w, matrix.Shape{Rows: sizes[l+1], Cols: sizes[l]}, "weights", l); err != nil {
			return nil, err
		}
		n.weights[l] = w
	}
	return n, nil
}

func decodeBlock(dec *matrix.Decoder, what string) (*matrix.Matrix, error) {
	m, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", matrix.ErrMalformedStream, what, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return m, nil
}

func sizesFromHeader(header *matrix.Matrix) ([]int, error) {
	if header.Rows() != 1 {
		return nil, fmt.Errorf("%w: layer sizes must be a single row, got %s", matrix.ErrMalformedStream, header.Shape())
	}
	sizes := make([]int, header.Cols())
	for i, v := range header.Raw() {
		if v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
			return nil, fmt.Errorf("%w: layer %d width %v is not a positive integer", matrix.ErrMalformedStream, i, v)
		}
		sizes[i] = int(v)
	}
	if err := validateSizes(sizes); err != nil {
		return nil, fmt.Errorf("%w: %w", matrix.ErrMalformedStream, err)
	}
	return sizes, nil
}

func expectShape(m *matrix.Matrix, want matrix.Shape, what string, l int) error {
	if m.Shape() != want {
		return fmt.Errorf("%w: %s %d has shape %s, want %s", matrix.ErrMalformedStream, what, l, m.Shape(), want)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (n *Network) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := n.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Network) UnmarshalText(text []byte) error {
	decoded, err := Read(bytes.NewReader(text))
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

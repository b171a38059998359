package network

import (
	"errors"
	"fmt"

	"github.com/born-ml/digits/internal/matrix"
	"gonum.org/v1/gonum/floats"
)

// Sentinel errors.
var (
	ErrInvalidTopology = errors.New("network: invalid topology")
	ErrNoSuchLayer     = errors.New("network: no such layer")
)

// Network is a fully connected sigmoid network.
//
// weights[l] is sizes[l+1]×sizes[l] and biases[l] is sizes[l+1]×1 for
// l in [0, len(sizes)-1). Shapes are fixed at construction.
type Network struct {
	sizes   []int
	weights []*matrix.Matrix
	biases  []*matrix.Matrix
}

type options struct {
	weights Initializer
	biases  Initializer
}

// Option configures New.
type Option func(*options)

// WithWeights sets the weight initializer. The default is Zeros.
func WithWeights(init Initializer) Option {
	return func(o *options) { o.weights = init }
}

// WithBiases sets the bias initializer. The default is Zeros.
func WithBiases(init Initializer) Option {
	return func(o *options) { o.biases = init }
}

// New creates a network with the given layer widths, input layer first.
//
// At least two layers are required and every width must be positive.
// Parameters are zero unless an initializer option says otherwise.
func New(sizes []int, opts ...Option) (*Network, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}
	o := options{weights: Zeros(), biases: Zeros()}
	for _, opt := range opts {
		opt(&o)
	}

	n := &Network{
		sizes:   append([]int(nil), sizes...),
		weights: make([]*matrix.Matrix, 0, len(sizes)-1),
		biases:  make([]*matrix.Matrix, 0, len(sizes)-1),
	}
	for l := 1; l < len(sizes); l++ {
		rows, cols := sizes[l], sizes[l-1]

		b := matrix.New(rows, 1)
		o.biases(b, cols, rows)
		n.biases = append(n.biases, b)

		w := matrix.New(rows, cols)
		o.weights(w, cols, rows)
		n.weights = append(n.weights, w)
	}
	return n, nil
}

func validateSizes(sizes []int) error {
	if len(sizes) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidTopology, len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("%w: layer %d has width %d", ErrInvalidTopology, i, s)
		}
	}
	return nil
}

// Sizes returns a copy of the layer widths.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// Layers returns the number of layers, including the input layer.
func (n *Network) Layers() int {
	return len(n.sizes)
}

// InputSize returns the width of the input layer.
func (n *Network) InputSize() int {
	return n.sizes[0]
}

// OutputSize returns the width of the output layer.
func (n *Network) OutputSize() int {
	return n.sizes[len(n.sizes)-1]
}

// Weights returns a copy of the weight matrix of transition l.
func (n *Network) Weights(l int) *matrix.Matrix {
	return n.weights[l].Clone()
}

// Biases returns a copy of the bias column of transition l.
func (n *Network) Biases(l int) *matrix.Matrix {
	return n.biases[l].Clone()
}

// SetWeights replaces the weights of transition l with a copy of w.
func (n *Network) SetWeights(l int, w *matrix.Matrix) error {
	return n.set(n.weights, "weights", l, w)
}

// SetBiases replaces the biases of transition l with a copy of b.
func (n *Network) SetBiases(l int, b *matrix.Matrix) error {
	return n.set(n.biases, "biases", l, b)
}

func (n *Network) set(params []*matrix.Matrix, what string, l int, m *matrix.Matrix) error {
	if l < 0 || l >= len(params) {
		return fmt.Errorf("%s %d of %d: %w", what, l, len(params), ErrNoSuchLayer)
	}
	if m.Shape() != params[l].Shape() {
		return fmt.Errorf("%s %d: %w", what, l, matrix.NewShapeError("Set", params[l].Shape(), m.Shape()))
	}
	params[l] = m.Clone()
	return nil
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	c := &Network{
		sizes:   n.Sizes(),
		weights: make([]*matrix.Matrix, len(n.weights)),
		biases:  make([]*matrix.Matrix, len(n.biases)),
	}
	for l := range n.weights {
		c.weights[l] = n.weights[l].Clone()
		c.biases[l] = n.biases[l].Clone()
	}
	return c
}

// Equal reports whether both networks have identical topology and parameters.
func (n *Network) Equal(other *Network) bool {
	if len(n.sizes) != len(other.sizes) {
		return false
	}
	for i := range n.sizes {
		if n.sizes[i] != other.sizes[i] {
			return false
		}
	}
	for l := range n.weights {
		if !n.weights[l].Equal(other.weights[l]) || !n.biases[l].Equal(other.biases[l]) {
			return false
		}
	}
	return true
}

// mustColumn panics unless m is a rows×1 column.
func mustColumn(op string, m *matrix.Matrix, rows int) {
	if m.Rows() != rows || m.Cols() != 1 {
		panic(matrix.NewShapeError(op, matrix.Shape{Rows: rows, Cols: 1}, m.Shape()))
	}
}

// Classify runs the forward pass and returns the output activation, a
// column of OutputSize() values in (0, 1). It does not modify the network.
//
// input must be an InputSize()×1 column.
func (n *Network) Classify(input *matrix.Matrix) *matrix.Matrix {
	mustColumn("Classify", input, n.InputSize())
	a := input
	for l := range n.weights {
		a = n.weights[l].Dot(a).Add(n.biases[l]).Apply(Sigmoid)
	}
	return a
}

// Loss returns the half squared error 0.5·Σ(output-expected)² of the
// network's output for input.
func (n *Network) Loss(input, expected *matrix.Matrix) float64 {
	mustColumn("Loss", expected, n.OutputSize())
	diff := n.Classify(input).Sub(expected).Raw()
	return 0.5 * floats.Dot(diff, diff)
}

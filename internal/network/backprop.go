package network

import (
	"fmt"

	"github.com/born-ml/digits/internal/matrix"
)

// Gradients holds ∂C/∂W and ∂C/∂b for every layer transition, where C is
// the half squared error of one sample (or the mean over a batch).
// Weights[l] and Biases[l] have the shapes of the network's parameters.
type Gradients struct {
	Weights []*matrix.Matrix
	Biases  []*matrix.Matrix
}

// Add returns g + other.
func (g *Gradients) Add(other *Gradients) *Gradients {
	sum := &Gradients{
		Weights: make([]*matrix.Matrix, len(g.Weights)),
		Biases:  make([]*matrix.Matrix, len(g.Biases)),
	}
	for l := range g.Weights {
		sum.Weights[l] = g.Weights[l].Add(other.Weights[l])
		sum.Biases[l] = g.Biases[l].Add(other.Biases[l])
	}
	return sum
}

// Scale returns c·g.
func (g *Gradients) Scale(c float64) *Gradients {
	scaled := &Gradients{
		Weights: make([]*matrix.Matrix, len(g.Weights)),
		Biases:  make([]*matrix.Matrix, len(g.Biases)),
	}
	for l := range g.Weights {
		scaled.Weights[l] = g.Weights[l].Scale(c)
		scaled.Biases[l] = g.Biases[l].Scale(c)
	}
	return scaled
}

// Backprop computes the gradients of the half squared error between the
// network's output for input and expected, without changing the network.
//
// The forward pass records every pre-activation z and activation a. The
// output error is δ = (a_out - expected) ⊙ σ'(z_out); it is carried back
// one layer at a time as δ = (W[l+1]ᵀ·δ) ⊙ σ'(z[l]). For each transition
// ∂C/∂b = δ and ∂C/∂W = δ·a_inᵀ.
//
// input must be InputSize()×1 and expected OutputSize()×1.
func (n *Network) Backprop(input, expected *matrix.Matrix) *Gradients {
	mustColumn("Backprop", input, n.InputSize())
	mustColumn("Backprop", expected, n.OutputSize())

	transitions := len(n.weights)

	// activations[0] is the input; activations[l+1] is the output of
	// transition l and zs[l] its pre-activation.
	activations := make([]*matrix.Matrix, 0, transitions+1)
	zs := make([]*matrix.Matrix, 0, transitions)

	activations = append(activations, input)
	a := input
	for l := 0; l < transitions; l++ {
		z := n.weights[l].Dot(a).Add(n.biases[l])
		zs = append(zs, z)
		a = z.Apply(Sigmoid)
		activations = append(activations, a)
	}

	g := &Gradients{
		Weights: make([]*matrix.Matrix, transitions),
		Biases:  make([]*matrix.Matrix, transitions),
	}

	last := transitions - 1
	delta := a.Sub(expected).Hadamard(zs[last].Apply(SigmoidPrime))
	g.Biases[last] = delta
	g.Weights[last] = delta.Dot(activations[last].Transpose())

	for l := last - 1; l >= 0; l-- {
		delta = n.weights[l+1].Transpose().Dot(delta).Hadamard(zs[l].Apply(SigmoidPrime))
		g.Biases[l] = delta
		g.Weights[l] = delta.Dot(activations[l].Transpose())
	}
	return g
}

// Apply performs the gradient descent update W -= eta·∂C/∂W and
// b -= eta·∂C/∂b on every transition.
//
// g must come from this network (or one of identical topology); a
// mismatched gradient panics with a *matrix.ShapeError.
func (n *Network) Apply(g *Gradients, eta float64) {
	if len(g.Weights) != len(n.weights) || len(g.Biases) != len(n.biases) {
		panic(fmt.Errorf("Apply: %d/%d gradient layers for %d transitions: %w",
			len(g.Weights), len(g.Biases), len(n.weights), matrix.ErrDimensionMismatch))
	}
	// Compute every update before assigning so a shape panic leaves the
	// network untouched.
	weights := make([]*matrix.Matrix, len(n.weights))
	biases := make([]*matrix.Matrix, len(n.biases))
	for l := range n.weights {
		weights[l] = n.weights[l].Sub(g.Weights[l].Scale(eta))
		biases[l] = n.biases[l].Sub(g.Biases[l].Scale(eta))
	}
	copy(n.weights, weights)
	copy(n.biases, biases)
}

// Learn performs one step of stochastic gradient descent on a single
// sample with learning rate eta.
//
// input must be InputSize()×1 and expected OutputSize()×1, typically a
// one-hot column.
func (n *Network) Learn(input, expected *matrix.Matrix, eta float64) {
	n.Apply(n.Backprop(input, expected), eta)
}

package network

import (
	"math"
	"math/rand"

	"github.com/born-ml/digits/internal/matrix"
)

// Initializer fills a freshly allocated parameter matrix in place.
// fanIn and fanOut are the widths of the layers the matrix connects.
type Initializer func(m *matrix.Matrix, fanIn, fanOut int)

// Zeros leaves parameters at zero.
//
// Every neuron of a hidden layer then starts identical and receives
// identical updates, so the layer behaves like a single neuron. Prefer a
// random initializer for weights when hidden layers are wider than one.
func Zeros() Initializer {
	return func(*matrix.Matrix, int, int) {}
}

// Constant sets every parameter to v.
func Constant(v float64) Initializer {
	return func(m *matrix.Matrix, _, _ int) {
		data := m.Raw()
		for i := range data {
			data[i] = v
		}
	}
}

// Uniform draws parameters from U[lo, hi) using rng.
func Uniform(rng *rand.Rand, lo, hi float64) Initializer {
	return func(m *matrix.Matrix, _, _ int) {
		data := m.Raw()
		for i := range data {
			data[i] = lo + rng.Float64()*(hi-lo)
		}
	}
}

// Normal draws parameters from N(0, std²) using rng.
func Normal(rng *rand.Rand, std float64) Initializer {
	return func(m *matrix.Matrix, _, _ int) {
		data := m.Raw()
		for i := range data {
			data[i] = rng.NormFloat64() * std
		}
	}
}

// Xavier (Glorot) initialization.
//
// Draws from U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))), which keeps
// the variance of sigmoid activations roughly constant across layers.
func Xavier(rng *rand.Rand) Initializer {
	return func(m *matrix.Matrix, fanIn, fanOut int) {
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		data := m.Raw()
		for i := range data {
			data[i] = (rng.Float64()*2.0 - 1.0) * bound
		}
	}
}

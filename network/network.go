// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package network

import (
	"io"
	"math/rand"

	"github.com/born-ml/digits/internal/network"
	"github.com/born-ml/digits/internal/parallel"
	"github.com/born-ml/digits/internal/serialization"
)

// Network is a fully connected sigmoid network.
type Network = network.Network

// Gradients holds per-layer parameter gradients.
type Gradients = network.Gradients

// Sample is one supervised training example.
type Sample = network.Sample

// Option configures New.
type Option = network.Option

// Initializer fills a parameter matrix.
type Initializer = network.Initializer

// ParallelConfig controls how LearnBatch spreads work across goroutines.
type ParallelConfig = parallel.Config

// ValidationError describes a model that does not fit the expected topology.
type ValidationError = serialization.ValidationError

// Errors.
var (
	ErrInvalidTopology  = network.ErrInvalidTopology
	ErrNoSuchLayer      = network.ErrNoSuchLayer
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
	ErrTopology         = serialization.ErrTopology
)

// New creates a network with the given layer widths, input layer first.
func New(sizes []int, opts ...Option) (*Network, error) {
	return network.New(sizes, opts...)
}

// WithWeights sets the weight initializer.
func WithWeights(init Initializer) Option { return network.WithWeights(init) }

// WithBiases sets the bias initializer.
func WithBiases(init Initializer) Option { return network.WithBiases(init) }

// Zeros leaves parameters at zero.
func Zeros() Initializer { return network.Zeros() }

// Constant sets every parameter to v.
func Constant(v float64) Initializer { return network.Constant(v) }

// Uniform draws parameters from U[lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) Initializer { return network.Uniform(rng, lo, hi) }

// Normal draws parameters from N(0, std²).
func Normal(rng *rand.Rand, std float64) Initializer { return network.Normal(rng, std) }

// Xavier draws parameters from the Glorot uniform distribution.
func Xavier(rng *rand.Rand) Initializer { return network.Xavier(rng) }

// Sigmoid is the logistic activation function.
func Sigmoid(x float64) float64 { return network.Sigmoid(x) }

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig { return parallel.DefaultConfig() }

// SequentialConfig runs every loop on the calling goroutine.
func SequentialConfig() ParallelConfig { return parallel.Sequential() }

// Read decodes a network in text format.
func Read(r io.Reader) (*Network, error) {
	return network.Read(r)
}

// Save writes net to path with a SHA-256 checksum sidecar.
func Save(path string, net *Network) error {
	return serialization.Save(path, net)
}

// Load reads a network written by Save.
func Load(path string) (*Network, error) {
	return serialization.Load(path)
}

// ValidateTopology checks the input and output widths of net. A value <= 0
// skips that check.
func ValidateTopology(net *Network, inputs, outputs int) error {
	return serialization.ValidateTopology(net, inputs, outputs)
}

package trainer

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/born-ml/digits/internal/network"
	"github.com/born-ml/digits/internal/parallel"
)

// Parameter initialization schemes accepted by Config.Init.
const (
	InitZero    = "zero"
	InitXavier  = "xavier"
	InitUniform = "uniform"
	InitNormal  = "normal"
)

// Config holds configuration for a training run.
type Config struct {
	Sizes          []int           // Layer widths (default: 784, 30, 10)
	Epochs         int             // Number of epochs (default: 10)
	TrainLimit     int             // Use only the first TrainLimit training samples (0: all)
	LearningRate   float64         // SGD step size (default: 0.3)
	BatchSize      int             // Samples per update; 1 is plain per-sample SGD (default: 1)
	Seed           int64           // Seeds shuffling and random initialization
	Init           string          // One of InitZero, InitXavier, InitUniform, InitNormal (default: zero)
	Parallel       parallel.Config // Mini-batch gradient parallelism
	SkipBadSamples bool            // Log and skip samples that fail to load or do not fit the network instead of aborting
	Report         io.Writer       // Per-epoch report (default: os.Stdout)
	Logger         *slog.Logger    // Diagnostics (default: discarded)
}

// DefaultConfig returns the settings of the reference digit classifier.
func DefaultConfig() Config {
	return Config{
		Sizes:        []int{784, 30, 10},
		Epochs:       10,
		LearningRate: 0.3,
		BatchSize:    1,
		Init:         InitZero,
		Parallel:     parallel.DefaultConfig(),
		Report:       os.Stdout,
	}
}

// withDefaults fills zero fields the way DefaultConfig would.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.Sizes) == 0 {
		c.Sizes = d.Sizes
	}
	if c.Epochs == 0 {
		c.Epochs = d.Epochs
	}
	if c.LearningRate == 0 {
		c.LearningRate = d.LearningRate
	}
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.Init == "" {
		c.Init = d.Init
	}
	if c.Report == nil {
		c.Report = io.Discard
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// NewNetwork builds an untrained network for cfg.Sizes, initialized
// according to cfg.Init and cfg.Seed.
func NewNetwork(cfg Config) (*network.Network, error) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // G404: training does not need crypto randomness

	var opts []network.Option
	switch strings.ToLower(cfg.Init) {
	case InitZero:
	case InitXavier:
		opts = append(opts, network.WithWeights(network.Xavier(rng)))
	case InitUniform:
		opts = append(opts, network.WithWeights(network.Uniform(rng, -0.5, 0.5)))
	case InitNormal:
		opts = append(opts,
			network.WithWeights(network.Normal(rng, 1)),
			network.WithBiases(network.Normal(rng, 1)))
	default:
		return nil, fmt.Errorf("unknown initializer %q", cfg.Init)
	}
	return network.New(cfg.Sizes, opts...)
}

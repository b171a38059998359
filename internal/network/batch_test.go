package network

import (
	"math/rand"
	"testing"

	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBatch(rng *rand.Rand, size, in, out int) []Sample {
	batch := make([]Sample, size)
	for i := range batch {
		x := matrix.New(in, 1)
		for j := range x.Raw() {
			x.Raw()[j] = rng.Float64()
		}
		y := matrix.New(out, 1)
		y.Set(rng.Intn(out), 0, 1)
		batch[i] = Sample{Input: x, Expected: y}
	}
	return batch
}

func seededNetwork(t *testing.T, seed int64, sizes ...int) *Network {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	net, err := New(sizes, WithWeights(Xavier(rng)), WithBiases(Uniform(rng, -0.5, 0.5)))
	require.NoError(t, err)
	return net
}

func TestLearnBatch_SingleSampleEqualsLearn(t *testing.T) {
	a := seededNetwork(t, 1, 5, 4, 3)
	b := a.Clone()
	s := randomBatch(rand.New(rand.NewSource(2)), 1, 5, 3)[0]

	a.Learn(s.Input, s.Expected, 0.7)
	b.LearnBatch([]Sample{s}, 0.7, parallel.DefaultConfig())

	assert.True(t, a.Equal(b))
}

func TestLearnBatch_AppliesMeanGradient(t *testing.T) {
	net := seededNetwork(t, 3, 6, 5, 2)
	batch := randomBatch(rand.New(rand.NewSource(4)), 8, 6, 2)

	want := net.Clone()
	sum := want.Backprop(batch[0].Input, batch[0].Expected)
	for _, s := range batch[1:] {
		sum = sum.Add(want.Backprop(s.Input, s.Expected))
	}
	want.Apply(sum.Scale(1.0/8), 0.5)

	net.LearnBatch(batch, 0.5, parallel.Sequential())
	assert.True(t, net.Equal(want))
}

func TestLearnBatch_ParallelMatchesSequential(t *testing.T) {
	seq := seededNetwork(t, 5, 10, 8, 4)
	par := seq.Clone()
	batch := randomBatch(rand.New(rand.NewSource(6)), 32, 10, 4)

	seq.LearnBatch(batch, 0.3, parallel.Sequential())
	par.LearnBatch(batch, 0.3, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})

	assert.True(t, seq.Equal(par))
}

func TestLearnBatch_Empty(t *testing.T) {
	net := seededNetwork(t, 7, 3, 2)
	before := net.Clone()
	net.LearnBatch(nil, 1, parallel.DefaultConfig())
	assert.True(t, net.Equal(before))
}

func TestLearnBatch_BadSamplePanicsBeforeUpdate(t *testing.T) {
	net := seededNetwork(t, 8, 3, 2)
	before := net.Clone()
	batch := randomBatch(rand.New(rand.NewSource(9)), 4, 3, 2)
	batch[2].Expected = matrix.Column(1, 0, 0)

	requirePanicIs(t, matrix.ErrDimensionMismatch, func() {
		net.LearnBatch(batch, 1, parallel.DefaultConfig())
	})
	assert.True(t, net.Equal(before))
}

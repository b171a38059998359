package network

import (
	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/parallel"
)

// Sample is one supervised training example.
type Sample struct {
	Input    *matrix.Matrix // InputSize()×1
	Expected *matrix.Matrix // OutputSize()×1
}

// LearnBatch performs one gradient descent step on the mean gradient of a
// mini-batch.
//
// Per-sample gradients are independent, so they are computed concurrently
// according to cfg and then summed in sample order, which keeps the result
// independent of scheduling. A batch of one sample is equivalent to Learn;
// an empty batch is a no-op.
func (n *Network) LearnBatch(batch []Sample, eta float64, cfg parallel.Config) {
	if len(batch) == 0 {
		return
	}
	// Validate on the caller's goroutine so a bad sample panics here rather
	// than inside a worker.
	for _, s := range batch {
		mustColumn("LearnBatch", s.Input, n.InputSize())
		mustColumn("LearnBatch", s.Expected, n.OutputSize())
	}

	grads := make([]*Gradients, len(batch))
	parallel.For(len(batch), func(i int) {
		grads[i] = n.Backprop(batch[i].Input, batch[i].Expected)
	}, cfg)

	sum := grads[0]
	for _, g := range grads[1:] {
		sum = sum.Add(g)
	}
	n.Apply(sum.Scale(1/float64(len(batch))), eta)
}

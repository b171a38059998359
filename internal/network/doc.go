// Package network implements a fully connected feed-forward network with
// logistic sigmoid activations, trained by per-sample stochastic gradient
// descent with back-propagation.
//
// A network with layer widths {n0, n1, ..., nL-1} holds, for every layer
// transition l, a weight matrix of shape n(l+1)×n(l) and a bias column of
// shape n(l+1)×1. Inputs and outputs are column matrices.
//
// Example:
//
//	net, err := network.New([]int{784, 30, 10},
//	    network.WithWeights(network.Xavier(rng)))
//	if err != nil {
//	    return err
//	}
//	for _, s := range samples {
//	    net.Learn(s.Input, s.Expected, 0.3)
//	}
//	guess := net.Classify(img).ArgMax()
//
// All numeric work is delegated to the matrix package. Shape violations
// (an input with the wrong height, an expected vector of the wrong length)
// are programming errors and panic with a *matrix.ShapeError.
//
// A Network is not safe for concurrent mutation. Classify and Backprop only
// read parameters and may run concurrently with each other, but not with
// Learn or Apply.
package network

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package network provides a fully connected feed-forward network with
// logistic sigmoid activations, trained by back-propagation.
//
// # Overview
//
// A network is described by its layer widths, input first. Layer l holds a
// weight matrix of shape sizes[l+1]×sizes[l] and a bias column of
// sizes[l+1] rows. Parameters start at zero unless an initializer option is
// given.
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/digits/matrix"
//	    "github.com/born-ml/digits/network"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//	    net, err := network.New([]int{2, 3, 1}, network.WithWeights(network.Xavier(rng)))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x, y := matrix.Column(1, 0), matrix.Column(1)
//	    for range 1000 {
//	        net.Learn(x, y, 0.5)
//	    }
//	    fmt.Println(net.Classify(x))
//
//	    if err := network.Save("xor.net", net); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package network

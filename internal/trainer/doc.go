// Package trainer runs the epoch loop around a network: per-epoch shuffling
// of the training set, per-sample or mini-batch SGD, assessment against a
// test set and progress reporting.
//
// Example:
//
//	cfg := trainer.DefaultConfig()
//	cfg.Epochs = 30
//	net, err := trainer.NewNetwork(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := trainer.Train(ctx, net, trainSet, testSet, cfg)
package trainer

package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/born-ml/digits/internal/dataset"
	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/network"
)

// EpochResult summarizes one epoch.
type EpochResult struct {
	Epoch   int
	Trained int // samples used for updates
	Skipped int // training samples that failed to load
	Test    Result
	Elapsed time.Duration
}

// Train runs cfg.Epochs epochs of SGD on net.
//
// Each epoch shuffles the first cfg.TrainLimit samples of train with an RNG
// seeded from cfg.Seed, learns from them in that order (cfg.BatchSize at a
// time), then assesses net on test and writes a report:
//
//	-- Epoch #0 --
//	Training with 5000 images...
//	Correct classification: 8213 [82.13%]
//	Elapsed time = 1834 milliseconds.
//
// A nil test set skips assessment. Cancelling ctx stops training between
// samples; the results of completed epochs are returned with ctx.Err().
func Train(ctx context.Context, net *network.Network, train, test dataset.Set, cfg Config) ([]EpochResult, error) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // G404: shuffling does not need crypto randomness

	count := train.Len()
	if cfg.TrainLimit > 0 && cfg.TrainLimit < count {
		count = cfg.TrainLimit
	}
	order := make([]int, count)
	for i := range order {
		order[i] = i
	}

	cfg.Logger.Info("training started",
		slog.Any("sizes", net.Sizes()),
		slog.Int("samples", count),
		slog.Int("epochs", cfg.Epochs),
		slog.Float64("rate", cfg.LearningRate),
		slog.Int("batch", cfg.BatchSize))

	results := make([]EpochResult, 0, cfg.Epochs)
	for epoch := range cfg.Epochs {
		fmt.Fprintf(cfg.Report, "-- Epoch #%d --\n", epoch)
		fmt.Fprintf(cfg.Report, "Training with %d images...\n", count)
		start := time.Now()

		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		res := EpochResult{Epoch: epoch}
		if err := runEpoch(ctx, net, train, order, cfg, &res); err != nil {
			return results, err
		}

		if test != nil {
			var err error
			res.Test, err = Assess(ctx, net, test, cfg.SkipBadSamples)
			if err != nil {
				return results, err
			}
			fmt.Fprintln(cfg.Report, res.Test)
		}

		res.Elapsed = time.Since(start)
		fmt.Fprintf(cfg.Report, "Elapsed time = %d milliseconds.\n", res.Elapsed.Milliseconds())
		cfg.Logger.Debug("epoch finished",
			slog.Int("epoch", epoch),
			slog.Int("trained", res.Trained),
			slog.Int("skipped", res.Skipped+res.Test.Skipped),
			slog.Float64("accuracy", res.Test.Accuracy()),
			slog.Duration("elapsed", res.Elapsed))
		results = append(results, res)
	}
	return results, nil
}

func runEpoch(ctx context.Context, net *network.Network, train dataset.Set, order []int, cfg Config, res *EpochResult) error {
	batch := make([]network.Sample, 0, cfg.BatchSize)
	flush := func() {
		switch len(batch) {
		case 0:
			return
		case 1:
			net.Learn(batch[0].Input, batch[0].Expected, cfg.LearningRate)
		default:
			net.LearnBatch(batch, cfg.LearningRate, cfg.Parallel)
		}
		res.Trained += len(batch)
		batch = batch[:0]
	}

	for _, idx := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := loadSample(net, train, idx)
		if err != nil {
			if !cfg.SkipBadSamples {
				return fmt.Errorf("training sample %d: %w", idx, err)
			}
			cfg.Logger.Warn("skipping training sample", slog.Int("index", idx), slog.Any("error", err))
			res.Skipped++
			continue
		}
		batch = append(batch, s.Sample)
		if len(batch) == cfg.BatchSize {
			flush()
		}
	}
	flush()
	return nil
}

// loadSample reads sample i of set and checks it against the network's
// input and output widths.
func loadSample(net *network.Network, set dataset.Set, i int) (dataset.Sample, error) {
	s, err := set.Sample(i)
	if err != nil {
		return dataset.Sample{}, err
	}
	if err := checkShape("input", s.Input, net.InputSize()); err != nil {
		return dataset.Sample{}, err
	}
	if err := checkShape("expected output", s.Expected, net.OutputSize()); err != nil {
		return dataset.Sample{}, err
	}
	return s, nil
}

func checkShape(what string, m *matrix.Matrix, rows int) error {
	want := matrix.Shape{Rows: rows, Cols: 1}
	if m.Shape() != want {
		return fmt.Errorf("%s: %w", what, matrix.NewShapeError("Sample", want, m.Shape()))
	}
	return nil
}

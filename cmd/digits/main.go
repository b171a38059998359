// Package main provides the digits CLI: train a sigmoid MLP on PGM or
// MNIST IDX digit images, save it, and evaluate saved models.
//
// Usage:
//
//	digits [train] [flags] <ImgPath> [#Train] [#Epochs] [TrainSetList] [TestSetList]
//	digits eval -load model.net [flags] <ImgPath> [TestSetList]
//	digits version
//
// With -format idx, ImgPath is a directory holding the MNIST IDX files and
// the list arguments are ignored.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/born-ml/digits/internal/dataset"
	"github.com/born-ml/digits/internal/network"
	"github.com/born-ml/digits/internal/parallel"
	"github.com/born-ml/digits/internal/serialization"
	"github.com/born-ml/digits/internal/trainer"
	"github.com/klauspost/cpuid/v2"
)

const version = "v0.1.0"

const (
	defaultTrainCount = 5000
	defaultTrainList  = "TrainingSetList.txt"
	defaultTestList   = "TestingSetList.txt"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "digits: %v\n", err)
		}
		stop()
		os.Exit(1) //nolint:gocritic // stop() already called
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := "train"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "train", "eval", "version":
			cmd, args = args[0], args[1:]
		}
	}

	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "digits %s\n", version)
		fmt.Fprintf(stdout, "CPU: %s (%d physical cores, %d workers)\n",
			cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, parallel.Workers())
		return nil
	case "eval":
		return runEval(ctx, args, stdout, stderr)
	default:
		return runTrain(ctx, args, stdout, stderr)
	}
}

// options are the flags shared by train and eval.
type options struct {
	format   string
	load     string
	workers  int
	logLevel string
	skipBad  bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.format, "format", "pgm", "Image source: pgm (ImgPath + list files) or idx (MNIST directory)")
	fs.StringVar(&o.load, "load", "", "Load network parameters from this model file")
	fs.IntVar(&o.workers, "workers", 0, "Worker goroutines for batch gradients and large products (0: one per CPU)")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.BoolVar(&o.skipBad, "skip-bad", false, "Skip images that fail to load instead of aborting")
}

func (o *options) logger(stderr io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})), nil
}

func (o *options) parallel() parallel.Config {
	cfg := parallel.DefaultConfig()
	if o.workers > 0 {
		cfg.NumWorkers = o.workers
		cfg.Enabled = o.workers > 1
	}
	return cfg
}

func newFlagSet(name string, stderr io.Writer, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: digits %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	const usage = "[train] [flags] <ImgPath> [#Train] [#Epochs] [TrainSetList] [TestSetList]"
	fs := newFlagSet("train", stderr, usage)

	var opts options
	opts.register(fs)
	cfg := trainer.DefaultConfig()
	layers := fs.String("layers", "784,30,10", "Comma-separated layer widths, input first")
	fs.Float64Var(&cfg.LearningRate, "rate", cfg.LearningRate, "Learning rate")
	fs.IntVar(&cfg.BatchSize, "batch", cfg.BatchSize, "Mini-batch size (1: per-sample SGD)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for shuffling and random initialization")
	fs.StringVar(&cfg.Init, "init", cfg.Init, "Initializer: zero, xavier, uniform, normal")
	save := fs.String("save", "", "Save the trained network to this model file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos := fs.Args()
	if len(pos) < 1 || len(pos) > 5 {
		fs.Usage()
		return errUsage
	}
	imgPath := pos[0]
	trainCount, err := intArg(pos, 1, "#Train", defaultTrainCount)
	if err != nil {
		return err
	}
	if cfg.Epochs, err = intArg(pos, 2, "#Epochs", cfg.Epochs); err != nil {
		return err
	}
	trainList := stringArg(pos, 3, defaultTrainList)
	testList := stringArg(pos, 4, defaultTestList)

	if cfg.Sizes, err = parseLayers(*layers); err != nil {
		return err
	}
	if cfg.Logger, err = opts.logger(stderr); err != nil {
		return err
	}
	cfg.Parallel = opts.parallel()
	cfg.SkipBadSamples = opts.skipBad
	cfg.TrainLimit = trainCount
	cfg.Report = stdout

	classes := cfg.Sizes[len(cfg.Sizes)-1]
	trainSet, testSet, err := loadSets(opts.format, imgPath, trainList, testList, classes, trainCount)
	if err != nil {
		return err
	}

	var net *network.Network
	if opts.load != "" {
		if net, err = serialization.Load(opts.load); err != nil {
			return err
		}
		if err := serialization.ValidateSizes(net, cfg.Sizes); err != nil {
			return fmt.Errorf("%s: %w", opts.load, err)
		}
		cfg.Logger.Info("resuming from model", slog.String("path", opts.load))
	} else if net, err = trainer.NewNetwork(cfg); err != nil {
		return err
	}

	if err := checkInputs(net, trainSet); err != nil {
		return err
	}
	if _, err := trainer.Train(ctx, net, trainSet, testSet, cfg); err != nil {
		return err
	}

	if *save != "" {
		if err := serialization.Save(*save, net); err != nil {
			return err
		}
		cfg.Logger.Info("model saved", slog.String("path", *save))
	}
	return nil
}

func runEval(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	const usage = "eval -load <model> [flags] <ImgPath> [TestSetList]"
	fs := newFlagSet("eval", stderr, usage)

	var opts options
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	pos := fs.Args()
	if opts.load == "" || len(pos) < 1 || len(pos) > 2 {
		fs.Usage()
		return errUsage
	}
	logger, err := opts.logger(stderr)
	if err != nil {
		return err
	}

	net, err := serialization.Load(opts.load)
	if err != nil {
		return err
	}
	_, testSet, err := loadSets(opts.format, pos[0], "", stringArg(pos, 1, defaultTestList), net.OutputSize(), 0)
	if err != nil {
		return err
	}
	if err := checkInputs(net, testSet); err != nil {
		return err
	}
	logger.Info("evaluating", slog.String("model", opts.load), slog.Any("sizes", net.Sizes()), slog.Int("samples", testSet.Len()))

	res, err := trainer.Assess(ctx, net, testSet, opts.skipBad)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res)
	if res.Skipped > 0 {
		logger.Warn("skipped test images", slog.Int("count", res.Skipped))
	}
	return nil
}

// loadSets opens the training and test sets. An empty trainList skips the
// training set.
func loadSets(format, imgPath, trainList, testList string, classes, trainCount int) (train, test dataset.Set, err error) {
	switch format {
	case "pgm":
		if trainList != "" {
			if train, err = dataset.NewPGMSet(imgPath, trainList, classes, trainCount); err != nil {
				return nil, nil, err
			}
		}
		if test, err = dataset.NewPGMSet(imgPath, testList, classes, 0); err != nil {
			return nil, nil, err
		}
	case "idx":
		if trainList != "" {
			if train, err = dataset.LoadIDX(imgPath, true, classes, trainCount); err != nil {
				return nil, nil, err
			}
		}
		if test, err = dataset.LoadIDX(imgPath, false, classes, 0); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown -format %q", format)
	}
	return train, test, nil
}

func parseLayers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid -layers %q: %w", s, err)
		}
		sizes[i] = v
	}
	if len(sizes) < 2 {
		return nil, fmt.Errorf("invalid -layers %q: need input and output widths", s)
	}
	return sizes, nil
}

// checkInputs fails when the images of set do not match the input layer.
func checkInputs(net *network.Network, set dataset.Set) error {
	if set == nil || set.Len() == 0 {
		return nil
	}
	s, err := set.Sample(0)
	if err != nil {
		// Reported (or skipped) by the training loop.
		return nil //nolint:nilerr // load errors are not topology errors
	}
	return serialization.ValidateTopology(net, s.Input.Rows(), 0)
}

func intArg(args []string, i int, name string, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return v, nil
}

func stringArg(args []string, i int, def string) string {
	if i >= len(args) {
		return def
	}
	return args[i]
}

package trainer

import (
	"context"
	"fmt"

	"github.com/born-ml/digits/internal/dataset"
	"github.com/born-ml/digits/internal/network"
	"gonum.org/v1/gonum/floats"
)

// Result counts correct classifications.
type Result struct {
	Correct int
	Total   int
	Skipped int // samples that failed to load
}

// Accuracy returns Correct/Total as a percentage, or 0 for an empty result.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Correct) / float64(r.Total)
}

// String formats the result like the per-epoch report line.
func (r Result) String() string {
	return fmt.Sprintf("Correct classification: %d [%.2f%%]", r.Correct, r.Accuracy())
}

// Assess classifies every sample of set and counts how often the most
// activated output matches the expected class.
//
// With skipBad a sample that fails to load or does not fit the network is counted in Skipped instead
// of aborting the assessment.
func Assess(ctx context.Context, net *network.Network, set dataset.Set, skipBad bool) (Result, error) {
	var res Result
	for i := range set.Len() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s, err := loadSample(net, set, i)
		if err != nil {
			if skipBad {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("test sample %d: %w", i, err)
		}
		out := net.Classify(s.Input)
		if floats.MaxIdx(out.Raw()) == floats.MaxIdx(s.Expected.Raw()) {
			res.Correct++
		}
		res.Total++
	}
	return res, nil
}

package serialization

import (
	"fmt"

	"github.com/born-ml/digits/internal/network"
)

// ValidateTopology checks that net maps inputs-wide columns to outputs
// classes. A value <= 0 skips that check.
func ValidateTopology(net *network.Network, inputs, outputs int) error {
	if inputs > 0 && net.InputSize() != inputs {
		return &ValidationError{
			Type:    "input_size",
			Layer:   0,
			Details: fmt.Sprintf("got %d, want %d", net.InputSize(), inputs),
		}
	}
	if outputs > 0 && net.OutputSize() != outputs {
		return &ValidationError{
			Type:    "output_size",
			Layer:   len(net.Sizes()) - 1,
			Details: fmt.Sprintf("got %d, want %d", net.OutputSize(), outputs),
		}
	}
	return nil
}

// ValidateSizes checks that net has exactly the given layer widths.
func ValidateSizes(net *network.Network, sizes []int) error {
	got := net.Sizes()
	if len(got) != len(sizes) {
		return &ValidationError{
			Type:    "layer_count",
			Layer:   -1,
			Details: fmt.Sprintf("got %d layers %v, want %d layers %v", len(got), got, len(sizes), sizes),
		}
	}
	for l := range got {
		if got[l] != sizes[l] {
			return &ValidationError{
				Type:    "layer_width",
				Layer:   l,
				Details: fmt.Sprintf("got %d, want %d", got[l], sizes[l]),
			}
		}
	}
	return nil
}

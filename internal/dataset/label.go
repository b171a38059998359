package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/born-ml/digits/internal/matrix"
)

// LabelFromPath extracts the digit that follows the last '_' in the file
// name, e.g. "TrainingSet/test-image-6883_0.pgm" is labelled 0.
func LabelFromPath(path string) (int, error) {
	name := filepath.Base(path)
	pos := strings.LastIndexByte(name, '_')
	if pos < 0 || pos+1 >= len(name) {
		return 0, fmt.Errorf("%w: %q", ErrNoLabel, path)
	}
	c := name[pos+1]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%w: %q: %q is not a digit", ErrNoLabel, path, c)
	}
	return int(c - '0'), nil
}

// OneHot returns a classes×1 column with 1 at row label and 0 elsewhere.
func OneHot(label, classes int) (*matrix.Matrix, error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabelRange, label, classes)
	}
	m := matrix.New(classes, 1)
	m.Set(label, 0, 1)
	return m, nil
}

package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/born-ml/digits/internal/matrix"
	"github.com/born-ml/digits/internal/network"
)

// Sample is a training or test example with its class label.
type Sample struct {
	network.Sample
	Label int
	Name  string // source file, if any
}

// NewSample pairs an input column with the one-hot encoding of label.
func NewSample(input *matrix.Matrix, label, classes int) (Sample, error) {
	expected, err := OneHot(label, classes)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Sample: network.Sample{Input: input, Expected: expected}, Label: label}, nil
}

// Set is an indexed collection of samples.
type Set interface {
	Len() int
	Sample(i int) (Sample, error)
}

// MemorySet holds every sample in memory.
type MemorySet struct {
	Samples []Sample
}

// Len implements Set.
func (s *MemorySet) Len() int { return len(s.Samples) }

// Sample implements Set.
func (s *MemorySet) Sample(i int) (Sample, error) { return s.Samples[i], nil }

// PGMSet loads PGM images from Dir on demand, so only one image is in
// memory at a time.
type PGMSet struct {
	Dir     string
	Names   []string
	Classes int
}

// NewPGMSet reads the image list at listPath (see ReadList).
func NewPGMSet(dir, listPath string, classes, limit int) (*PGMSet, error) {
	names, err := ReadList(listPath, limit)
	if err != nil {
		return nil, err
	}
	return &PGMSet{Dir: dir, Names: names, Classes: classes}, nil
}

// Len implements Set.
func (s *PGMSet) Len() int { return len(s.Names) }

// Sample implements Set. The label comes from the file name.
func (s *PGMSet) Sample(i int) (Sample, error) {
	name := s.Names[i]
	label, err := LabelFromPath(name)
	if err != nil {
		return Sample{}, err
	}
	img, err := LoadPGM(filepath.Join(s.Dir, name))
	if err != nil {
		return Sample{}, err
	}
	sample, err := NewSample(img, label, s.Classes)
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", name, err)
	}
	sample.Name = name
	return sample, nil
}

// Load reads every sample of set into memory.
func Load(set Set) (*MemorySet, error) {
	out := &MemorySet{Samples: make([]Sample, set.Len())}
	for i := range out.Samples {
		s, err := set.Sample(i)
		if err != nil {
			return nil, err
		}
		out.Samples[i] = s
	}
	return out, nil
}

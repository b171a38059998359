package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	idxImageMagic = 0x00000803 // 2051
	idxLabelMagic = 0x00000801 // 2049

	maxIDXItems = 1 << 24 // images or labels per file
)

// ReadIDXImages reads an MNIST image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// A positive limit reads at most that many images.
func ReadIDXImages(r io.Reader, limit int) ([]*Image, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	magic, count, rows, cols := header[0], header[1], header[2], header[3]
	if magic != idxImageMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, magic, idxImageMagic)
	}

	if count > maxIDXItems {
		return nil, fmt.Errorf("%w: %d images exceeds %d", ErrMalformedImage, count, maxIDXItems)
	}
	if rows == 0 || cols == 0 || int(cols) > maxPixels/int(rows) {
		return nil, fmt.Errorf("%w: %dx%d images exceed %d pixels", ErrMalformedImage, cols, rows, maxPixels)
	}
	n := int(count)
	if limit > 0 && n > limit {
		n = limit
	}
	size := int(rows) * int(cols)
	buf := make([]byte, size)
	// Grow as data arrives; the header count is not trusted for allocation.
	images := make([]*Image, 0, min(n, 1024))
	for i := range n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
		img := &Image{Width: int(cols), Height: int(rows), MaxValue: 255, Pixels: make([]float64, size)}
		for j, b := range buf {
			img.Pixels[j] = float64(b)
		}
		images = append(images, img)
	}
	return images, nil
}

// ReadIDXLabels reads an MNIST label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader, limit int) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read label header: %w", err)
	}
	if header[0] != idxLabelMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], idxLabelMagic)
	}

	if header[1] > maxIDXItems {
		return nil, fmt.Errorf("%w: %d labels exceeds %d", ErrMalformedImage, header[1], maxIDXItems)
	}
	n := int(header[1])
	if limit > 0 && n > limit {
		n = limit
	}
	labels := make([]byte, n)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return labels, nil
}

// LoadIDX loads the MNIST training (train=true) or test set from dataDir.
//
// Expected files in dataDir:
//   - train-images-idx3-ubyte, train-labels-idx1-ubyte
//   - t10k-images-idx3-ubyte, t10k-labels-idx1-ubyte
func LoadIDX(dataDir string, train bool, classes, limit int) (*MemorySet, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}

	images, err := readIDXFile(filepath.Join(dataDir, prefix+"-images-idx3-ubyte"), func(r io.Reader) ([]*Image, error) {
		return ReadIDXImages(r, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labels, err := readIDXFile(filepath.Join(dataDir, prefix+"-labels-idx1-ubyte"), func(r io.Reader) ([]byte, error) {
		return ReadIDXLabels(r, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if len(images) != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(images), len(labels))
	}

	set := &MemorySet{Samples: make([]Sample, len(images))}
	for i, img := range images {
		s, err := NewSample(img.Column(), int(labels[i]), classes)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		set.Samples[i] = s
	}
	return set, nil
}

func readIDXFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	//nolint:gosec // G304: dataset directory is supplied by the operator
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(bufio.NewReader(f))
}

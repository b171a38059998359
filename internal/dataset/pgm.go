package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/digits/internal/matrix"
)

// maxPixels bounds the allocation a single image header can request.
const maxPixels = 1 << 24

// Image is a decoded grayscale image.
type Image struct {
	Width, Height int
	MaxValue      float64
	Pixels        []float64 // row-major, Width*Height raw intensities
}

// Column returns the image as a (Width*Height)×1 column with every pixel
// divided by MaxValue, so values lie in [0, 1].
func (img *Image) Column() *matrix.Matrix {
	col := matrix.New(len(img.Pixels), 1)
	data := col.Raw()
	for i, p := range img.Pixels {
		data[i] = p / img.MaxValue
	}
	return col
}

// LoadPGM reads an ASCII PGM file and returns its normalized pixel column.
func LoadPGM(path string) (*matrix.Matrix, error) {
	//nolint:gosec // G304: image paths come from the training file list
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	defer f.Close()

	img, err := DecodePGM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img.Column(), nil
}

// DecodePGM decodes an ASCII ("P2") PGM image.
//
// Format:
//
//	P2
//	<width> <height>
//	<max value>
//	<width*height intensities>
//
// Tokens are separated by any whitespace; '#' starts a comment that runs to
// the end of the line.
func DecodePGM(r io.Reader) (*Image, error) {
	sc := bufio.NewScanner(r)
	sc.Split(scanPGMTokens)

	next := func(what string) (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("%w: reading %s: %w", ErrMalformedImage, what, err)
		}
		return "", fmt.Errorf("%w: missing %s: %w", ErrMalformedImage, what, io.ErrUnexpectedEOF)
	}
	positive := func(what string) (int, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformedImage, what, tok)
		}
		return v, nil
	}

	magic, err := next("header")
	if err != nil {
		return nil, err
	}
	if magic != "P2" {
		return nil, fmt.Errorf("%w: header %q: only P2 PGM format is supported", ErrUnsupportedFormat, magic)
	}

	img := &Image{}
	if img.Width, err = positive("width"); err != nil {
		return nil, err
	}
	if img.Height, err = positive("height"); err != nil {
		return nil, err
	}
	if img.Width > maxPixels/img.Height {
		return nil, fmt.Errorf("%w: %dx%d image exceeds %d pixels", ErrMalformedImage, img.Width, img.Height, maxPixels)
	}
	maxValue, err := positive("max value")
	if err != nil {
		return nil, err
	}
	img.MaxValue = float64(maxValue)

	img.Pixels = make([]float64, img.Width*img.Height)
	for i := range img.Pixels {
		tok, err := next("pixel")
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v > maxValue {
			return nil, fmt.Errorf("%w: pixel %d: invalid value %q", ErrMalformedImage, i, tok)
		}
		img.Pixels[i] = float64(v)
	}
	return img, nil
}

// scanPGMTokens is a bufio.SplitFunc like bufio.ScanWords that also drops
// '#' comments.
func scanPGMTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		switch c := data[start]; {
		case isSpace(c):
			start++
		case c == '#':
			nl := bytes.IndexByte(data[start:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				// Need the rest of the comment line.
				return start, nil, nil
			}
			start += nl + 1
		default:
			for i := start; i < len(data); i++ {
				if isSpace(data[i]) || data[i] == '#' {
					return i, data[start:i], nil
				}
			}
			if atEOF {
				return len(data), data[start:], nil
			}
			return start, nil, nil
		}
	}
	return start, nil, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

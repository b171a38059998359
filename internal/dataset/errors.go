package dataset

import "errors"

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("dataset: unsupported image format")
	ErrMalformedImage    = errors.New("dataset: malformed image")
	ErrNoLabel           = errors.New("dataset: no label in file name")
	ErrLabelRange        = errors.New("dataset: label out of range")
	ErrInvalidMagic      = errors.New("dataset: invalid magic number")
)

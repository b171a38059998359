// Package dataset turns image files into training samples: normalized
// input columns and one-hot expected outputs.
//
// Two sources are supported. ASCII PGM images (P2) listed one file name per
// line in a list file, labelled by the digit after the last '_' in the file
// name (test-image-6883_0.pgm is a 0). And the MNIST IDX binary files.
package dataset

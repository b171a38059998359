package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFromPath(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"test-image-6883_0.pgm", 0},
		{"data/TrainingSet/train_image_12_7.pgm", 7},
		{"a_b_9", 9},
	}
	for _, tt := range tests {
		got, err := LabelFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLabelFromPath_Errors(t *testing.T) {
	for _, path := range []string{"image.pgm", "image_.pgm", "image_x.pgm", "dir_5/image.pgm"} {
		_, err := LabelFromPath(path)
		assert.ErrorIs(t, err, ErrNoLabel, path)
	}
}

func TestOneHot(t *testing.T) {
	m, err := OneHot(3, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, m.Rows())
	assert.Equal(t, 1, m.Cols())
	assert.Equal(t, 1.0, m.Sum())
	assert.Equal(t, 1.0, m.At(3, 0))
	assert.Equal(t, 3, m.ArgMax())

	_, err = OneHot(10, 10)
	assert.ErrorIs(t, err, ErrLabelRange)
	_, err = OneHot(-1, 10)
	assert.ErrorIs(t, err, ErrLabelRange)
}

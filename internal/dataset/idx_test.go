package dataset

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idxImages(t *testing.T, rows, cols int, images ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := []uint32{idxImageMagic, uint32(len(images)), uint32(rows), uint32(cols)}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, img := range images {
		buf.Write(img)
	}
	return buf.Bytes()
}

func idxLabels(t *testing.T, labels ...byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxLabelMagic, uint32(len(labels))}))
	buf.Write(labels)
	return buf.Bytes()
}

func TestReadIDXImages(t *testing.T) {
	data := idxImages(t, 2, 2, []byte{0, 255, 51, 102}, []byte{1, 2, 3, 4})

	images, err := ReadIDXImages(bytes.NewReader(data), 0)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 2, images[0].Width)
	assert.Equal(t, []float64{0, 1, 0.2, 0.4}, images[0].Column().Raw())

	limited, err := ReadIDXImages(bytes.NewReader(data), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestReadIDX_Errors(t *testing.T) {
	_, err := ReadIDXImages(bytes.NewReader(idxLabels(t, 1, 2, 3, 4, 5, 6, 7, 8)), 0)
	assert.ErrorIs(t, err, ErrInvalidMagic)

	_, err = ReadIDXLabels(bytes.NewReader(idxImages(t, 1, 1, []byte{0})), 0)
	assert.ErrorIs(t, err, ErrInvalidMagic)

	truncated := idxImages(t, 2, 2, []byte{0, 1, 2, 3})
	_, err = ReadIDXImages(bytes.NewReader(truncated[:len(truncated)-1]), 0)
	assert.Error(t, err)
}

func TestLoadIDX(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	write("t10k-images-idx3-ubyte", idxImages(t, 1, 3, []byte{0, 0, 255}, []byte{255, 0, 0}))
	write("t10k-labels-idx1-ubyte", idxLabels(t, 2, 0))

	set, err := LoadIDX(dir, false, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	s, err := set.Sample(0)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Label)
	assert.Equal(t, 2, s.Expected.ArgMax())
	assert.Equal(t, []float64{0, 0, 1}, s.Input.Raw())

	_, err = LoadIDX(dir, true, 10, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadIDX_LabelOutOfRange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-images-idx3-ubyte"), idxImages(t, 1, 1, []byte{9}), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-labels-idx1-ubyte"), idxLabels(t, 7), 0o600))

	_, err := LoadIDX(dir, false, 5, 0)
	assert.ErrorIs(t, err, ErrLabelRange)
}

func TestReadIDX_OversizedHeaders(t *testing.T) {
	header := func(words ...uint32) *bytes.Reader {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.BigEndian, words))
		return bytes.NewReader(buf.Bytes())
	}

	tests := []struct {
		name   string
		header []uint32
	}{
		{"too many images", []uint32{idxImageMagic, maxIDXItems + 1, 28, 28}},
		{"rows*cols overflows uint32", []uint32{idxImageMagic, 1, 1 << 16, 1 << 16}},
		{"too many pixels", []uint32{idxImageMagic, 1, maxPixels, 2}},
		{"zero rows", []uint32{idxImageMagic, 1, 0, 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadIDXImages(header(tt.header...), 0)
			assert.ErrorIs(t, err, ErrMalformedImage)
		})
	}

	_, err := ReadIDXLabels(header(idxLabelMagic, maxIDXItems+1), 0)
	assert.ErrorIs(t, err, ErrMalformedImage)
}

func TestReadIDXImages_CountBeyondData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxImageMagic, 1 << 20, 1, 2}))
	buf.Write([]byte{7, 8, 9})

	_, err := ReadIDXImages(&buf, 0)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

package pipeline

import (
	"image"
	"path/filepath"
	"testing"

	"particle-meter/internal/logger"
	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"

	"github.com/stretchr/testify/require"
)

// specimen builds a white BGR image with one black square.
func specimen(t *testing.T, size, square int) *safe.Mat {
	t.Helper()

	gray, err := conversion.NewFilledMat(size, size, 255)
	require.NoError(t, err)
	defer gray.Close()

	off := (size - square) / 2
	require.NoError(t, conversion.FillRect(gray, image.Rect(off, off, off+square, off+square), 0))

	img, err := conversion.ConvertToBGR(gray)
	require.NoError(t, err)
	t.Cleanup(img.Close)
	return img
}

// writeSpecimen stores a specimen as a lossless PNG and returns its path.
func writeSpecimen(t *testing.T, dir, name string, size, square int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, NewFileSaver(logger.Nop()).Save(path, specimen(t, size, square)))
	return path
}

package filters

import (
	"context"
	"image"
	"testing"

	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, rows, cols int, value uint8) *safe.Mat {
	t.Helper()
	m, err := conversion.NewFilledMat(rows, cols, value)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func pixel(t *testing.T, m *safe.Mat, row, col int) uint8 {
	t.Helper()
	v, err := m.GetUCharAt(row, col)
	require.NoError(t, err)
	return v
}

func TestMedianFilterRemovesSpeckle(t *testing.T) {
	src := filled(t, 9, 9, 255)
	require.NoError(t, src.SetUCharAt(4, 4, 0))

	out, err := NewMedianFilter(3).Apply(context.Background(), src)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, uint8(255), pixel(t, out, 4, 4))
	assert.Equal(t, uint8(0), pixel(t, src, 4, 4), "input must not change")
}

func TestMedianFilterKeepsStraightEdge(t *testing.T) {
	src := filled(t, 10, 10, 255)
	require.NoError(t, conversion.FillRect(src, image.Rect(0, 0, 5, 10), 0))

	out, err := NewMedianFilter(3).Apply(context.Background(), src)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, src.ToBytes(), out.ToBytes())
}

func TestGaussianFilterSmoothsStep(t *testing.T) {
	src := filled(t, 7, 7, 0)
	require.NoError(t, conversion.FillRect(src, image.Rect(4, 0, 7, 7), 255))

	out, err := NewGaussianFilter(3).Apply(context.Background(), src)
	require.NoError(t, err)
	defer out.Close()

	edge := pixel(t, out, 3, 4)
	assert.Greater(t, edge, uint8(0))
	assert.Less(t, edge, uint8(255))
	assert.Equal(t, uint8(0), pixel(t, out, 3, 0))
	assert.Equal(t, uint8(255), pixel(t, out, 3, 6))
}

func TestGaussianFilterLeavesFlatImage(t *testing.T) {
	src := filled(t, 5, 5, 90)

	out, err := NewGaussianFilter(3).Apply(context.Background(), src)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, src.ToBytes(), out.ToBytes())
}

func TestKernelValidation(t *testing.T) {
	src := filled(t, 5, 5, 0)

	_, err := NewGaussianFilter(4).Apply(context.Background(), src)
	assert.Error(t, err)

	_, err = NewMedianFilter(0).Apply(context.Background(), src)
	assert.Error(t, err)
}

func TestGrayscaleConverter(t *testing.T) {
	gray := filled(t, 4, 4, 128)
	bgr, err := conversion.ConvertToBGR(gray)
	require.NoError(t, err)
	defer bgr.Close()

	out, err := NewGrayscaleConverter().Apply(context.Background(), bgr)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, uint8(128), pixel(t, out, 2, 2))
	assert.Equal(t, "grayscale_converter", NewGrayscaleConverter().Name())
}

func TestStepsStopOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := filled(t, 3, 3, 0)

	_, err := NewMedianFilter(3).Apply(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewGaussianFilter(3).Apply(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewGrayscaleConverter().Apply(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
}

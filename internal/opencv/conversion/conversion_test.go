package conversion

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillRectClipsToBounds(t *testing.T) {
	mat, err := NewFilledMat(10, 10, 255)
	require.NoError(t, err)
	defer mat.Close()

	require.NoError(t, FillRect(mat, image.Rect(8, 8, 20, 20), 0))

	v, err := mat.GetUCharAt(9, 9)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v)

	v, err = mat.GetUCharAt(7, 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), v)
}

func TestGrayBGRRoundTripKeepsIntensity(t *testing.T) {
	gray, err := NewFilledMat(4, 6, 200)
	require.NoError(t, err)
	defer gray.Close()

	bgr, err := ConvertToBGR(gray)
	require.NoError(t, err)
	defer bgr.Close()
	assert.Equal(t, 3, bgr.Channels())

	back, err := ConvertToGrayscale(bgr)
	require.NoError(t, err)
	defer back.Close()

	assert.Equal(t, 1, back.Channels())
	assert.Equal(t, gray.ToBytes(), back.ToBytes())
}

func TestConvertToGrayscaleClonesSingleChannel(t *testing.T) {
	gray, err := NewFilledMat(3, 3, 7)
	require.NoError(t, err)
	defer gray.Close()

	out, err := ConvertToGrayscale(gray)
	require.NoError(t, err)
	defer out.Close()

	assert.NotEqual(t, gray.ID(), out.ID())
	assert.Equal(t, gray.ToBytes(), out.ToBytes())
}

func TestGetMatProperties(t *testing.T) {
	assert.True(t, GetMatProperties(nil).Empty)

	mat, err := NewFilledMat(5, 7, 0)
	require.NoError(t, err)
	defer mat.Close()

	props := GetMatProperties(mat)
	assert.Equal(t, 5, props.Rows)
	assert.Equal(t, 7, props.Cols)
	assert.Equal(t, "8-bit unsigned single channel", props.DataType)
	assert.Equal(t, "filled", props.Tag)
	assert.Equal(t, 7, props.Fields()["width"])
	assert.Equal(t, "filled", props.Fields()["tag"])
}

func TestNewFilledMatRejectsZeroSize(t *testing.T) {
	_, err := NewFilledMat(0, 5, 0)
	assert.Error(t, err)
}

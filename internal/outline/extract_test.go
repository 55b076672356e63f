package outline

import (
	"image"
	"testing"

	"particle-meter/internal/models"
	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"
	"particle-meter/internal/processing/border"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paddedParticleImage mimics preprocessor output: background 255, particle
// pixels 0, padded with background.
func paddedParticleImage(t *testing.T, w, h int, particle image.Rectangle, pad int) *safe.Mat {
	t.Helper()
	img, err := conversion.NewFilledMat(h, w, border.Background)
	require.NoError(t, err)
	defer img.Close()
	require.NoError(t, conversion.FillRect(img, particle, 0))

	padded, err := border.AddBorder(img, pad, border.Background)
	require.NoError(t, err)
	t.Cleanup(padded.Close)
	return padded
}

func TestSingleParticleYieldsFrameAndParticle(t *testing.T) {
	binary := paddedParticleImage(t, 60, 60, image.Rect(20, 20, 28, 28), 10)

	set, err := Extract(binary)
	require.NoError(t, err)
	require.Len(t, set, 2)

	filtered, err := FilterFrame(set, LargestArea{})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	area := Area(filtered[0])
	assert.GreaterOrEqual(t, area, 64.0)
	assert.LessOrEqual(t, area, 81.0)
}

func TestFrameIsLargestAfterPadding(t *testing.T) {
	const pad = 10
	binary := paddedParticleImage(t, 100, 100, image.Rect(40, 40, 45, 45), pad)

	set, err := Extract(binary)
	require.NoError(t, err)
	require.Len(t, set, 2)

	frame := FrameIndex(set, LargestArea{})
	require.GreaterOrEqual(t, frame, 0)

	side := float64(100 + 2*pad - 1)
	frameArea := Area(set[frame])
	particleArea := Area(set[1-frame])

	assert.InDelta(t, side*side, frameArea, 1)
	assert.GreaterOrEqual(t, particleArea, 25.0)
	assert.LessOrEqual(t, particleArea, 36.0)
	assert.Greater(t, frameArea, particleArea)

	edge := TouchesImageEdge{Size: image.Pt(binary.Cols(), binary.Rows())}
	assert.Equal(t, frame, FrameIndex(set, edge), "both strategies must agree on the frame")
}

func TestParticleTouchingOriginalEdgeStaysSeparate(t *testing.T) {
	binary := paddedParticleImage(t, 50, 50, image.Rect(0, 10, 6, 16), 10)

	set, err := Extract(binary)
	require.NoError(t, err)
	require.Len(t, set, 2)

	edge := TouchesImageEdge{Size: image.Pt(binary.Cols(), binary.Rows())}
	filtered, err := FilterFrame(set, edge)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Less(t, Area(filtered[0]), 100.0)
}

func TestExtractWithoutForeground(t *testing.T) {
	blank, err := conversion.NewFilledMat(20, 20, 0)
	require.NoError(t, err)
	defer blank.Close()

	set, err := Extract(blank)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestExtractDoesNotModifyInput(t *testing.T) {
	binary := paddedParticleImage(t, 30, 30, image.Rect(5, 5, 12, 9), 3)
	before := binary.ToBytes()

	_, err := Extract(binary)
	require.NoError(t, err)
	assert.Equal(t, before, binary.ToBytes())
}

func TestExtractRejectsInvalidInput(t *testing.T) {
	_, err := Extract(nil)
	assert.ErrorIs(t, err, models.ErrInvalidImage)

	gray, err := conversion.NewFilledMat(4, 4, 0)
	require.NoError(t, err)
	defer gray.Close()
	bgr, err := conversion.ConvertToBGR(gray)
	require.NoError(t, err)
	defer bgr.Close()

	_, err = Extract(bgr)
	assert.True(t, models.IsKind(err, models.KindInvalidImage))
}

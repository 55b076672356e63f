// Package border pads and unpads images with a constant frame. Padding keeps
// particles that touch the image edge separable from it during contour
// tracing; the visualizer strips it again before writing.
package border

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Background is the padding value: thresholding maps flat regions to 255.
const Background uint8 = 255

// AddBorder returns a copy of src grown by width pixels on every side, the
// new pixels set to value in every channel.
func AddBorder(src *safe.Mat, width int, value uint8) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "AddBorder"); err != nil {
		return nil, err
	}
	if width < 0 {
		return nil, fmt.Errorf("border width must not be negative, got %d", width)
	}
	if width == 0 {
		return src.Clone()
	}

	padded := gocv.NewMat()
	fill := color.RGBA{R: value, G: value, B: value, A: 255}
	gocv.CopyMakeBorder(src.GetMat(), &padded, width, width, width, width, gocv.BorderConstant, fill)

	return safe.Adopt(padded, "padded")
}

// StripBorder returns a copy of src with width pixels removed from every side.
func StripBorder(src *safe.Mat, width int) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "StripBorder"); err != nil {
		return nil, err
	}
	if width < 0 {
		return nil, fmt.Errorf("border width must not be negative, got %d", width)
	}
	if width == 0 {
		return src.Clone()
	}
	if src.Cols() <= 2*width || src.Rows() <= 2*width {
		return nil, fmt.Errorf("image %dx%d too small to strip a %d px border", src.Cols(), src.Rows(), width)
	}

	return src.CropClone(image.Rect(width, width, src.Cols()-width, src.Rows()-width))
}

// Step adapts AddBorder to the processing chain.
type Step struct {
	Width int
	Value uint8
}

func NewStep(width int, value uint8) *Step {
	return &Step{Width: width, Value: value}
}

func (s *Step) Name() string {
	return "border_padding"
}

func (s *Step) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return AddBorder(input, s.Width, s.Value)
}

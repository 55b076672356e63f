package pipeline

import (
	"fmt"
	"image/color"

	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"
	"particle-meter/internal/outline"
	"particle-meter/internal/processing/border"

	"gocv.io/x/gocv"
)

// ContourRenderer draws outlines traced on a padded image back onto the
// unpadded original: it pads with the same width, draws, then strips.
type ContourRenderer struct {
	borderWidth int
	color       color.RGBA
	thickness   int
}

func NewContourRenderer(borderWidth int, c color.RGBA, thickness int) *ContourRenderer {
	return &ContourRenderer{borderWidth: borderWidth, color: c, thickness: thickness}
}

func (r *ContourRenderer) Render(img *safe.Mat, set outline.Set) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(img, "render_outlines"); err != nil {
		return nil, err
	}

	bgr, err := conversion.ConvertToBGR(img)
	if err != nil {
		return nil, fmt.Errorf("colour conversion failed: %w", err)
	}
	defer bgr.Close()

	padded, err := border.AddBorder(bgr, r.borderWidth, border.Background)
	if err != nil {
		return nil, fmt.Errorf("padding failed: %w", err)
	}
	defer padded.Close()

	if len(set) > 0 {
		contours := gocv.NewPointsVectorFromPoints(set.Points())
		defer contours.Close()

		canvas := padded.GetMat()
		gocv.DrawContours(&canvas, contours, -1, r.color, r.thickness)
	}

	return border.StripBorder(padded, r.borderWidth)
}

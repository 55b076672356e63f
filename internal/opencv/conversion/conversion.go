package conversion

import (
	"fmt"

	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ConvertToGrayscale converts multi-channel images to single-channel grayscale
// using OpenCV's luminance weights.
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if src.Channels() == 1 {
		return src.Clone()
	}

	dst, err := safe.NewMatWithTag(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1, "gray")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	switch src.Channels() {
	case 3:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return dst, nil
}

// ConvertToBGR returns a 3-channel copy suitable for drawing coloured overlays.
func ConvertToBGR(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "BGR conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if src.Channels() == 3 {
		return src.Clone()
	}

	dst, err := safe.NewMatWithTag(src.Rows(), src.Cols(), gocv.MatTypeCV8UC3, "bgr")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	switch src.Channels() {
	case 1:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRAToBGR)
	default:
		dst.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return dst, nil
}

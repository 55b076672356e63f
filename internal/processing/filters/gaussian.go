package filters

import (
	"context"
	"image"

	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GaussianFilter suppresses sensor noise before thresholding. Sigma is
// derived from the kernel size.
type GaussianFilter struct {
	kernelSize int
}

func NewGaussianFilter(kernelSize int) *GaussianFilter {
	return &GaussianFilter{kernelSize: kernelSize}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKernel(g.kernelSize, "gaussian"); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, "GaussianBlur"); err != nil {
		return nil, err
	}

	dst, err := newLike(input, "blurred")
	if err != nil {
		return nil, err
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.GaussianBlur(srcMat, &dstMat, image.Point{X: g.kernelSize, Y: g.kernelSize}, 0, 0, gocv.BorderDefault)

	return dst, nil
}

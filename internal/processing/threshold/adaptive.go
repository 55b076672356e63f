package threshold

import (
	"context"
	"fmt"

	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// AdaptiveThreshold binarizes against a Gaussian-weighted local mean so that
// uneven illumination across the micrograph does not shift the cutoff.
// A pixel becomes 255 when it is brighter than its local mean minus Offset,
// otherwise 0.
type AdaptiveThreshold struct {
	BlockSize int
	Offset    float32
}

func NewAdaptiveThreshold(blockSize int, offset float32) *AdaptiveThreshold {
	return &AdaptiveThreshold{BlockSize: blockSize, Offset: offset}
}

func (a *AdaptiveThreshold) Name() string {
	return "adaptive_threshold"
}

func (a *AdaptiveThreshold) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if a.BlockSize < 3 || a.BlockSize%2 == 0 {
		return nil, fmt.Errorf("block size must be odd and at least 3, got %d", a.BlockSize)
	}
	if err := safe.ValidateSingleChannel(input, "AdaptiveThreshold"); err != nil {
		return nil, err
	}

	dst, err := safe.NewMatWithTag(input.Rows(), input.Cols(), gocv.MatTypeCV8UC1, "binary")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()
	gocv.AdaptiveThreshold(srcMat, &dstMat, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, a.BlockSize, a.Offset)

	return dst, nil
}

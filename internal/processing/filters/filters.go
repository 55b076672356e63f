// Package filters holds the smoothing and colour steps that run ahead of
// binarization.
package filters

import (
	"context"
	"fmt"

	"particle-meter/internal/opencv/safe"
)

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func validateKernel(size int, name string) error {
	if size < 1 || size%2 == 0 {
		return fmt.Errorf("%s kernel must be a positive odd number, got %d", name, size)
	}
	return nil
}

func newLike(src *safe.Mat, tag string) (*safe.Mat, error) {
	dst, err := safe.NewMatWithTag(src.Rows(), src.Cols(), src.Type(), tag)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}
	return dst, nil
}

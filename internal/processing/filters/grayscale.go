package filters

import (
	"context"

	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"
)

// GrayscaleConverter converts colour input to a single luminance channel.
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale_converter"
}

func (g *GrayscaleConverter) Apply(ctx context.Context, input *safe.Mat) (*safe.Mat, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	return conversion.ConvertToGrayscale(input)
}

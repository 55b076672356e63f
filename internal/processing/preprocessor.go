// Package processing turns a decoded micrograph into the padded binary image
// consumed by outline extraction.
package processing

import (
	"context"

	"particle-meter/internal/logger"
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"
	"particle-meter/internal/processing/border"
	"particle-meter/internal/processing/chain"
	"particle-meter/internal/processing/filters"
	"particle-meter/internal/processing/threshold"
)

// Preprocessor runs grayscale conversion, smoothing, adaptive binarization,
// speckle removal and border padding, in that order.
type Preprocessor struct {
	chain  *chain.ProcessingChain
	logger logger.Logger
}

func NewPreprocessor(cfg models.Config, log logger.Logger) *Preprocessor {
	pc := chain.NewProcessingChain([]chain.ProcessingStep{
		filters.NewGrayscaleConverter(),
		filters.NewGaussianFilter(cfg.BlurKernel),
		threshold.NewAdaptiveThreshold(cfg.ThresholdBlockSize, cfg.ThresholdOffset),
		filters.NewMedianFilter(cfg.MedianKernel),
		border.NewStep(cfg.BorderWidth, border.Background),
	})

	pc.SetObserver(func(step string, output *safe.Mat) {
		log.Debug("Preprocessor", "step completed", map[string]interface{}{
			"step":   step,
			"width":  output.Cols(),
			"height": output.Rows(),
		})
	})

	return &Preprocessor{chain: pc, logger: log}
}

// StepNames reports the fixed step order.
func (p *Preprocessor) StepNames() []string {
	return p.chain.GetStepNames()
}

// Preprocess returns a new single-channel image whose pixels are 0 or 255.
// The input is not modified.
func (p *Preprocessor) Preprocess(ctx context.Context, img *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(img, "Preprocess"); err != nil {
		return nil, &models.OpError{Op: "preprocess", Kind: models.KindInvalidImage, Err: err}
	}

	p.logger.Debug("Preprocessor", "preprocessing started", conversion.GetMatProperties(img).Fields())

	binary, err := p.chain.Execute(ctx, img)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &models.OpError{Op: "preprocess", Kind: models.KindInvalidImage, Err: err}
	}

	return binary, nil
}

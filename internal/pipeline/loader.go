package pipeline

import (
	"fmt"
	"os"

	"particle-meter/internal/logger"
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/conversion"
	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// FileLoader reads images from disk through OpenCV, always as 3-channel BGR.
type FileLoader struct {
	logger logger.Logger
}

func NewFileLoader(log logger.Logger) *FileLoader {
	return &FileLoader{logger: log}
}

func (l *FileLoader) Load(path string) (*safe.Mat, error) {
	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path": path,
	})

	invalid := func(err error) error {
		return &models.OpError{Op: "load_image", Kind: models.KindInvalidImage, Path: path, Err: err}
	}

	if !isSupportedImageFormat(path) {
		return nil, invalid(fmt.Errorf("unsupported image format"))
	}

	if _, err := os.Stat(path); err != nil {
		return nil, invalid(err)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	img, err := safe.Adopt(mat, "loaded_image")
	if err != nil {
		return nil, invalid(fmt.Errorf("failed to decode image: %w", err))
	}

	if err := safe.ValidateDimensions(img.Cols(), img.Rows(), "load_image"); err != nil {
		img.Close()
		return nil, invalid(err)
	}

	l.logger.Info("ImageLoader", "image loaded successfully", conversion.GetMatProperties(img).Fields())

	return img, nil
}

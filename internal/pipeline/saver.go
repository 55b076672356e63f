package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"particle-meter/internal/logger"
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// FileSaver writes images through OpenCV; the extension picks the encoder.
type FileSaver struct {
	logger logger.Logger
}

func NewFileSaver(log logger.Logger) *FileSaver {
	return &FileSaver{logger: log}
}

func (s *FileSaver) Save(path string, img *safe.Mat) error {
	fail := func(err error) error {
		return &models.OpError{Op: "save_image", Kind: models.KindWriteFailure, Path: path, Err: err}
	}

	if err := safe.ValidateMatForOperation(img, "save_image"); err != nil {
		return fail(err)
	}

	if !isSupportedImageFormat(path) {
		return fail(fmt.Errorf("unsupported image format"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(err)
		}
	}

	if ok := gocv.IMWrite(path, img.GetMat()); !ok {
		return fail(fmt.Errorf("encoder rejected image"))
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"width":  img.Cols(),
		"height": img.Rows(),
	})

	return nil
}

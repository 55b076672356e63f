package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
}

var supportedImageFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

func isSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedImageFormats {
		if ext == format {
			return true
		}
	}
	return false
}

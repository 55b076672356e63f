package pipeline

import (
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/safe"
	"particle-meter/internal/outline"
)

// ImageLoader decodes an image file. Unreadable or undecodable input fails
// with ErrInvalidImage.
type ImageLoader interface {
	Load(path string) (*safe.Mat, error)
}

// ImageSaver encodes an image to a file, choosing the format by extension.
type ImageSaver interface {
	Save(path string, img *safe.Mat) error
}

// ResultWriter persists the single result record of a run.
type ResultWriter interface {
	Write(path string, result models.MeasurementResult) error
}

// OutlineRenderer draws retained outlines over an unpadded colour image.
type OutlineRenderer interface {
	Render(img *safe.Mat, set outline.Set) (*safe.Mat, error)
}

package conversion

import (
	"fmt"
	"image"

	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MatProperties contains information about Mat characteristics
type MatProperties struct {
	Rows     int
	Cols     int
	Channels int
	Type     gocv.MatType
	DataType string
	Tag      string
	Empty    bool
}

// GetMatProperties returns detailed information about a Mat
func GetMatProperties(mat *safe.Mat) MatProperties {
	if mat == nil {
		return MatProperties{Empty: true}
	}

	return MatProperties{
		Rows:     mat.Rows(),
		Cols:     mat.Cols(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
		DataType: getDataTypeName(mat.Type()),
		Tag:      mat.Tag(),
		Empty:    mat.Empty(),
	}
}

// Fields flattens the properties for structured logging.
func (p MatProperties) Fields() map[string]interface{} {
	return map[string]interface{}{
		"width":     p.Cols,
		"height":    p.Rows,
		"channels":  p.Channels,
		"data_type": p.DataType,
		"tag":       p.Tag,
	}
}

// NewFilledMat creates a single-channel Mat with every pixel set to value.
func NewFilledMat(rows, cols int, value uint8) (*safe.Mat, error) {
	if err := safe.ValidateDimensions(cols, rows, "filled Mat"); err != nil {
		return nil, err
	}

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(value), 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	return safe.Adopt(mat, "filled")
}

// FillRect sets every pixel of a single-channel Mat inside rect to value.
// rect is clipped to the Mat bounds.
func FillRect(mat *safe.Mat, rect image.Rectangle, value uint8) error {
	if err := safe.ValidateSingleChannel(mat, "rectangle fill"); err != nil {
		return err
	}

	rect = rect.Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if err := mat.SetUCharAt(y, x, value); err != nil {
				return fmt.Errorf("pixel setting failed at (%d,%d): %w", x, y, err)
			}
		}
	}

	return nil
}

// getDataTypeName returns human-readable name for MatType
func getDataTypeName(matType gocv.MatType) string {
	switch matType {
	case gocv.MatTypeCV8UC1:
		return "8-bit unsigned single channel"
	case gocv.MatTypeCV8UC3:
		return "8-bit unsigned 3-channel"
	case gocv.MatTypeCV8UC4:
		return "8-bit unsigned 4-channel"
	case gocv.MatTypeCV16UC1:
		return "16-bit unsigned single channel"
	case gocv.MatTypeCV32FC1:
		return "32-bit float single channel"
	default:
		return fmt.Sprintf("unknown type %d", int(matType))
	}
}

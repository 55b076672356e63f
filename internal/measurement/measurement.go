// Package measurement converts retained outlines into the reported figures.
package measurement

import (
	"fmt"

	"particle-meter/internal/models"
	"particle-meter/internal/outline"

	"gonum.org/v1/gonum/floats"
)

// Calculator sums outline areas and applies the unit conversion.
type Calculator struct {
	scale       float64
	emptyPolicy string
}

func NewCalculator(scale float64, emptyPolicy string) *Calculator {
	return &Calculator{scale: scale, emptyPolicy: emptyPolicy}
}

// RawPixelArea is the summed shoelace area of every outline.
func RawPixelArea(set outline.Set) float64 {
	if len(set) == 0 {
		return 0
	}
	return floats.Sum(set.Areas())
}

// ReportedArea applies the reference conversion
//
//	um   = raw / scale
//	area = raw / (um * um)
//
// which reduces to scale²/raw: the figure shrinks as particles grow. This is
// kept as-is for compatibility with existing result records; PhysicalArea is
// the linear conversion. raw must be positive.
func ReportedArea(raw, scale float64) float64 {
	um := raw / scale
	return raw / (um * um)
}

// PhysicalArea converts square pixels to square micrometers.
func PhysicalArea(raw, scale float64) float64 {
	return raw / (scale * scale)
}

// Measure counts the outlines and converts their summed area. When the sum
// is zero the empty policy applies: "zero" yields a zero-area result, "fail"
// returns ErrEmptyOutlineSet.
func (c *Calculator) Measure(set outline.Set) (models.MeasurementResult, error) {
	if c.scale <= 0 {
		return models.MeasurementResult{}, &models.OpError{
			Op:   "measure",
			Kind: models.KindInvalidConfig,
			Err:  fmt.Errorf("scale factor must be positive, got %v", c.scale),
		}
	}

	raw := RawPixelArea(set)
	result := models.MeasurementResult{
		PointCount:   len(set),
		RawPixelArea: raw,
	}

	if raw == 0 {
		if c.emptyPolicy == models.EmptyPolicyFail {
			return models.MeasurementResult{}, &models.OpError{
				Op:   "measure",
				Kind: models.KindEmptyOutlineSet,
				Err:  fmt.Errorf("%d retained outlines enclose no area", len(set)),
			}
		}
		return result, nil
	}

	result.Area = ReportedArea(raw, c.scale)
	return result, nil
}

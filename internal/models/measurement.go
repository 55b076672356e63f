package models

// MeasurementResult is produced once per run and not modified afterwards.
type MeasurementResult struct {
	// PointCount is the number of particles retained after frame removal,
	// not the number of traced boundary points.
	PointCount int
	// Area is the reported physical figure.
	Area float64
	// RawPixelArea is the summed outline area before unit conversion.
	RawPixelArea float64
}

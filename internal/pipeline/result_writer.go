package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"particle-meter/internal/logger"
	"particle-meter/internal/models"
)

// AreaUnit suffixes the serialized area.
const AreaUnit = "µm"

// resultRecord keeps the field names of the records the tool has always
// produced.
type resultRecord struct {
	PointCount int    `json:"Количество точек"`
	Area       string `json:"Площадь"`
}

// JSONResultWriter stores the result as a single JSON object.
type JSONResultWriter struct {
	logger logger.Logger
}

func NewJSONResultWriter(log logger.Logger) *JSONResultWriter {
	return &JSONResultWriter{logger: log}
}

// FormatArea renders an area with its unit marker, e.g. "0.0023 µm".
func FormatArea(area float64) string {
	return FormatNumber(area) + " " + AreaUnit
}

func (w *JSONResultWriter) Write(path string, result models.MeasurementResult) error {
	fail := func(err error) error {
		return &models.OpError{Op: "write_result", Kind: models.KindWriteFailure, Path: path, Err: err}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resultRecord{
		PointCount: result.PointCount,
		Area:       FormatArea(result.Area),
	}); err != nil {
		return fail(err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err)
	}

	// the record only appears at path once fully written
	tmp, err := os.CreateTemp(dir, ".result-*.json")
	if err != nil {
		return fail(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}

	w.logger.Info("ResultWriter", "result written", map[string]interface{}{
		"path":        path,
		"point_count": result.PointCount,
	})

	return nil
}

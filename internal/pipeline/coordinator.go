package pipeline

import (
	"context"
	"errors"
	"image"

	"particle-meter/internal/debug/timing"
	"particle-meter/internal/logger"
	"particle-meter/internal/measurement"
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/safe"
	"particle-meter/internal/outline"
	"particle-meter/internal/processing"
)

// Measurement is the in-memory outcome of the core stages.
type Measurement struct {
	Result models.MeasurementResult
	// Candidates is the number of outlines before frame removal.
	Candidates int
	// FrameIndex is the position of the removed outline among the candidates.
	FrameIndex int
	Retained   outline.Set
	PaddedSize image.Point
}

// Report describes a full run, including what was written.
type Report struct {
	Measurement
	Timings []timing.StageTiming
	// WriteErr holds non-fatal output failures; the measurement stays valid.
	WriteErr error
}

type Coordinator struct {
	cfg          models.Config
	logger       logger.Logger
	loader       ImageLoader
	saver        ImageSaver
	writer       ResultWriter
	renderer     OutlineRenderer
	preprocessor *processing.Preprocessor
	calculator   *measurement.Calculator
	newTracker   func() *timing.Tracker
}

type Option func(*Coordinator)

func WithLoader(l ImageLoader) Option        { return func(c *Coordinator) { c.loader = l } }
func WithSaver(s ImageSaver) Option          { return func(c *Coordinator) { c.saver = s } }
func WithResultWriter(w ResultWriter) Option { return func(c *Coordinator) { c.writer = w } }
func WithRenderer(r OutlineRenderer) Option  { return func(c *Coordinator) { c.renderer = r } }

// NewCoordinator validates cfg and wires the default file adapters.
func NewCoordinator(cfg models.Config, log logger.Logger, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Coordinator{
		cfg:          cfg,
		logger:       log,
		loader:       NewFileLoader(log),
		saver:        NewFileSaver(log),
		writer:       NewJSONResultWriter(log),
		renderer:     NewContourRenderer(cfg.BorderWidth, cfg.OutlineColor.RGBA(), cfg.OutlineThickness),
		preprocessor: processing.NewPreprocessor(cfg, log),
		calculator:   measurement.NewCalculator(cfg.ScaleFactor, cfg.EmptyPolicy),
		newTracker:   timing.NewTracker,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Measure runs preprocessing, extraction, frame removal and area calculation
// on an already decoded image. img is not modified.
func (c *Coordinator) Measure(ctx context.Context, img *safe.Mat) (Measurement, error) {
	return c.measure(ctx, img, timing.NewTracker())
}

func (c *Coordinator) measure(ctx context.Context, img *safe.Mat, tracker TimingTracker) (Measurement, error) {
	stage := tracker.StartTiming("preprocess")
	binary, err := c.preprocessor.Preprocess(ctx, img)
	tracker.EndTiming(stage)
	if err != nil {
		return Measurement{}, err
	}
	defer binary.Close()

	stage = tracker.StartTiming("extract")
	candidates, err := outline.Extract(binary)
	tracker.EndTiming(stage)
	if err != nil {
		return Measurement{}, err
	}

	padded := image.Pt(binary.Cols(), binary.Rows())
	excluder, err := outline.NewExcluder(c.cfg.Exclusion, padded)
	if err != nil {
		return Measurement{}, err
	}

	stage = tracker.StartTiming("filter")
	frame := outline.FrameIndex(candidates, excluder)
	retained, err := outline.FilterFrame(candidates, excluder)
	tracker.EndTiming(stage)
	if err != nil {
		return Measurement{}, err
	}

	c.logger.Debug("Coordinator", "frame outline removed", map[string]interface{}{
		"strategy":   excluder.Name(),
		"candidates": len(candidates),
		"frame":      frame,
	})

	stage = tracker.StartTiming("measure")
	result, err := c.calculator.Measure(retained)
	tracker.EndTiming(stage)
	if err != nil {
		return Measurement{}, err
	}

	return Measurement{
		Result:     result,
		Candidates: len(candidates),
		FrameIndex: frame,
		Retained:   retained,
		PaddedSize: padded,
	}, nil
}

// Run executes the whole job described by the configuration: measure the
// clean image, write the result record, then draw the retained outlines on
// the contour-source image.
//
// Load and measurement failures are fatal and return a nil report. Output
// failures are collected in Report.WriteErr and also returned, so callers
// always see them while keeping the result.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	tracker := c.newTracker()

	stage := tracker.StartTiming("load")
	img, err := c.loader.Load(c.cfg.ImagePath)
	tracker.EndTiming(stage)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	m, err := c.measure(ctx, img, tracker)
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{"path": c.cfg.ImagePath})
		return nil, err
	}

	c.logger.Info("Coordinator", "measurement completed", map[string]interface{}{
		"point_count":    m.Result.PointCount,
		"area":           m.Result.Area,
		"raw_pixel_area": m.Result.RawPixelArea,
		"physical_area":  measurement.PhysicalArea(m.Result.RawPixelArea, c.cfg.ScaleFactor),
	})

	var writeErrs []error

	stage = tracker.StartTiming("write_result")
	if err := c.writer.Write(c.cfg.ResultPath, m.Result); err != nil {
		c.logger.Error("ResultWriter", err, nil)
		writeErrs = append(writeErrs, err)
	}
	tracker.EndTiming(stage)

	if c.cfg.AnnotatedPath != "" {
		stage = tracker.StartTiming("annotate")
		err := c.annotate(img, m)
		tracker.EndTiming(stage)
		if err != nil {
			if !models.IsKind(err, models.KindWriteFailure) {
				return nil, err
			}
			c.logger.Error("Visualizer", err, nil)
			writeErrs = append(writeErrs, err)
		}
	}

	report := &Report{
		Measurement: m,
		Timings:     tracker.Timings(),
		WriteErr:    errors.Join(writeErrs...),
	}

	c.logger.Debug("Coordinator", "run finished", map[string]interface{}{
		"total_ms": tracker.Total().Milliseconds(),
	})

	return report, report.WriteErr
}

func (c *Coordinator) annotate(measured *safe.Mat, m Measurement) error {
	source := measured
	if path := c.cfg.ContourImagePath; path != "" && path != c.cfg.ImagePath {
		img, err := c.loader.Load(path)
		if err != nil {
			return err
		}
		defer img.Close()
		source = img
	}

	if source.Cols() != measured.Cols() || source.Rows() != measured.Rows() {
		c.logger.Warning("Visualizer", "contour image size differs from measured image", map[string]interface{}{
			"measured": image.Pt(measured.Cols(), measured.Rows()).String(),
			"contour":  image.Pt(source.Cols(), source.Rows()).String(),
		})
	}

	annotated, err := c.renderer.Render(source, m.Retained)
	if err != nil {
		return &models.OpError{Op: "render_outlines", Kind: models.KindWriteFailure, Path: c.cfg.AnnotatedPath, Err: err}
	}
	defer annotated.Close()

	return c.saver.Save(c.cfg.AnnotatedPath, annotated)
}

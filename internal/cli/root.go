package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"particle-meter/internal/logger"
	"particle-meter/internal/models"
	"particle-meter/internal/pipeline"
	"particle-meter/internal/shutdown"
)

// Exit statuses.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitWriteFailure = 2
)

// Execute runs the root command against os.Args and returns the exit status.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}

	switch {
	case err == nil:
		return ExitOK
	case models.IsKind(err, models.KindWriteFailure) && !isFatal(err):
		return ExitWriteFailure
	default:
		return ExitFailure
	}
}

// fatalError marks errors that abort the run before any result exists.
type fatalError struct{ err error }

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func isFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}

type options struct {
	configPath  string
	image       string
	contours    string
	result      string
	annotated   string
	scale       float64
	border      int
	exclude     string
	emptyPolicy string
	logLevel    string
	logFile     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "particle-meter",
		Short:         "Count particles in a micrograph and measure their area",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return measure(cmd, opts, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	defaults := models.DefaultConfig()
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file (flags override it)")
	f.StringVarP(&opts.image, "image", "i", defaults.ImagePath, "clean micrograph to measure")
	f.StringVar(&opts.contours, "contours", defaults.ContourImagePath, "image the outlines are drawn on (defaults to --image when empty)")
	f.StringVarP(&opts.result, "result", "o", defaults.ResultPath, "JSON result record")
	f.StringVar(&opts.annotated, "annotated", defaults.AnnotatedPath, "annotated image output (empty to skip)")
	f.Float64Var(&opts.scale, "scale", defaults.ScaleFactor, "pixels per micrometer")
	f.IntVar(&opts.border, "border", defaults.BorderWidth, "padding width in pixels")
	f.StringVar(&opts.exclude, "exclude", defaults.Exclusion, "frame exclusion strategy: largest|touches-border")
	f.StringVar(&opts.emptyPolicy, "empty-policy", defaults.EmptyPolicy, "result when no particle area remains: zero|fail")
	f.StringVar(&opts.logLevel, "log-level", "info", "debug|info|warn|error|off")
	f.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file")

	return cmd
}

func measure(cmd *cobra.Command, opts options, stdout, stderr io.Writer) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return &fatalError{err}
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return &fatalError{err}
	}

	log, closeLog, err := newLogger(stderr, level, opts.logFile)
	if err != nil {
		return &fatalError{err}
	}

	mgr := shutdown.NewManager(cmd.Context(), log)
	mgr.Register(shutdown.Func(closeLog))
	mgr.Listen()
	defer mgr.Shutdown()

	coordinator, err := pipeline.NewCoordinator(cfg, log)
	if err != nil {
		return &fatalError{err}
	}

	report, err := coordinator.Run(mgr.Context())
	if report == nil {
		return &fatalError{err}
	}

	printResult(stdout, report.Result)
	return err
}

// resolveConfig layers defaults, the optional YAML file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, opts options) (models.Config, error) {
	cfg := models.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := models.LoadConfig(opts.configPath)
		if err != nil {
			return models.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("image") {
		cfg.ImagePath = opts.image
	}
	if f.Changed("contours") {
		cfg.ContourImagePath = opts.contours
	}
	if f.Changed("result") {
		cfg.ResultPath = opts.result
	}
	if f.Changed("annotated") {
		cfg.AnnotatedPath = opts.annotated
	}
	if f.Changed("scale") {
		cfg.ScaleFactor = opts.scale
	}
	if f.Changed("border") {
		cfg.BorderWidth = opts.border
	}
	if f.Changed("exclude") {
		cfg.Exclusion = opts.exclude
	}
	if f.Changed("empty-policy") {
		cfg.EmptyPolicy = opts.emptyPolicy
	}

	return cfg, cfg.Validate()
}

// newLogger writes console output to stderr and, when logFile is set, JSON
// lines to that file. The returned func closes the file.
func newLogger(stderr io.Writer, level zerolog.Level, logFile string) (logger.Logger, func(), error) {
	console := zerolog.ConsoleWriter{Out: stderr}
	if logFile == "" {
		return logger.NewZerolog(console, level), func() {}, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	w := zerolog.MultiLevelWriter(console, file)
	return logger.NewZerolog(w, level), func() { _ = file.Close() }, nil
}

func printResult(w io.Writer, result models.MeasurementResult) {
	fmt.Fprintf(w, "Количество точек: %d\n", result.PointCount)
	fmt.Fprintf(w, "Площадь: %s%s\n", pipeline.FormatNumber(result.Area), pipeline.AreaUnit)
}

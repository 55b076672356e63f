package models

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Frame exclusion strategies understood by the outline filter.
const (
	ExcludeLargest       = "largest"
	ExcludeTouchesBorder = "touches-border"
)

// Policies for a measurement with no retained area.
const (
	EmptyPolicyZero = "zero"
	EmptyPolicyFail = "fail"
)

// Config carries every tunable of a measurement run. It is passed by value
// into the pipeline and never mutated after validation.
type Config struct {
	ImagePath        string `yaml:"image_path"`
	ContourImagePath string `yaml:"contour_image_path"`
	ResultPath       string `yaml:"result_path"`
	AnnotatedPath    string `yaml:"annotated_path"`

	// ScaleFactor is pixels per micrometer.
	ScaleFactor float64 `yaml:"scale_factor"`
	BorderWidth int     `yaml:"border_width"`

	BlurKernel         int     `yaml:"blur_kernel"`
	ThresholdBlockSize int     `yaml:"threshold_block_size"`
	ThresholdOffset    float32 `yaml:"threshold_offset"`
	MedianKernel       int     `yaml:"median_kernel"`

	Exclusion   string `yaml:"exclusion"`
	EmptyPolicy string `yaml:"empty_policy"`

	OutlineColor     RGB `yaml:"outline_color"`
	OutlineThickness int `yaml:"outline_thickness"`
}

// RGB is an opaque drawing colour.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// DefaultConfig returns the reference configuration: 120 px per 50 µm,
// a 10 px frame and 3x3 kernels throughout.
func DefaultConfig() Config {
	return Config{
		ImagePath:          "clearImg.jpg",
		ContourImagePath:   "img.png",
		ResultPath:         "result.json",
		AnnotatedPath:      "contours_image_original.jpg",
		ScaleFactor:        120.0 / 50.0,
		BorderWidth:        10,
		BlurKernel:         3,
		ThresholdBlockSize: 3,
		ThresholdOffset:    1,
		MedianKernel:       3,
		Exclusion:          ExcludeLargest,
		EmptyPolicy:        EmptyPolicyZero,
		OutlineColor:       RGB{G: 255},
		OutlineThickness:   1,
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig and validates
// the result. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &OpError{Op: "load_config", Kind: KindInvalidConfig, Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &OpError{Op: "parse_config", Kind: KindInvalidConfig, Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return &OpError{Op: "validate_config", Kind: KindInvalidConfig, Err: fmt.Errorf(format, args...)}
	}

	if c.ScaleFactor <= 0 {
		return fail("scale factor must be positive, got %v", c.ScaleFactor)
	}
	if c.BorderWidth < 0 {
		return fail("border width must not be negative, got %d", c.BorderWidth)
	}
	if c.BlurKernel < 1 || c.BlurKernel%2 == 0 {
		return fail("blur kernel must be a positive odd number, got %d", c.BlurKernel)
	}
	if c.ThresholdBlockSize < 3 || c.ThresholdBlockSize%2 == 0 {
		return fail("threshold block size must be odd and at least 3, got %d", c.ThresholdBlockSize)
	}
	if c.MedianKernel < 1 || c.MedianKernel%2 == 0 {
		return fail("median kernel must be a positive odd number, got %d", c.MedianKernel)
	}
	if c.OutlineThickness < 1 {
		return fail("outline thickness must be at least 1, got %d", c.OutlineThickness)
	}

	switch c.Exclusion {
	case ExcludeLargest, ExcludeTouchesBorder:
	default:
		return fail("unknown exclusion strategy %q", c.Exclusion)
	}

	switch c.EmptyPolicy {
	case EmptyPolicyZero, EmptyPolicyFail:
	default:
		return fail("unknown empty policy %q", c.EmptyPolicy)
	}

	return nil
}

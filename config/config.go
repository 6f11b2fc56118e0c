// Package config - run configuration for the annotation conversion tool.
//
// Values are resolved in three layers: defaults, then an optional YAML file,
// then BBOX_* environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/nvr-ai/go-augment/bbox"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds one conversion run.
type Config struct {
	// Input is the directory holding the source label files.
	Input string `json:"input" yaml:"input"`
	// Output is the directory the converted label files are written to.
	Output string `json:"output" yaml:"output"`
	// From is the format of the source label files.
	From bbox.Format `json:"from" yaml:"from"`
	// To is the format the label files are written in.
	To bbox.Format `json:"to" yaml:"to"`
	// Rows and Cols fix the frame size for every file. When both are zero the
	// frame is read from the image next to each label file.
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
	// Resolution names a preset frame (e.g. "1080p") used when Rows and Cols
	// are zero.
	Resolution string `json:"resolution" yaml:"resolution"`
	// Workers bounds how many files are filtered at once.
	Workers int `json:"workers" yaml:"workers"`
	// Filter holds the survival thresholds applied between the two formats.
	Filter bbox.FilterOptions `json:"filter" yaml:"filter"`
	// Debug enables [DEBUG] logging in the processors.
	Debug bool `json:"debug" yaml:"debug"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:  "out",
		From:    bbox.FormatPascalVOC,
		To:      bbox.FormatYOLO,
		Workers: 4,
	}
}

// Load resolves the configuration and validates it.
//
// Arguments:
//   - path: YAML file to read; empty skips the file layer.
//
// Returns:
//   - The validated configuration, or an error naming the failing layer.
//
// @example
// cfg, err := config.Load("bboxconv.yaml")
func Load(path string) (*Config, error) {
	cfg, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Resolve layers defaults, the YAML file at path and the environment without
// validating the result, so callers can apply their own overrides first.
func Resolve(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, errors.Wrap(err, "environment overrides")
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Input = getEnvOrDefault("BBOX_INPUT", c.Input)
	c.Output = getEnvOrDefault("BBOX_OUTPUT", c.Output)
	c.From = bbox.Format(getEnvOrDefault("BBOX_FORMAT", string(c.From)))
	c.To = bbox.Format(getEnvOrDefault("BBOX_TARGET_FORMAT", string(c.To)))
	c.Resolution = getEnvOrDefault("BBOX_RESOLUTION", c.Resolution)

	var err error
	if c.Rows, err = getEnvAsIntOrDefault("BBOX_ROWS", c.Rows); err != nil {
		return err
	}
	if c.Cols, err = getEnvAsIntOrDefault("BBOX_COLS", c.Cols); err != nil {
		return err
	}
	if c.Workers, err = getEnvAsIntOrDefault("BBOX_WORKERS", c.Workers); err != nil {
		return err
	}
	if c.Filter.MinArea, err = getEnvAsFloatOrDefault("BBOX_MIN_AREA", c.Filter.MinArea); err != nil {
		return err
	}
	if c.Filter.MinVisibility, err = getEnvAsFloatOrDefault("BBOX_MIN_VISIBILITY", c.Filter.MinVisibility); err != nil {
		return err
	}
	if c.Filter.MinWidth, err = getEnvAsFloatOrDefault("BBOX_MIN_WIDTH", c.Filter.MinWidth); err != nil {
		return err
	}
	if c.Filter.MinHeight, err = getEnvAsFloatOrDefault("BBOX_MIN_HEIGHT", c.Filter.MinHeight); err != nil {
		return err
	}
	if c.Debug, err = getEnvAsBoolOrDefault("BBOX_DEBUG", c.Debug); err != nil {
		return err
	}
	return nil
}

// Validate checks if configuration is valid.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input directory is required")
	}
	if c.Output == "" {
		return errors.New("output directory is required")
	}
	if (c.Rows == 0) != (c.Cols == 0) || c.Rows < 0 || c.Cols < 0 {
		return errors.Errorf("rows and cols must both be positive or both be zero, got %dx%d", c.Rows, c.Cols)
	}
	if c.Resolution != "" {
		if _, ok := GetResolution(c.Resolution); !ok {
			return errors.Errorf("unknown resolution %q, valid values are %v", c.Resolution, ResolutionAliases())
		}
	}
	if c.Workers < 1 || c.Workers > 256 {
		return errors.Errorf("workers must be between 1 and 256, got %d", c.Workers)
	}
	if err := c.SourceParams().Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := c.TargetParams().Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return nil
}

// FrameSize returns the frame shared by every label file: explicit rows and
// cols first, then the resolution preset. ok is false when each file's frame
// must be read from its image.
func (c *Config) FrameSize() (rows, cols int, ok bool) {
	if c.Rows > 0 && c.Cols > 0 {
		return c.Rows, c.Cols, true
	}
	if res, found := GetResolution(c.Resolution); found {
		return res.Rows, res.Cols, true
	}
	return 0, 0, false
}

// SourceParams returns the processor parameters for reading the input files.
func (c *Config) SourceParams() bbox.Params {
	p := bbox.DefaultParams(c.From)
	p.FilterOptions = c.Filter
	return p
}

// TargetParams returns the processor parameters for writing the output files.
func (c *Config) TargetParams() bbox.Params {
	p := bbox.DefaultParams(c.To)
	p.FilterOptions = c.Filter
	return p
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return value, nil
}

// getEnvAsFloatOrDefault gets environment variable as float64 or returns default
func getEnvAsFloatOrDefault(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return value, nil
}

// getEnvAsBoolOrDefault gets environment variable as bool or returns default
func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, errors.Wrapf(err, "%s", key)
	}
	return value, nil
}

// Package config holds the render settings. Values come from Default, an
// optional YAML file, the scene, and finally command line flags, each layer
// overriding the one before.
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/timeline"
)

// ErrInvalidConfig wraps every problem found by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// EncoderAuto probes ffmpeg for the best available H.264 encoder.
const EncoderAuto = "auto"

// Fallbacks for values neither the scene nor the user set.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultFPS        = 30
	DefaultBackground = "#000000"
)

type Config struct {
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	FPS        int    `yaml:"fps,omitempty"`
	Preset     string `yaml:"preset,omitempty"`
	Background string `yaml:"background,omitempty"`

	// Workers is the number of frames rasterized in parallel. Zero sizes the
	// pool from the CPU count and free memory.
	Workers   int    `yaml:"workers,omitempty"`
	Encoder   string `yaml:"encoder,omitempty"`
	Quality   int    `yaml:"quality,omitempty"`
	PadFrames int    `yaml:"pad_frames"`
	Boundary  string `yaml:"boundary,omitempty"`

	ScenesDir string `yaml:"scenes_dir,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	// FramesDir additionally dumps every frame as PNG when set.
	FramesDir string `yaml:"frames_dir,omitempty"`

	Debug        bool   `yaml:"debug,omitempty"`
	ShowStats    bool   `yaml:"show_stats,omitempty"`
	BuildVersion string `yaml:"-"`
}

// Default returns the settings used without a config file. Size, frame rate
// and background stay unset so the scene can provide them.
func Default() *Config {
	return &Config{
		Encoder:   EncoderAuto,
		PadFrames: timeline.DefaultPadFrames,
		Boundary:  timeline.BoundaryCover.String(),
		ScenesDir: "input/scenes",
		OutputDir: "output",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return cfg, nil
}

// Fill takes the scene's values for everything still unset.
func (c *Config) Fill(width, height, fps int, background string) {
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = width, height
	}
	if c.FPS == 0 {
		c.FPS = fps
	}
	if c.Background == "" {
		c.Background = background
	}
}

// Finalize applies the preset and the fallbacks for anything still unset.
func (c *Config) Finalize() {
	switch c.Preset {
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	}
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = DefaultWidth, DefaultHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Encoder == "" {
		c.Encoder = EncoderAuto
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs error
	invalid := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, errors.Wrapf(ErrInvalidConfig, format, args...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		invalid("size %dx%d", c.Width, c.Height)
	} else if c.Width%2 != 0 || c.Height%2 != 0 {
		// yuv420p
		invalid("size %dx%d must be even", c.Width, c.Height)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		invalid("fps %d", c.FPS)
	}
	switch c.Preset {
	case "", "16:9", "9:16", "4:5":
	default:
		invalid("preset %q", c.Preset)
	}
	if c.Workers < 0 {
		invalid("workers %d", c.Workers)
	}
	if c.Quality < 0 {
		invalid("quality %d", c.Quality)
	}
	if c.PadFrames < 0 {
		invalid("pad_frames %d", c.PadFrames)
	}
	if _, err := timeline.ParseBoundary(c.Boundary); err != nil {
		invalid("%v", err)
	}
	if c.Background != "" {
		if _, err := shape.ParseHex(c.Background); err != nil {
			invalid("background: %v", err)
		}
	}
	switch c.Encoder {
	case EncoderAuto, "libx264", "h264_nvenc", "h264_videotoolbox":
	default:
		invalid("encoder %q", c.Encoder)
	}
	return errs
}

// CompileOptions are the timeline options for this config. Validate first.
func (c *Config) CompileOptions() timeline.Options {
	boundary, _ := timeline.ParseBoundary(c.Boundary)
	return timeline.Options{
		FPS:       c.FPS,
		PadFrames: c.PadFrames,
		Boundary:  boundary,
	}
}

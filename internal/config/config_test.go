package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"github.com/ivlev/shape2video/internal/timeline"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	cfg.Finalize()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Width, test.ShouldEqual, DefaultWidth)
	test.That(t, cfg.Height, test.ShouldEqual, DefaultHeight)
	test.That(t, cfg.FPS, test.ShouldEqual, DefaultFPS)
	test.That(t, cfg.Encoder, test.ShouldEqual, EncoderAuto)

	opts := cfg.CompileOptions()
	test.That(t, opts.FPS, test.ShouldEqual, DefaultFPS)
	test.That(t, opts.PadFrames, test.ShouldEqual, timeline.DefaultPadFrames)
	test.That(t, opts.Boundary, test.ShouldEqual, timeline.BoundaryCover)
}

func TestLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	data := "fps: 24\nworkers: 3\nboundary: exact\npad_frames: 0\n"
	test.That(t, os.WriteFile(path, []byte(data), 0o644), test.ShouldBeNil)

	cfg, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Workers, test.ShouldEqual, 3)
	test.That(t, cfg.OutputDir, test.ShouldEqual, "output")

	// the scene only fills what is still unset
	cfg.Fill(1920, 1080, 60, "#202020")
	test.That(t, cfg.FPS, test.ShouldEqual, 24)
	test.That(t, cfg.Width, test.ShouldEqual, 1920)
	test.That(t, cfg.Background, test.ShouldEqual, "#202020")

	cfg.Finalize()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	opts := cfg.CompileOptions()
	test.That(t, opts.Boundary, test.ShouldEqual, timeline.BoundaryExact)
	test.That(t, opts.PadFrames, test.ShouldEqual, 0)
}

func TestPreset(t *testing.T) {
	for preset, size := range map[string][2]int{
		"16:9": {1280, 720},
		"9:16": {720, 1280},
		"4:5":  {1080, 1350},
	} {
		cfg := Default()
		cfg.Preset = preset
		cfg.Fill(1920, 1080, 60, "")
		cfg.Finalize()
		test.That(t, [2]int{cfg.Width, cfg.Height}, test.ShouldResemble, size)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	test.That(t, os.IsNotExist(errors.Cause(err)), test.ShouldBeTrue)

	path := filepath.Join(dir, "typo.yaml")
	test.That(t, os.WriteFile(path, []byte("wokers: 3\n"), 0o644), test.ShouldBeNil)
	_, err = Load(path)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height = 1281, 720
	cfg.FPS = -1
	cfg.Workers = -2
	cfg.Boundary = "sometimes"
	cfg.Background = "nope"
	cfg.Encoder = "libx265"

	err := cfg.Validate()
	test.That(t, errors.Is(err, ErrInvalidConfig), test.ShouldBeTrue)
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 6)
}

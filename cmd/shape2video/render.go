package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ivlev/shape2video/internal/config"
	"github.com/ivlev/shape2video/internal/director"
	"github.com/ivlev/shape2video/internal/engine"
	"github.com/ivlev/shape2video/internal/renderer"
	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/system"
	"github.com/ivlev/shape2video/internal/timeline"
	"github.com/ivlev/shape2video/internal/video"
)

const statsLog = "benchmark.log"

// applyFlags puts the render flags on top of cfg.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet(flagWidth) || c.IsSet(flagHeight) {
		cfg.Width, cfg.Height = c.Int(flagWidth), c.Int(flagHeight)
	}
	if c.IsSet(flagFPS) {
		cfg.FPS = c.Int(flagFPS)
	}
	if c.IsSet(flagPreset) {
		cfg.Preset = c.String(flagPreset)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagEncoder) {
		cfg.Encoder = c.String(flagEncoder)
	}
	if c.IsSet(flagQuality) {
		cfg.Quality = c.Int(flagQuality)
	}
	if c.IsSet(flagPad) {
		cfg.PadFrames = c.Int(flagPad)
	}
	if c.IsSet(flagBoundary) {
		cfg.Boundary = c.String(flagBoundary)
	}
	if c.IsSet(flagFramesDir) {
		cfg.FramesDir = c.String(flagFramesDir)
	}
	if c.Bool(flagStats) {
		cfg.ShowStats = true
	}
	if c.Bool(flagDebug) {
		cfg.Debug = true
	}
}

func renderAction(c *cli.Context, logger *zap.SugaredLogger) error {
	system.InitResourceLimits(logger)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.BuildVersion = BuildVersion

	scene, scenePath, err := loadScene(c, cfg.ScenesDir, logger)
	if err != nil {
		return err
	}
	tl, err := director.Build(scene)
	if err != nil {
		return err
	}

	cfg.Fill(scene.Width, scene.Height, scene.FPS, scene.Background)
	applyFlags(c, cfg)
	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Encoder == config.EncoderAuto {
		cfg.Encoder = system.GetBestH264Encoder()
		if cfg.Encoder != video.EncoderX264 {
			logger.Infof("[*] Обнаружено аппаратное ускорение: %s", cfg.Encoder)
		}
	}

	output := c.String(flagOutput)
	if output == "" {
		output = director.GenerateOutputPath(cfg.OutputDir, scenePath)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	enc := &video.FFmpegEncoder{}
	params := video.Params{
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Encoder: cfg.Encoder,
		Quality: cfg.Quality,
	}
	if err := enc.Open(ctx, output, params); err != nil {
		return err
	}

	var sink video.Sink = enc
	if cfg.FramesDir != "" {
		seq, err := video.NewPNGSequence(cfg.FramesDir)
		if err != nil {
			return multierr.Append(err, enc.Close())
		}
		logger.Infof("[*] Кадры PNG: %s", cfg.FramesDir)
		sink = video.Tee{enc, seq}
	}

	logger.Infof("[*] Рендер %dx%d@%d, энкодер %s, потоков %d",
		cfg.Width, cfg.Height, cfg.FPS, cfg.Encoder, cfg.Workers)

	bg := shape.MustHex(cfg.Background)
	p := engine.NewProject(tl, cfg.CompileOptions(), renderer.NewGG(cfg.Width, cfg.Height, bg), sink, logger)
	p.Camera = renderer.FitKeyframes(scene.Camera, scene.Width, scene.Height, cfg.Width, cfg.Height)
	p.Workers = cfg.Workers
	p.ShowStats = cfg.ShowStats
	p.BuildVersion = cfg.BuildVersion
	p.StatsLog = statsLog

	_, runErr := p.Run(ctx)
	if err := multierr.Combine(runErr, sink.Close()); err != nil {
		return err
	}

	logger.Infof("[+++] Успех! Результат: %s", output)
	return nil
}

func inspectAction(c *cli.Context, logger *zap.SugaredLogger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	scene, _, err := loadScene(c, cfg.ScenesDir, logger)
	if err != nil {
		return err
	}
	tl, err := director.Build(scene)
	if err != nil {
		return err
	}

	fps := c.Int(flagFPS)
	if fps == 0 {
		fps = scene.FPS
	}
	if fps == 0 {
		fps = config.DefaultFPS
	}
	boundary := cfg.Boundary
	if c.IsSet(flagBoundary) {
		boundary = c.String(flagBoundary)
	}
	policy, err := timeline.ParseBoundary(boundary)
	if err != nil {
		return err
	}

	opts := timeline.Options{FPS: fps, PadFrames: cfg.PadFrames, Boundary: policy}
	frames, err := timeline.Compile(tl, opts)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "duration: %.3fs\n", tl.Duration())
	fmt.Fprintf(w, "frames:   %d @ %d fps (%s, pad %d)\n", len(frames), fps, policy, cfg.PadFrames)
	for _, s := range engine.Summarize(frames) {
		fmt.Fprintf(w, "  %5d-%-5d  %7.3fs - %7.3fs  objects %d  animations %d\n",
			s.First, s.Last, s.Start, s.End, s.Objects, s.Animations)
	}
	return nil
}

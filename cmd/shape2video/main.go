package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ivlev/shape2video/internal/config"
	"github.com/ivlev/shape2video/internal/director"
	"github.com/ivlev/shape2video/internal/logging"
)

// BuildVersion is set with -ldflags "-X main.BuildVersion=...".
var BuildVersion = "dev"

const (
	flagConfig    = "config"
	flagDebug     = "debug"
	flagScene     = "scene"
	flagOutput    = "output"
	flagFramesDir = "frames-dir"
	flagWidth     = "width"
	flagHeight    = "height"
	flagFPS       = "fps"
	flagPreset    = "preset"
	flagWorkers   = "workers"
	flagEncoder   = "encoder"
	flagQuality   = "quality"
	flagPad       = "pad"
	flagBoundary  = "boundary"
	flagStats     = "stats"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.SugaredLogger

	return &cli.App{
		Name:    "shape2video",
		Usage:   "render animated vector scenes to video",
		Version: BuildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load render settings from `FILE`",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			logger = logging.NewLogger(c.Bool(flagDebug))
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render a scene to mp4",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagScene, Usage: "scene `FILE` (default: newest scene in input/scenes)"},
					&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "video `FILE` (default: output/<scene>_<time>.mp4)"},
					&cli.StringFlag{Name: flagFramesDir, Usage: "also write every frame as PNG into `DIR`"},
					&cli.IntFlag{Name: flagWidth, Usage: "frame width"},
					&cli.IntFlag{Name: flagHeight, Usage: "frame height"},
					&cli.IntFlag{Name: flagFPS, Usage: "frames per second"},
					&cli.StringFlag{Name: flagPreset, Usage: "frame format: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)"},
					&cli.IntFlag{Name: flagWorkers, Usage: "frames rendered in parallel (0 = auto)"},
					&cli.StringFlag{Name: flagEncoder, Usage: "auto, libx264, h264_nvenc or h264_videotoolbox"},
					&cli.IntFlag{Name: flagQuality, Usage: "0 = auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s"},
					&cli.IntFlag{Name: flagPad, Usage: "frames held after the last exit (default 10)"},
					&cli.StringFlag{Name: flagBoundary, Usage: "frame boundary policy: cover or exact"},
					&cli.BoolFlag{Name: flagStats, Usage: "print a performance report and append it to benchmark.log"},
				},
				Action: func(c *cli.Context) error {
					return renderAction(c, logger)
				},
			},
			{
				Name:  "inspect",
				Usage: "compile a scene and print which frames are active",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagScene, Usage: "scene `FILE` (default: newest scene in input/scenes)"},
					&cli.IntFlag{Name: flagFPS, Usage: "frames per second (default: the scene's)"},
					&cli.StringFlag{Name: flagBoundary, Usage: "frame boundary policy: cover or exact"},
				},
				Action: func(c *cli.Context) error {
					return inspectAction(c, logger)
				},
			},
			{
				Name:  "demo",
				Usage: "write the square to triangle demo scene",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagOutput, Aliases: []string{"o"}, Usage: "scene `FILE` (default: input/scenes/demo_<time>.yaml)"},
				},
				Action: func(c *cli.Context) error {
					return demoAction(c, logger)
				},
			},
		},
	}
}

// loadConfig reads --config or starts from the defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String(flagConfig); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

// loadScene reads --scene, or the newest scene in dir.
func loadScene(c *cli.Context, dir string, logger *zap.SugaredLogger) (*director.Scene, string, error) {
	path := c.String(flagScene)
	if path == "" {
		latest, err := director.FindLatestScene(dir)
		if err != nil {
			return nil, "", errors.Wrapf(err, "положите сцену в %s/ или запустите demo", dir)
		}
		path = latest
		logger.Infof("[*] Выбрана сцена: %s", path)
	}

	scene, err := director.ReadScene(path)
	if err != nil {
		return nil, "", err
	}
	return scene, path, nil
}

func demoAction(c *cli.Context, logger *zap.SugaredLogger) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.String(flagOutput)
	if path == "" {
		path = director.GenerateScenePath(cfg.ScenesDir, "demo")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := director.WriteScene(director.DemoScene(), path); err != nil {
		return err
	}

	logger.Infof("[+++] Сцена записана: %s", path)
	return nil
}

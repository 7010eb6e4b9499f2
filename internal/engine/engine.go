// Package engine renders a compiled timeline: frames are composed and
// rasterized in parallel batches and handed to the sink strictly in order.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/shape2video/internal/director"
	"github.com/ivlev/shape2video/internal/renderer"
	"github.com/ivlev/shape2video/internal/system"
	"github.com/ivlev/shape2video/internal/timeline"
	"github.com/ivlev/shape2video/internal/video"
)

// Project is one render job. The caller owns the sink and closes it after Run.
type Project struct {
	Timeline   *timeline.Timeline
	Options    timeline.Options
	Camera     []director.Keyframe
	Rasterizer renderer.Rasterizer
	Sink       video.Sink
	// Workers is the number of frames rasterized at once. Zero asks
	// system.DefaultWorkers.
	Workers int
	Logger  *zap.SugaredLogger

	ShowStats    bool
	BuildVersion string
	// StatsLog gets one line per run when ShowStats is set.
	StatsLog string
}

// NewProject returns a project with the default worker count.
func NewProject(tl *timeline.Timeline, opts timeline.Options, r renderer.Rasterizer, sink video.Sink, logger *zap.SugaredLogger) *Project {
	return &Project{
		Timeline:   tl,
		Options:    opts,
		Rasterizer: r,
		Sink:       sink,
		Logger:     logger,
	}
}

// releaser is implemented by rasterizers that pool their frames.
type releaser interface {
	Release(img *image.RGBA)
}

// sized is implemented by rasterizers that know their frame size.
type sized interface {
	Bounds() image.Rectangle
}

// Run compiles the timeline and streams every frame to the sink. The context
// is checked between batches and passed to the rasterizer.
func (p *Project) Run(ctx context.Context) (Stats, error) {
	startTime := time.Now()
	var stats Stats

	frames, err := timeline.Compile(p.Timeline, p.Options)
	if err != nil {
		return stats, errors.Wrap(err, "compile")
	}
	stats.Compile = time.Since(startTime)
	stats.Frames = len(frames)
	stats.Duration = p.Timeline.Duration()

	if len(frames) == 0 {
		p.Logger.Warn("[!] Сцена пуста, кадров нет")
		return stats, nil
	}

	workers := p.workers()
	batchSize := workers * system.BatchPerWorker
	p.Logger.Infof("[*] Кадров: %d | Длительность: %.2fs | %d FPS | Потоков: %d",
		len(frames), stats.Duration, p.Options.FPS, workers)

	images := make([]*image.RGBA, batchSize)
	for lo := 0; lo < len(frames); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		hi := lo + batchSize
		if hi > len(frames) {
			hi = len(frames)
		}
		batch := images[:hi-lo]

		renderStart := time.Now()
		if err := p.renderBatch(ctx, frames[lo:hi], batch, workers); err != nil {
			return stats, err
		}
		stats.Render += time.Since(renderStart)

		encodeStart := time.Now()
		if err := p.writeBatch(batch, lo); err != nil {
			return stats, err
		}
		stats.Encode += time.Since(encodeStart)

		p.Logger.Debugf("[>] Ready: %d/%d", hi, len(frames))
	}

	stats.Total = time.Since(startTime)
	p.Logger.Infof("[>] Ready: %d/%d", len(frames), len(frames))
	if p.ShowStats {
		p.report(stats)
	}
	return stats, nil
}

func (p *Project) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	var frameBytes int
	if s, ok := p.Rasterizer.(sized); ok {
		b := s.Bounds()
		frameBytes = b.Dx() * b.Dy() * 4
	}
	return system.DefaultWorkers(frameBytes)
}

// renderBatch fills out[i] with the image of frames[i]. On error every image
// already rendered is released.
func (p *Project) renderBatch(ctx context.Context, frames []timeline.Frame, out []*image.RGBA, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		g.Go(func() error {
			cam := renderer.InterpolateKeyframes(p.Camera, f.Time)
			img, err := p.Rasterizer.Rasterize(gctx, f.Compose(), cam)
			if err != nil {
				return errors.Wrapf(err, "frame %d (%.3fs)", f.Index, f.Time)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.releaseAll(out)
		return err
	}
	return nil
}

// writeBatch hands the batch to the sink in order and releases each image
// once the sink has it.
func (p *Project) writeBatch(batch []*image.RGBA, first int) error {
	for i, img := range batch {
		if err := p.Sink.WriteFrame(img); err != nil {
			p.releaseAll(batch[i:])
			return errors.Wrapf(err, "frame %d", first+i)
		}
		p.release(img)
		batch[i] = nil
	}
	return nil
}

func (p *Project) release(img *image.RGBA) {
	if r, ok := p.Rasterizer.(releaser); ok && img != nil {
		r.Release(img)
	}
}

func (p *Project) releaseAll(imgs []*image.RGBA) {
	for i, img := range imgs {
		p.release(img)
		imgs[i] = nil
	}
}

// Stats are the timings of one Run. Render and Encode add up the batches.
type Stats struct {
	Frames   int
	Duration float64
	Compile  time.Duration
	Render   time.Duration
	Encode   time.Duration
	Total    time.Duration
}

// FPS is the effective number of frames produced per second of wall time.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

// Report formats the stats for the console.
func (s Stats) Report(build string) string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d (%.2fs of video)\n"+
			"Total Time: %.2fs\n"+
			"Compile: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------",
		build, s.Frames, s.Duration, s.Total.Seconds(), s.Compile.Seconds(),
		s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)
}

func (p *Project) report(stats Stats) {
	p.Logger.Info(stats.Report(p.BuildVersion))
	if p.StatsLog == "" {
		return
	}

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.BuildVersion,
		stats.Frames,
		stats.Total.Seconds(),
		stats.Render.Seconds(),
		stats.Encode.Seconds(),
		stats.FPS(),
	)
	f, err := os.OpenFile(p.StatsLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		p.Logger.Warnf("[!] Не удалось записать %s: %v", p.StatsLog, err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(logEntry); err != nil {
		p.Logger.Warnf("[!] Не удалось записать %s: %v", p.StatsLog, err)
	}
}

// Package video writes rendered frames out, either as an encoded stream or as
// numbered images.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/image/draw"
)

// Sink consumes frames in presentation order.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// ErrFrameSize is returned for frames that do not match the sink's size.
var ErrFrameSize = errors.New("frame size mismatch")

// Known encoders.
const (
	EncoderX264         = "libx264"
	EncoderNVENC        = "h264_nvenc"
	EncoderVideoToolbox = "h264_videotoolbox"
)

// Params describe the encoded stream.
type Params struct {
	Width, Height int
	FPS           int
	Encoder       string
	// Quality is the CRF for libx264, CQ for NVENC and hundreds of kbit/s for
	// VideoToolbox. Zero picks DefaultQuality.
	Quality int
}

// DefaultQuality is a sane quality setting per encoder.
func DefaultQuality(encoder string) int {
	switch encoder {
	case EncoderVideoToolbox:
		return 75 // Хорошее качество для VideoToolbox
	case EncoderNVENC:
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

// Stream builds the ffmpeg graph that reads raw RGBA frames from stdin and
// encodes them to path.
func (p Params) Stream(path string) *ffmpeg.Stream {
	encoder := p.Encoder
	if encoder == "" {
		encoder = EncoderX264
	}
	quality := p.Quality
	if quality == 0 {
		quality = DefaultQuality(encoder)
	}

	out := ffmpeg.KwArgs{
		"c:v":     encoder,
		"pix_fmt": "yuv420p",
	}
	// Качество в зависимости от энкодера
	switch encoder {
	case EncoderVideoToolbox:
		out["b:v"] = fmt.Sprintf("%dk", quality*100)
	case EncoderNVENC:
		out["cq"] = strconv.Itoa(quality)
	default:
		out["crf"] = strconv.Itoa(quality)
		out["preset"] = "medium"
	}

	return ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", p.Width, p.Height),
		"r":       strconv.Itoa(p.FPS),
	}).Output(path, out).OverWriteOutput()
}

// FFmpegEncoder streams frames into a single ffmpeg process.
type FFmpegEncoder struct {
	params Params
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	frames int
}

// Open starts ffmpeg writing to path. Cancelling ctx kills the process.
func (e *FFmpegEncoder) Open(ctx context.Context, path string, params Params) error {
	if params.Width <= 0 || params.Height <= 0 || params.FPS <= 0 {
		return errors.Errorf("bad stream %dx%d @ %d fps", params.Width, params.Height, params.FPS)
	}
	e.params = params

	stream := params.Stream(path)
	stream.Context = ctx
	e.cmd = stream.Compile()
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "stdin pipe error")
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return errors.Wrap(err, "ffmpeg start error")
	}
	return nil
}

// WriteFrame implements Sink.
func (e *FFmpegEncoder) WriteFrame(img *image.RGBA) error {
	if e.stdin == nil {
		return errors.New("encoder is not open")
	}
	if err := checkSize(img, e.params.Width, e.params.Height); err != nil {
		return err
	}
	if err := writeRawRGBA(e.stdin, img); err != nil {
		return errors.Wrapf(err, "write raw error, frame %d", e.frames)
	}
	e.frames++
	return nil
}

// Frames is the number of frames written so far.
func (e *FFmpegEncoder) Frames() int {
	return e.frames
}

// Close flushes stdin and waits for ffmpeg to finish the file.
func (e *FFmpegEncoder) Close() error {
	if e.cmd == nil {
		return nil
	}
	if err := e.stdin.Close(); err != nil {
		return errors.Wrap(err, "close stdin")
	}
	if err := e.cmd.Wait(); err != nil {
		return errors.Wrapf(err, "ffmpeg wait error\nLog: %s", lastLines(e.stderr.String(), 10))
	}
	return nil
}

func checkSize(img *image.RGBA, w, h int) error {
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		return errors.Wrapf(ErrFrameSize, "got %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), w, h)
	}
	return nil
}

// writeRawRGBA writes tightly packed rows, copying when img is a sub-image.
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

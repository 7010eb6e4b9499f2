package video

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// PNGSequence writes every frame to Dir as frame_000000.png, frame_000001.png
// and so on.
type PNGSequence struct {
	Dir    string
	frames int
}

// NewPNGSequence creates dir if needed.
func NewPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}
	return &PNGSequence{Dir: dir}, nil
}

// FramePath is the file frame i is written to.
func (s *PNGSequence) FramePath(i int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame_%06d.png", i))
}

// WriteFrame implements Sink.
func (s *PNGSequence) WriteFrame(img *image.RGBA) error {
	path := s.FramePath(s.frames)
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	s.frames++
	return nil
}

// Frames is the number of frames written so far.
func (s *PNGSequence) Frames() int {
	return s.frames
}

// Close implements Sink.
func (s *PNGSequence) Close() error {
	return nil
}

// Tee writes every frame to all sinks in order.
type Tee []Sink

// WriteFrame implements Sink.
func (t Tee) WriteFrame(img *image.RGBA) error {
	for _, s := range t {
		if err := s.WriteFrame(img); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink.
func (t Tee) Close() error {
	var errs error
	for _, s := range t {
		errs = multierr.Append(errs, s.Close())
	}
	return errs
}

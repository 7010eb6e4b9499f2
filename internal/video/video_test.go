package video

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

// argAfter returns the argument following flag, or "" when flag is missing.
func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestStreamArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		flag    string
		want    string
	}{
		{"", 0, "-crf", "23"},
		{EncoderX264, 18, "-crf", "18"},
		{EncoderNVENC, 0, "-cq", "28"},
		{EncoderVideoToolbox, 0, "-b:v", "7500k"},
		{EncoderVideoToolbox, 50, "-b:v", "5000k"},
	}

	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			p := Params{Width: 64, Height: 48, FPS: 30, Encoder: tt.encoder, Quality: tt.quality}
			args := p.Stream("out.mp4").GetArgs()

			test.That(t, argAfter(args, tt.flag), test.ShouldEqual, tt.want)
			test.That(t, argAfter(args, "-f"), test.ShouldEqual, "rawvideo")
			test.That(t, argAfter(args, "-s"), test.ShouldEqual, "64x48")
			test.That(t, argAfter(args, "-r"), test.ShouldEqual, "30")
			test.That(t, argAfter(args, "-i"), test.ShouldEqual, "pipe:")
			test.That(t, args, test.ShouldContain, "-y")
			test.That(t, args, test.ShouldContain, "yuv420p")
			test.That(t, args, test.ShouldContain, "out.mp4")
		})
	}

	args := Params{Width: 2, Height: 2, FPS: 1}.Stream("x.mp4").GetArgs()
	test.That(t, argAfter(args, "-c:v"), test.ShouldEqual, EncoderX264)
	test.That(t, argAfter(args, "-preset"), test.ShouldEqual, "medium")
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	var buf bytes.Buffer
	test.That(t, writeRawRGBA(&buf, img), test.ShouldBeNil)
	test.That(t, buf.Bytes(), test.ShouldResemble, img.Pix)

	// a sub-image is repacked row by row
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	buf.Reset()
	test.That(t, writeRawRGBA(&buf, sub), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldEqual, 2*2*4)
	test.That(t, buf.Bytes()[:4], test.ShouldResemble, []byte{1, 1, 0, 255})
	test.That(t, buf.Bytes()[12:], test.ShouldResemble, []byte{2, 2, 0, 255})
}

func TestEncoderChecks(t *testing.T) {
	var e FFmpegEncoder
	test.That(t, e.WriteFrame(image.NewRGBA(image.Rect(0, 0, 2, 2))), test.ShouldNotBeNil)
	test.That(t, e.Close(), test.ShouldBeNil)

	err := e.Open(t.Context(), "out.mp4", Params{Width: 0, Height: 2, FPS: 30})
	test.That(t, err, test.ShouldNotBeNil)

	err = checkSize(image.NewRGBA(image.Rect(0, 0, 3, 2)), 2, 2)
	test.That(t, errors.Is(err, ErrFrameSize), test.ShouldBeTrue)
}

func TestPNGSequence(t *testing.T) {
	dir := t.TempDir() + "/frames"
	seq, err := NewPNGSequence(dir)
	test.That(t, err, test.ShouldBeNil)

	frame := image.NewRGBA(image.Rect(0, 0, 6, 4))
	frame.SetRGBA(1, 2, color.RGBA{R: 200, A: 255})

	var sink Sink = seq
	test.That(t, sink.WriteFrame(frame), test.ShouldBeNil)
	test.That(t, sink.WriteFrame(frame), test.ShouldBeNil)
	test.That(t, sink.Close(), test.ShouldBeNil)
	test.That(t, seq.Frames(), test.ShouldEqual, 2)

	f, err := os.Open(seq.FramePath(1))
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	decoded, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded.Bounds(), test.ShouldResemble, frame.Bounds())
	r, _, _, _ := decoded.At(1, 2).RGBA()
	test.That(t, r>>8, test.ShouldEqual, uint32(200))

	_, err = os.Stat(seq.FramePath(2))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

type failingSink struct{ closed bool }

func (f *failingSink) WriteFrame(*image.RGBA) error { return errors.New("disk full") }
func (f *failingSink) Close() error {
	f.closed = true
	return errors.New("close failed")
}

func TestTee(t *testing.T) {
	seq, err := NewPNGSequence(t.TempDir())
	test.That(t, err, test.ShouldBeNil)
	bad := &failingSink{}

	tee := Tee{seq, bad}
	err = tee.WriteFrame(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, seq.Frames(), test.ShouldEqual, 1)

	err = tee.Close()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, bad.closed, test.ShouldBeTrue)
}

package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.yaml", "b.YML", "c.yaml", "d.txt"}
	base := time.Now().Add(-time.Hour)
	for i, name := range files {
		path := filepath.Join(dir, name)
		test.That(t, os.WriteFile(path, []byte("x"), 0o644), test.ShouldBeNil)
		mod := base.Add(time.Duration(i) * time.Minute)
		test.That(t, os.Chtimes(path, mod, mod), test.ShouldBeNil)
	}

	latest, err := FindLatestFile(dir, ".yaml", ".yml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, latest, test.ShouldEqual, filepath.Join(dir, "c.yaml"))

	latest, err = FindLatestFile(dir, ".yml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, latest, test.ShouldEqual, filepath.Join(dir, "b.YML"))

	_, err = FindLatestFile(dir, ".pdf")
	test.That(t, errors.Is(err, ErrNotFound), test.ShouldBeTrue)

	_, err = FindLatestFile(filepath.Join(dir, "missing"), ".yaml")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPickEncoder(t *testing.T) {
	list := func(out string, err error) func() (string, error) {
		return func() (string, error) { return out, err }
	}
	test.That(t, pickEncoder(list(" V..... h264_nvenc  NVIDIA NVENC", nil)), test.ShouldEqual, "h264_nvenc")
	test.That(t, pickEncoder(list("h264_nvenc h264_videotoolbox", nil)), test.ShouldEqual, "h264_videotoolbox")
	test.That(t, pickEncoder(list("libx264", nil)), test.ShouldEqual, "libx264")
	test.That(t, pickEncoder(list("", errors.New("no ffmpeg"))), test.ShouldEqual, "libx264")
}

func TestImagePool(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 16, 9)

	img := pool.Get(rect)
	test.That(t, img.Bounds(), test.ShouldResemble, rect)
	pool.Put(img)

	again := pool.Get(rect)
	test.That(t, again.Bounds(), test.ShouldResemble, rect)

	// unknown sizes are dropped without panicking
	pool.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	pool.Put(nil)

	other := pool.Get(image.Rect(0, 0, 4, 4))
	test.That(t, other.Bounds().Dx(), test.ShouldEqual, 4)
}

func TestWorkers(t *testing.T) {
	test.That(t, DefaultWorkers(1920*1080*4), test.ShouldBeGreaterThanOrEqualTo, 1)

	frame := 1 << 20
	test.That(t, capByMemory(8, 1<<40, frame), test.ShouldEqual, 8)
	// 64 MiB budget of 128 MiB, 4 MiB per worker
	test.That(t, capByMemory(32, 128<<20, frame), test.ShouldEqual, 16)
	test.That(t, capByMemory(8, 0, frame), test.ShouldEqual, 1)
}

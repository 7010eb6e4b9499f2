package renderer

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/ivlev/shape2video/internal/director"
	"github.com/ivlev/shape2video/internal/shape"
)

func TestInterpolateKeyframes(t *testing.T) {
	keyframes := []director.Keyframe{
		{Time: 0.0, X: 0, Y: 0, Zoom: 1.0},
		{Time: 2.0, X: 100, Y: -50, Zoom: 1.5},
		{Time: 4.0, X: 200, Y: -100, Zoom: 2.0},
	}

	tests := []struct {
		time float64
		want CameraState
	}{
		{-1.0, CameraState{0, 0, 1.0}}, // before the first keyframe
		{0.0, CameraState{0, 0, 1.0}},
		{1.0, CameraState{50, -25, 1.25}}, // in-out cubic is symmetric around the midpoint
		{2.0, CameraState{100, -50, 1.5}},
		{3.0, CameraState{150, -75, 1.75}},
		{4.0, CameraState{200, -100, 2.0}},
		{5.0, CameraState{200, -100, 2.0}}, // after the last keyframe
	}

	for _, tt := range tests {
		state := InterpolateKeyframes(keyframes, tt.time)
		test.That(t, state.X, test.ShouldAlmostEqual, tt.want.X)
		test.That(t, state.Y, test.ShouldAlmostEqual, tt.want.Y)
		test.That(t, state.Zoom, test.ShouldAlmostEqual, tt.want.Zoom)
	}

	t.Run("eased", func(t *testing.T) {
		state := InterpolateKeyframes(keyframes, 0.5)
		test.That(t, state.Zoom, test.ShouldBeLessThan, 1.125)
		test.That(t, state.Zoom, test.ShouldBeGreaterThan, 1.0)
	})

	t.Run("no keyframes", func(t *testing.T) {
		test.That(t, InterpolateKeyframes(nil, 3), test.ShouldResemble, DefaultCamera())
	})

	t.Run("same time", func(t *testing.T) {
		jump := []director.Keyframe{
			{Time: 0, Zoom: 1},
			{Time: 1, Zoom: 1},
			{Time: 1, X: 10, Zoom: 3},
			{Time: 2, X: 10, Zoom: 3},
		}
		state := InterpolateKeyframes(jump, 1.5)
		test.That(t, state.Zoom, test.ShouldAlmostEqual, 3.0)
		test.That(t, state.X, test.ShouldAlmostEqual, 10.0)
	})

	t.Run("missing zoom", func(t *testing.T) {
		state := InterpolateKeyframes([]director.Keyframe{{Time: 0, X: 5}}, 0)
		test.That(t, state.Zoom, test.ShouldEqual, 1.0)
	})
}

var (
	red   = shape.RGB(255, 0, 0)
	green = shape.RGB(0, 255, 0)
	blue  = shape.RGB(0, 0, 255)
)

func square(cx, cy, side float64, fill shape.Color) shape.Polygon {
	return shape.Rect(cx-side/2, cy-side/2, side, side).WithFill(fill).WithStroke(0)
}

func rasterize(t *testing.T, r *GG, cam CameraState, nodes ...shape.Node) *image.RGBA {
	t.Helper()
	layers := make([]shape.Layer, len(nodes))
	for i, n := range nodes {
		layers[i] = shape.Layer{Z: i, Node: n}
	}
	img, err := r.Rasterize(context.Background(), layers, cam)
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { r.Release(img) })
	return img
}

func rgb(c shape.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func TestRasterizeBackground(t *testing.T) {
	r := NewGG(40, 20, red)
	img := rasterize(t, r, DefaultCamera())
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 40, 20))
	test.That(t, img.RGBAAt(0, 0), test.ShouldResemble, rgb(red))
	test.That(t, img.RGBAAt(39, 19), test.ShouldResemble, rgb(red))
}

func TestRasterizePolygon(t *testing.T) {
	r := NewGG(40, 20, shape.Black)

	t.Run("origin is the centre", func(t *testing.T) {
		img := rasterize(t, r, DefaultCamera(), square(0, 0, 10, green))
		test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(green))
		test.That(t, img.RGBAAt(2, 2), test.ShouldResemble, rgb(shape.Black))
	})

	t.Run("pan", func(t *testing.T) {
		img := rasterize(t, r, CameraState{X: 100, Zoom: 1}, square(100, 0, 10, green))
		test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(green))
	})

	t.Run("zoom", func(t *testing.T) {
		// 10 units become 20 pixels wide
		img := rasterize(t, r, CameraState{Zoom: 2}, square(0, 0, 10, green))
		test.That(t, img.RGBAAt(28, 10), test.ShouldResemble, rgb(green))

		img = rasterize(t, r, DefaultCamera(), square(0, 0, 10, green))
		test.That(t, img.RGBAAt(28, 10), test.ShouldResemble, rgb(shape.Black))
	})

	t.Run("later layers on top", func(t *testing.T) {
		img := rasterize(t, r, DefaultCamera(), square(0, 0, 10, green), square(0, 0, 4, blue))
		test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(blue))
		test.That(t, img.RGBAAt(23, 10), test.ShouldResemble, rgb(green))
	})

	t.Run("outline", func(t *testing.T) {
		p := square(0, 0, 12, shape.Transparent).WithOutline(red).WithStroke(2)
		img := rasterize(t, r, DefaultCamera(), p)
		test.That(t, img.RGBAAt(14, 10), test.ShouldResemble, rgb(red))
		test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(shape.Black))
	})
}

func TestRasterizePolyline(t *testing.T) {
	r := NewGG(40, 20, shape.Black)
	line := shape.Polyline{
		Points: []shape.Point{shape.Pt(-15, 0), shape.Pt(15, 0)},
		Stroke: green,
		Width:  4,
	}
	img := rasterize(t, r, DefaultCamera(), line)
	test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(green))
	test.That(t, img.RGBAAt(20, 2), test.ShouldResemble, rgb(shape.Black))
}

func TestRasterizeGroupOpacity(t *testing.T) {
	r := NewGG(40, 20, shape.Black)

	half := shape.Group{Opacity: 0.5, Children: []shape.Node{square(0, 0, 10, shape.White)}}
	img := rasterize(t, r, DefaultCamera(), half)
	px := img.RGBAAt(20, 10)
	test.That(t, int(px.R), test.ShouldBeBetweenOrEqual, 125, 130)
	test.That(t, px.R, test.ShouldEqual, px.G)

	hidden := shape.Group{Opacity: 0, Children: []shape.Node{square(0, 0, 10, shape.White)}}
	img = rasterize(t, r, DefaultCamera(), hidden)
	test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(shape.Black))

	full := shape.Group{Opacity: 1, Children: []shape.Node{square(0, 0, 10, shape.White)}}
	img = rasterize(t, r, DefaultCamera(), full)
	test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(shape.White))
}

func TestRasterizeText(t *testing.T) {
	r := NewGG(80, 40, shape.Black)
	txt := shape.NewText("Hi").WithSize(24).At(0, 8)
	img := rasterize(t, r, DefaultCamera(), txt)

	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if img.RGBAAt(x, y).R > 128 {
				lit++
				// middle anchored around x = 40, baseline at y = 28
				test.That(t, x, test.ShouldBeBetween, 20, 60)
				test.That(t, y, test.ShouldBeLessThanOrEqualTo, 29)
			}
		}
	}
	test.That(t, lit, test.ShouldBeGreaterThan, 10)
}

func TestRasterizeRaster(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, blue)
		}
	}

	r := NewGG(40, 20, shape.Black)
	img := rasterize(t, r, DefaultCamera(), shape.NewImage(src, -10, -5, 20, 10).Render().Node)
	test.That(t, img.RGBAAt(20, 10), test.ShouldResemble, rgb(blue))
	test.That(t, img.RGBAAt(2, 2), test.ShouldResemble, rgb(shape.Black))
}

type unknownNode struct{}

func (unknownNode) Bounds() r2.Rect { return r2.EmptyRect() }

func TestRasterizeErrors(t *testing.T) {
	r := NewGG(8, 8, shape.Black)

	_, err := r.Rasterize(context.Background(), []shape.Layer{{Node: unknownNode{}}}, DefaultCamera())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unsupported node")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Rasterize(ctx, nil, DefaultCamera())
	test.That(t, err, test.ShouldEqual, context.Canceled)
}

func TestSharedPool(t *testing.T) {
	r := &GG{Width: 8, Height: 8, Background: red}
	img := rasterize(t, r, DefaultCamera(), nil)
	test.That(t, img.RGBAAt(4, 4), test.ShouldResemble, rgb(red))
}

func TestFitKeyframes(t *testing.T) {
	keyframes := []director.Keyframe{
		{Time: 0, X: 10, Zoom: 1},
		{Time: 2, X: 20, Zoom: 2},
	}

	same := FitKeyframes(keyframes, 1920, 1080, 1920, 1080)
	test.That(t, same, test.ShouldResemble, keyframes)

	half := FitKeyframes(keyframes, 1920, 1080, 960, 540)
	test.That(t, half[0].Zoom, test.ShouldAlmostEqual, 0.5)
	test.That(t, half[1].Zoom, test.ShouldAlmostEqual, 1.0)
	test.That(t, half[1].X, test.ShouldEqual, 20.0)
	test.That(t, keyframes[1].Zoom, test.ShouldEqual, 2.0)

	// portrait output keeps the whole width in view
	portrait := FitKeyframes(nil, 1920, 1080, 720, 1280)
	test.That(t, len(portrait), test.ShouldEqual, 1)
	test.That(t, portrait[0].Zoom, test.ShouldAlmostEqual, 0.375)
	test.That(t, InterpolateKeyframes(portrait, 5).Zoom, test.ShouldAlmostEqual, 0.375)

	test.That(t, FitKeyframes(keyframes, 0, 0, 640, 360), test.ShouldResemble, keyframes)
}

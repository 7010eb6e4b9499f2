// Package renderer turns composed layers into pixels.
package renderer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/system"
)

// Rasterizer draws the layers of one frame, already sorted by z, into an
// image. Implementations must allow concurrent calls.
type Rasterizer interface {
	Rasterize(ctx context.Context, layers []shape.Layer, cam CameraState) (*image.RGBA, error)
}

var regular *truetype.Font

func init() {
	var err error
	regular, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// GG rasterizes with fogleman/gg. The scene origin is the frame centre and y
// grows downwards.
type GG struct {
	Width, Height int
	Background    shape.Color
	// Pool supplies frame buffers. Nil uses the shared pool.
	Pool *system.ImagePool
}

// NewGG returns a rasterizer for width x height frames.
func NewGG(width, height int, background shape.Color) *GG {
	return &GG{
		Width:      width,
		Height:     height,
		Background: background,
		Pool:       system.NewImagePool(),
	}
}

// Bounds is the frame rectangle.
func (r *GG) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// Release hands a frame returned by Rasterize back for reuse. The frame must
// not be touched afterwards.
func (r *GG) Release(img *image.RGBA) {
	if r.Pool == nil {
		system.PutImage(img)
		return
	}
	r.Pool.Put(img)
}

func (r *GG) get() *image.RGBA {
	if r.Pool == nil {
		return system.GetImage(r.Bounds())
	}
	return r.Pool.Get(r.Bounds())
}

// Rasterize implements Rasterizer.
func (r *GG) Rasterize(ctx context.Context, layers []shape.Layer, cam CameraState) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}

	img := r.get()
	c := &canvas{r: r, cam: cam, faces: make(map[float64]font.Face)}
	dc := c.context(img, r.Background)

	for i, l := range layers {
		if err := c.draw(dc, l.Node); err != nil {
			r.Release(img)
			return nil, errors.Wrapf(err, "layer %d (z %d)", i, l.Z)
		}
	}
	return img, nil
}

// canvas is the state of one Rasterize call. Font faces cache glyphs and
// are not safe to share between calls.
type canvas struct {
	r     *GG
	cam   CameraState
	faces map[float64]font.Face
}

// context paints img with bg and sets up the camera transform.
func (c *canvas) context(img *image.RGBA, bg color.Color) *gg.Context {
	dc := gg.NewContextForRGBA(img)
	dc.SetColor(bg)
	dc.Clear()
	dc.Translate(float64(c.r.Width)/2, float64(c.r.Height)/2)
	dc.Scale(c.cam.Zoom, c.cam.Zoom)
	dc.Translate(-c.cam.X, -c.cam.Y)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	return dc
}

func (c *canvas) face(size float64) font.Face {
	f, ok := c.faces[size]
	if !ok {
		f = truetype.NewFace(regular, &truetype.Options{Size: size})
		c.faces[size] = f
	}
	return f
}

func (c *canvas) draw(dc *gg.Context, n shape.Node) error {
	switch n := n.(type) {
	case nil:
		return nil
	case shape.Polygon:
		c.polygon(dc, n)
	case shape.Polyline:
		c.polyline(dc, n)
	case shape.Text:
		c.text(dc, n)
	case shape.Group:
		return c.group(dc, n)
	case shape.Raster:
		c.raster(dc, n)
	default:
		return errors.Errorf("unsupported node %T", n)
	}
	return nil
}

func (c *canvas) polygon(dc *gg.Context, p shape.Polygon) {
	if len(p.Points) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.ClosePath()

	if p.Fill.A > 0 {
		dc.SetColor(p.Fill)
		dc.FillPreserve()
	}
	if p.StrokeWidth > 0 && p.Outline.A > 0 {
		// gg strokes in device pixels
		dc.SetLineWidth(p.StrokeWidth * c.cam.Zoom)
		dc.SetColor(p.Outline)
		dc.Stroke()
		return
	}
	dc.ClearPath()
}

func (c *canvas) polyline(dc *gg.Context, l shape.Polyline) {
	if len(l.Points) < 2 || l.Width <= 0 || l.Stroke.A == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(l.Points[0].X, l.Points[0].Y)
	for _, pt := range l.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.SetLineWidth(l.Width * c.cam.Zoom)
	dc.SetColor(l.Stroke)
	dc.Stroke()
}

func (c *canvas) text(dc *gg.Context, t shape.Text) {
	if t.Content == "" || t.Size <= 0 || t.Color.A == 0 {
		return
	}
	var ax float64
	switch t.Anchor {
	case shape.AnchorMiddle:
		ax = 0.5
	case shape.AnchorEnd:
		ax = 1
	}
	dc.SetFontFace(c.face(t.Size))
	dc.SetColor(t.Color)
	dc.DrawStringAnchored(t.Content, t.Pos.X, t.Pos.Y, ax, 0)
}

// group draws the children on a transparent layer and composites it with the
// group's opacity.
func (c *canvas) group(dc *gg.Context, g shape.Group) error {
	if g.Opacity <= 0 || len(g.Children) == 0 {
		return nil
	}
	if g.Opacity >= 1 {
		for _, child := range g.Children {
			if err := c.draw(dc, child); err != nil {
				return err
			}
		}
		return nil
	}

	layer := c.r.get()
	defer c.r.Release(layer)
	sub := c.context(layer, color.Transparent)
	for _, child := range g.Children {
		if err := c.draw(sub, child); err != nil {
			return err
		}
	}

	dst := dc.Image().(*image.RGBA)
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(g.Opacity * 255))})
	draw.DrawMask(dst, dst.Bounds(), layer, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// raster scales the bitmap into its place. The camera only pans and zooms, so
// the target stays an axis aligned rectangle.
func (c *canvas) raster(dc *gg.Context, r shape.Raster) {
	if r.Image == nil || r.Size.X <= 0 || r.Size.Y <= 0 {
		return
	}
	x0, y0 := dc.TransformPoint(r.Min.X, r.Min.Y)
	x1, y1 := dc.TransformPoint(r.Min.X+r.Size.X, r.Min.Y+r.Size.Y)
	target := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)

	dst := dc.Image().(*image.RGBA)
	if target.Intersect(dst.Bounds()).Empty() {
		return
	}
	draw.BiLinear.Scale(dst, target, r.Image, r.Image.Bounds(), draw.Over, nil)
}

// Package shape defines the vector payloads handed to a rasterizer and the
// objects that produce them.
//
// A Node is an opaque visual state as far as the timeline is concerned; only
// the renderer looks inside. An Object is anything that can render itself into
// a Layer, which pairs a Node with its z-index.
package shape

import (
	"image"

	"github.com/golang/geo/r2"
)

// Point is a 2D point in scene units. The scene origin is the frame centre.
type Point = r2.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Node is a vector visual state.
type Node interface {
	Bounds() r2.Rect
}

// Layer is a node with its draw order. Higher Z draws on top.
type Layer struct {
	Z    int
	Node Node
}

// Object produces a layer. Implementations must be safe to call from several
// goroutines; the built-in objects are plain values.
type Object interface {
	Render() Layer
}

// ObjectFunc adapts a function to Object.
type ObjectFunc func() Layer

// Render calls f.
func (f ObjectFunc) Render() Layer { return f() }

// Polyline is an open stroked path with no fill.
type Polyline struct {
	Points []Point
	Stroke Color
	Width  float64
}

// Bounds implements Node.
func (l Polyline) Bounds() r2.Rect {
	return r2.RectFromPoints(l.Points...)
}

// Group draws its children in order and composites them with Opacity.
type Group struct {
	Opacity  float64
	Children []Node
}

// Empty is a group with nothing in it.
func Empty() Group {
	return Group{Opacity: 1}
}

// Bounds implements Node.
func (g Group) Bounds() r2.Rect {
	r := r2.EmptyRect()
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

// Raster is a bitmap placed in scene space.
type Raster struct {
	Image image.Image
	Min   Point
	Size  Point
}

// Bounds implements Node.
func (r Raster) Bounds() r2.Rect {
	return r2.RectFromPoints(r.Min, r.Min.Add(r.Size))
}

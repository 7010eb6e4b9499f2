package shape

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrDegeneratePolygon is returned for polygons without points.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Polygon is a closed shape: the last point connects back to the first.
// It is both an Object and the Node it renders to.
type Polygon struct {
	Points      []Point
	Fill        Color
	Outline     Color
	StrokeWidth float64
	Z           int
}

// NewPolygon returns a white polygon with a gray outline.
func NewPolygon(points ...Point) Polygon {
	return Polygon{
		Points:      append([]Point(nil), points...),
		Fill:        White,
		Outline:     Gray,
		StrokeWidth: 10,
	}
}

// Regular returns a regular polygon centred on the origin with its first
// vertex at angle rotation (radians).
func Regular(sides int, radius, rotation float64) Polygon {
	pts := make([]Point, 0, sides)
	for i := 0; i < sides; i++ {
		a := rotation + 2*math.Pi*float64(i)/float64(sides)
		pts = append(pts, Pt(radius*math.Cos(a), radius*math.Sin(a)))
	}
	return NewPolygon(pts...)
}

// Rect returns an axis aligned rectangle with its top-left corner at (x, y).
func Rect(x, y, w, h float64) Polygon {
	return NewPolygon(Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h))
}

// Len is the number of vertices.
func (p Polygon) Len() int { return len(p.Points) }

// Shift moves every point by (dx, dy).
func (p Polygon) Shift(dx, dy float64) Polygon {
	pts := make([]Point, len(p.Points))
	d := Pt(dx, dy)
	for i, pt := range p.Points {
		pts[i] = pt.Add(d)
	}
	p.Points = pts
	return p
}

// Scale multiplies every coordinate by f around the origin.
func (p Polygon) Scale(f float64) Polygon {
	pts := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Mul(f)
	}
	p.Points = pts
	return p
}

// AddPoint appends a vertex.
func (p Polygon) AddPoint(x, y float64) Polygon {
	pts := make([]Point, len(p.Points), len(p.Points)+1)
	copy(pts, p.Points)
	p.Points = append(pts, Pt(x, y))
	return p
}

// WithFill sets the fill colour.
func (p Polygon) WithFill(c Color) Polygon {
	p.Fill = c
	return p
}

// WithOutline sets the outline colour.
func (p Polygon) WithOutline(c Color) Polygon {
	p.Outline = c
	return p
}

// WithStroke sets the outline width.
func (p Polygon) WithStroke(w float64) Polygon {
	p.StrokeWidth = w
	return p
}

// WithZ sets the z-index.
func (p Polygon) WithZ(z int) Polygon {
	p.Z = z
	return p
}

// Validate fails for polygons with no points or non-finite coordinates.
func (p Polygon) Validate() error {
	if len(p.Points) == 0 {
		return errors.Wrap(ErrDegeneratePolygon, "polygon has no points")
	}
	for i, pt := range p.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return errors.Wrapf(ErrDegeneratePolygon, "point %d is not finite", i)
		}
	}
	return nil
}

// Bounds implements Node.
func (p Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(p.Points...)
}

// Render implements Object. The returned node owns its own point slice.
func (p Polygon) Render() Layer {
	p.Points = append([]Point(nil), p.Points...)
	return Layer{Z: p.Z, Node: p}
}

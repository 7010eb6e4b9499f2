package morph

import "github.com/ivlev/shape2video/internal/shape"

// Polygon morphs one polygon into another, including its style.
type Polygon struct {
	From, To shape.Polygon
	Points   Correspondence
}

// NewPolygon validates both polygons and precomputes their correspondence.
func NewPolygon(from, to shape.Polygon, opts ...Option) (Polygon, error) {
	if err := from.Validate(); err != nil {
		return Polygon{}, err
	}
	if err := to.Validate(); err != nil {
		return Polygon{}, err
	}
	c, err := Correspond(from.Points, to.Points, opts...)
	if err != nil {
		return Polygon{}, err
	}
	return Polygon{From: from, To: to, Points: c}, nil
}

// At returns the in-between polygon at progress p. The z-index is taken from
// the starting polygon until the morph completes.
func (m Polygon) At(p float64) shape.Polygon {
	z := m.From.Z
	if p >= 1 {
		z = m.To.Z
	}
	return shape.Polygon{
		Points:      m.Points.At(p),
		Fill:        m.From.Fill.Lerp(m.To.Fill, p),
		Outline:     m.From.Outline.Lerp(m.To.Outline, p),
		StrokeWidth: m.From.StrokeWidth + (m.To.StrokeWidth-m.From.StrokeWidth)*p,
		Z:           z,
	}
}

package effects

import (
	"github.com/ivlev/shape2video/internal/morph"
	"github.com/ivlev/shape2video/internal/shape"
)

// Morph deforms one polygon into another. The point correspondence is
// computed once, when the Morph is built.
type Morph struct {
	polygon morph.Polygon
}

// NewMorph pairs the points of from and to. Errors from the correspondence,
// such as an empty polygon, are returned here rather than at render time.
func NewMorph(from, to shape.Polygon, opts ...morph.Option) (Morph, error) {
	m, err := morph.NewPolygon(from, to, opts...)
	if err != nil {
		return Morph{}, err
	}
	return Morph{polygon: m}, nil
}

// Animate renders the in-between polygon.
func (m Morph) Animate(progress float64) shape.Layer {
	return m.polygon.At(progress).Render()
}

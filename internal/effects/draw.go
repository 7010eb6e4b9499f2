package effects

import (
	"github.com/ivlev/shape2video/internal/morph"
	"github.com/ivlev/shape2video/internal/shape"
)

// Draw traces a polygon's outline from its first vertex around to the last,
// then shows the filled polygon once the outline is closed.
type Draw struct {
	Polygon shape.Polygon
}

// NewDraw returns a Draw for p.
func NewDraw(p shape.Polygon) Draw {
	return Draw{Polygon: p}
}

// Animate returns an open polyline through the finished edges and the
// partial point on the current edge. At progress 1 the full polygon is
// returned instead.
func (d Draw) Animate(progress float64) shape.Layer {
	pts := d.Polygon.Points
	done, frac := morph.SegmentAt(len(pts), progress)
	if done == len(pts) {
		return d.Polygon.Render()
	}

	line := make([]shape.Point, 0, done+2)
	line = append(line, pts[:done+1]...)
	a, b := morph.Edge(pts, done)
	line = append(line, morph.Lerp(a, b, frac))

	return shape.Layer{
		Z: d.Polygon.Z,
		Node: shape.Polyline{
			Points: line,
			Stroke: d.Polygon.Outline,
			Width:  d.Polygon.StrokeWidth,
		},
	}
}

// Package morph pairs up the vertices of two polygons so that one can be
// deformed into the other point by point, even when their vertex counts
// differ.
package morph

import (
	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/shape"
)

// ErrMismatchedMorphInput is returned in strict mode when the two polygons do
// not have the same number of points.
var ErrMismatchedMorphInput = errors.New("mismatched morph input")

// Correspondence holds two point sequences of equal length. Start[i] moves to
// End[i] as progress goes from 0 to 1.
type Correspondence struct {
	Start []shape.Point
	End   []shape.Point
}

// Len is the number of paired points.
func (c Correspondence) Len() int { return len(c.Start) }

// At returns the interpolated points at progress p.
func (c Correspondence) At(p float64) []shape.Point {
	out := make([]shape.Point, len(c.Start))
	for i := range c.Start {
		out[i] = Lerp(c.Start[i], c.End[i], p)
	}
	return out
}

type options struct {
	strict bool
}

// Option configures Correspond.
type Option func(*options)

// Strict rejects inputs whose point counts differ instead of synthesizing
// the missing points.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Correspond pairs the points of start and end. When the counts differ, the
// shorter side gets synthesized points on its edges so both sides end up with
// the length of the longer one.
func Correspond(start, end []shape.Point, opts ...Option) (Correspondence, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(start) == 0 || len(end) == 0 {
		return Correspondence{}, errors.Wrapf(shape.ErrDegeneratePolygon,
			"cannot morph %d points into %d", len(start), len(end))
	}

	switch {
	case len(start) == len(end):
		return Correspondence{
			Start: append([]shape.Point(nil), start...),
			End:   append([]shape.Point(nil), end...),
		}, nil
	case o.strict:
		return Correspondence{}, errors.Wrapf(ErrMismatchedMorphInput,
			"%d points vs %d points", len(start), len(end))
	case len(start) < len(end):
		s, l := synthesize(start, end)
		return Correspondence{Start: s, End: l}, nil
	default:
		s, l := synthesize(end, start)
		return Correspondence{Start: l, End: s}, nil
	}
}

// claim pairs one point of the longer polygon with its position on the
// shorter one.
type claim struct {
	index int
	at    shape.Point
}

// synthesize returns the shorter and longer sequences, both len(long) long.
func synthesize(short, long []shape.Point) ([]shape.Point, []shape.Point) {
	shortOrigin := topLeft(short)
	shortT := translate(short, shortOrigin.Mul(-1))
	longT := translate(long, topLeft(long).Mul(-1))

	pool := make([]int, len(long))
	for i := range pool {
		pool[i] = i
	}

	// Anchor every short vertex to its nearest unclaimed long vertex.
	anchors := make([]claim, len(shortT))
	for i, p := range shortT {
		best := 0
		bestDist := p.Sub(longT[pool[0]]).Norm()
		for j := 1; j < len(pool); j++ {
			if d := p.Sub(longT[pool[j]]).Norm(); d < bestDist {
				best, bestDist = j, d
			}
		}
		anchors[i] = claim{index: pool[best], at: p}
		pool = append(pool[:best], pool[best+1:]...)
	}

	// Hang every leftover long vertex on the closest short edge.
	edges := make([][]claim, len(shortT))
	for _, li := range pool {
		bestEdge := -1
		var bestFoot shape.Point
		var bestDist float64
		for e := range shortT {
			a, b := Edge(shortT, e)
			foot, d := ProjectOntoSegment(a, b, longT[li])
			if bestEdge < 0 || d < bestDist {
				bestEdge, bestFoot, bestDist = e, foot, d
			}
		}
		edges[bestEdge] = append(edges[bestEdge], claim{index: li, at: bestFoot})
	}

	outShort := make([]shape.Point, 0, len(long))
	outLong := make([]shape.Point, 0, len(long))
	for e, anchor := range anchors {
		for _, c := range append([]claim{anchor}, edges[e]...) {
			outShort = append(outShort, c.at.Add(shortOrigin))
			outLong = append(outLong, long[c.index])
		}
	}
	return outShort, outLong
}

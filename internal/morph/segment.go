package morph

import (
	"math"

	"github.com/ivlev/shape2video/internal/shape"
)

// Lerp returns the point t of the way from a to b. The ends are exact: t == 0
// yields a and t == 1 yields b.
func Lerp(a, b shape.Point, t float64) shape.Point {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// ProjectOntoSegment drops p onto the segment ab, clamped to its ends, and
// returns the foot point and its distance to p. A zero-length segment
// projects everything onto a.
func ProjectOntoSegment(a, b, p shape.Point) (shape.Point, float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a, p.Sub(a).Norm()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	foot := Lerp(a, b, t)
	return foot, p.Sub(foot).Norm()
}

// SegmentAt splits progress p along the closed ring of points into the index
// of the current edge and the fraction travelled along it. done == len(points)
// means the whole ring is complete.
func SegmentAt(n int, p float64) (done int, frac float64) {
	if n == 0 {
		return 0, 0
	}
	pos := float64(n) * p
	done = int(math.Floor(pos))
	if done >= n {
		return n, 0
	}
	if done < 0 {
		return 0, 0
	}
	return done, pos - float64(done)
}

// Edge returns the endpoints of edge i of the closed ring.
func Edge(points []shape.Point, i int) (shape.Point, shape.Point) {
	return points[i], points[(i+1)%len(points)]
}

// topLeft is the top-left corner of the axis aligned bounding box.
func topLeft(points []shape.Point) shape.Point {
	tl := shape.Pt(math.Inf(1), math.Inf(1))
	for _, p := range points {
		tl.X = math.Min(tl.X, p.X)
		tl.Y = math.Min(tl.Y, p.Y)
	}
	return tl
}

func translate(points []shape.Point, d shape.Point) []shape.Point {
	out := make([]shape.Point, len(points))
	for i, p := range points {
		out[i] = p.Add(d)
	}
	return out
}

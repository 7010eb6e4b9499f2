package timeline

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/effects"
	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/timing"
)

// DefaultPadFrames is the number of frames appended after the last exit so the
// final state is held briefly instead of cut off.
const DefaultPadFrames = 10

// maxFrames bounds the frame count of a single compile.
const maxFrames = 1 << 26

// ErrTimelineTooLong is returned when the timeline would need more frames
// than a single compile produces.
var ErrTimelineTooLong = errors.New("timeline too long")

// BoundaryPolicy decides which frames a time window covers.
type BoundaryPolicy int

const (
	// BoundaryCover covers frames floor(start*fps) up to but excluding
	// ceil(end*fps). A window is active on every frame it touches, so adjacent
	// chained windows may share a frame.
	BoundaryCover BoundaryPolicy = iota
	// BoundaryExact covers exactly the frames whose time t has start <= t < end.
	BoundaryExact
)

// String implements fmt.Stringer.
func (b BoundaryPolicy) String() string {
	switch b {
	case BoundaryCover:
		return "cover"
	case BoundaryExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseBoundary parses "cover" or "exact". The empty string is cover.
func ParseBoundary(s string) (BoundaryPolicy, error) {
	switch strings.ToLower(s) {
	case "", "cover":
		return BoundaryCover, nil
	case "exact":
		return BoundaryExact, nil
	default:
		return BoundaryCover, errors.Errorf("unknown boundary policy %q", s)
	}
}

// Options control a compile.
type Options struct {
	FPS       int
	PadFrames int
	// RequireDuration turns a timeline without duration into ErrEmptyTimeline
	// instead of zero frames.
	RequireDuration bool
	Boundary        BoundaryPolicy
}

// DefaultOptions returns cover boundaries with the default padding.
func DefaultOptions(fps int) Options {
	return Options{FPS: fps, PadFrames: DefaultPadFrames}
}

// Active is an animation handle evaluated on a frame.
type Active struct {
	Handle   effects.Handle
	Progress float64
}

// Frame is everything drawn at one sampled instant. Objects are already
// rendered; Animations still need evaluating.
type Frame struct {
	Index      int
	Time       float64
	Objects    []shape.Layer
	Animations []Active
}

// Compose evaluates the active animations and returns every layer sorted by
// ascending z. Equal z keeps insertion order: static objects, steady entities,
// then animations in registration order.
func (f Frame) Compose() []shape.Layer {
	layers := make([]shape.Layer, 0, len(f.Objects)+len(f.Animations))
	layers = append(layers, f.Objects...)
	for _, a := range f.Animations {
		layers = append(layers, a.Handle.At(a.Progress))
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Z < layers[j].Z
	})
	return layers
}

// Compile samples tl at opts.FPS. It only reads tl, so a failed compile
// leaves the timeline usable.
func Compile(tl *Timeline, opts Options) ([]Frame, error) {
	if opts.FPS <= 0 {
		return nil, errors.Wrapf(ErrInvalidFrameRate, "%d fps", opts.FPS)
	}
	for i, e := range tl.entities {
		if err := e.Validate(); err != nil {
			return nil, errors.Wrapf(err, "entity %d", i)
		}
	}

	end := tl.Duration()
	if opts.RequireDuration && end == 0 {
		return nil, ErrEmptyTimeline
	}
	if len(tl.entities) == 0 {
		return []Frame{}, nil
	}

	count, err := opts.frameCount(end)
	if err != nil {
		return nil, err
	}

	statics := make([]shape.Layer, len(tl.statics))
	for i, obj := range tl.statics {
		statics[i] = obj.Render()
	}

	frames := make([]Frame, count)
	for i := range frames {
		frames[i] = Frame{
			Index:   i,
			Time:    opts.frameTime(i),
			Objects: append([]shape.Layer(nil), statics...),
		}
	}

	for _, e := range tl.entities {
		for _, h := range []effects.Handle{e.Enter, e.Exit} {
			first, last := opts.animationRange(h.Interval, count)
			for i := first; i < last; i++ {
				frames[i].Animations = append(frames[i].Animations, Active{
					Handle:   h,
					Progress: h.Interval.Progress(frames[i].Time),
				})
			}
		}

		steady := e.Object.Render()
		first, last := opts.windowRange(e.Steady(), count)
		for i := first; i < last; i++ {
			frames[i].Objects = append(frames[i].Objects, steady)
		}
	}
	return frames, nil
}

func (o Options) frameTime(i int) float64 {
	return float64(i) / float64(o.FPS)
}

// frameCount is the number of frames needed to sample up to end, plus padding.
func (o Options) frameCount(end float64) (int, error) {
	if end*float64(o.FPS) > maxFrames {
		return 0, errors.Wrapf(ErrTimelineTooLong, "%.2fs at %d fps", end, o.FPS)
	}
	n := o.ceilIndex(end, maxFrames)
	if n < 0 {
		n = 0
	}
	if o.PadFrames > 0 {
		n += o.PadFrames
	}
	return n, nil
}

// floorIndex is the largest i with frameTime(i) <= t, clamped to [-1, limit].
func (o Options) floorIndex(t float64, limit int) int {
	f := math.Floor(t * float64(o.FPS))
	if f < -1 {
		return -1
	}
	if f > float64(limit) {
		return limit
	}
	i := int(f)
	for o.frameTime(i+1) <= t {
		i++
	}
	for o.frameTime(i) > t {
		i--
	}
	return i
}

// ceilIndex is the smallest i with frameTime(i) >= t, clamped to [-1, limit].
func (o Options) ceilIndex(t float64, limit int) int {
	f := math.Ceil(t * float64(o.FPS))
	if f < -1 {
		return -1
	}
	if f > float64(limit) {
		return limit
	}
	i := int(f)
	for o.frameTime(i-1) >= t {
		i--
	}
	for o.frameTime(i) < t {
		i++
	}
	return i
}

// windowRange returns the half-open range of frame indices covered by iv,
// clamped to [0, count).
func (o Options) windowRange(iv timing.Interval, count int) (int, int) {
	if iv.End < iv.Start {
		return 0, 0
	}
	var first int
	if o.Boundary == BoundaryExact {
		first = o.ceilIndex(iv.Start, count)
	} else {
		first = o.floorIndex(iv.Start, count)
	}
	last := o.ceilIndex(iv.End, count)
	return clampRange(first, last, count)
}

// animationRange is windowRange, except that a zero-duration window occupies
// the single frame at its start.
func (o Options) animationRange(iv timing.Interval, count int) (int, int) {
	if !iv.IsInstant() {
		return o.windowRange(iv, count)
	}
	var first int
	if o.Boundary == BoundaryExact {
		first = o.ceilIndex(iv.Start, count)
	} else {
		first = o.floorIndex(iv.Start, count)
	}
	return clampRange(first, first+1, count)
}

func clampRange(first, last, count int) (int, int) {
	if first < 0 {
		first = 0
	}
	if last > count {
		last = count
	}
	if last < first {
		last = first
	}
	return first, last
}

// Package timing holds the time-window algebra used to place animations on a
// timeline. Intervals are small values: every combinator returns a new
// Interval and never touches the one it reads from.
package timing

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerateInterval is returned when an interval cannot be sampled:
// an endpoint is not finite or End precedes Start.
var ErrDegenerateInterval = errors.New("degenerate interval")

// Interval is a time window in seconds. Membership is half-open: [Start, End).
type Interval struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// New returns the interval [start, end].
func New(start, end float64) Interval {
	return Interval{Start: start, End: end}
}

// Span returns an interval of the given duration starting at start.
func Span(start, duration float64) Interval {
	return Interval{Start: start, End: start + duration}
}

// Default is one second starting at zero.
func Default() Interval {
	return Interval{Start: 0, End: 1}
}

// Duration is End - Start.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// WithDuration keeps Start and sets End = Start + d.
func (i Interval) WithDuration(d float64) Interval {
	i.End = i.Start + d
	return i
}

// WithDurationKeepEnd keeps End and sets Start = End - d.
func (i Interval) WithDurationKeepEnd(d float64) Interval {
	i.Start = i.End - d
	return i
}

// Delay shifts both endpoints by d, which may be negative.
func (i Interval) Delay(d float64) Interval {
	i.Start += d
	i.End += d
	return i
}

// After places the interval right after other, keeping its own duration.
func (i Interval) After(other Interval) Interval {
	d := i.Duration()
	i.Start = other.End
	i.End = i.Start + d
	return i
}

// StartWith copies other's start. The duration changes accordingly.
func (i Interval) StartWith(other Interval) Interval {
	i.Start = other.Start
	return i
}

// EndWith copies other's end. The duration changes accordingly.
func (i Interval) EndWith(other Interval) Interval {
	i.End = other.End
	return i
}

// Synchronize copies both endpoints of other.
func (i Interval) Synchronize(other Interval) Interval {
	i.Start = other.Start
	i.End = other.End
	return i
}

// IsInstant reports whether the interval has zero duration.
func (i Interval) IsInstant() bool {
	return i.End == i.Start
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t float64) bool {
	return t >= i.Start && t < i.End
}

// Validate rejects intervals that would produce NaN progress or a negative
// duration. Zero-length intervals are valid.
func (i Interval) Validate() error {
	if !finite(i.Start) || !finite(i.End) {
		return errors.Wrapf(ErrDegenerateInterval, "non-finite endpoint in [%v, %v]", i.Start, i.End)
	}
	if i.End < i.Start {
		return errors.Wrapf(ErrDegenerateInterval, "end %.4f precedes start %.4f", i.End, i.Start)
	}
	return nil
}

// Progress maps t to [0,1] within the interval. Values outside the window are
// clamped, and an instantaneous interval is always complete.
func (i Interval) Progress(t float64) float64 {
	d := i.Duration()
	if d <= 0 || math.IsNaN(d) {
		return 1
	}
	return Clamp01((t - i.Start) / d)
}

// Clamp01 clamps p to [0,1]. NaN becomes 0.
func Clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

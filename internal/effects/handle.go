package effects

import (
	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/timing"
)

// ErrMissingAnimation is returned when a handle has no evaluator.
var ErrMissingAnimation = errors.New("missing animation")

// Handle places an Animation on the timeline. Handles are values: every
// combinator returns a modified copy, and the relative ones only read the
// other handle's interval.
type Handle struct {
	Interval  timing.Interval
	Animation Animation
	// Ease reshapes progress. Overshoot is clamped away. Nil means linear.
	Ease EaseFunc
}

// NewHandle wraps anim in the default one second window starting at zero.
func NewHandle(anim Animation) Handle {
	return Handle{Interval: timing.Default(), Animation: anim}
}

// Start is the start of the window.
func (h Handle) Start() float64 { return h.Interval.Start }

// End is the end of the window.
func (h Handle) End() float64 { return h.Interval.End }

// Duration is the window length.
func (h Handle) Duration() float64 { return h.Interval.Duration() }

// WithDuration keeps the start and sets the length to d.
func (h Handle) WithDuration(d float64) Handle {
	h.Interval = h.Interval.WithDuration(d)
	return h
}

// WithDurationKeepEnd keeps the end and sets the length to d.
func (h Handle) WithDurationKeepEnd(d float64) Handle {
	h.Interval = h.Interval.WithDurationKeepEnd(d)
	return h
}

// Delay shifts the window by d seconds.
func (h Handle) Delay(d float64) Handle {
	h.Interval = h.Interval.Delay(d)
	return h
}

// After starts the window where other ends, keeping the duration.
func (h Handle) After(other Handle) Handle {
	h.Interval = h.Interval.After(other.Interval)
	return h
}

// StartWith copies other's start.
func (h Handle) StartWith(other Handle) Handle {
	h.Interval = h.Interval.StartWith(other.Interval)
	return h
}

// EndWith copies other's end.
func (h Handle) EndWith(other Handle) Handle {
	h.Interval = h.Interval.EndWith(other.Interval)
	return h
}

// Synchronize copies both endpoints of other.
func (h Handle) Synchronize(other Handle) Handle {
	h.Interval = h.Interval.Synchronize(other.Interval)
	return h
}

// Reverse plays the animation backwards over the same window. Reversing a
// reversed handle unwraps it.
func (h Handle) Reverse() Handle {
	if r, ok := h.Animation.(Reverse); ok {
		h.Animation = r.Animation
		return h
	}
	h.Animation = Reverse{Animation: h.Animation}
	return h
}

// WithEase sets the easing curve.
func (h Handle) WithEase(e EaseFunc) Handle {
	h.Ease = e
	return h
}

// Validate checks the window and that there is something to evaluate.
func (h Handle) Validate() error {
	if h.Animation == nil {
		return ErrMissingAnimation
	}
	return h.Interval.Validate()
}

// At evaluates the animation at progress p. The animation only ever sees
// progress in [0,1], also for curves like out-elastic that overshoot.
func (h Handle) At(p float64) shape.Layer {
	p = timing.Clamp01(p)
	if h.Ease != nil {
		p = timing.Clamp01(h.Ease(p))
	}
	return h.Animation.Animate(p)
}

// Evaluate evaluates the animation at time t in seconds.
func (h Handle) Evaluate(t float64) shape.Layer {
	return h.At(h.Interval.Progress(t))
}

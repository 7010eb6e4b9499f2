// Package effects contains the animation evaluators and the handles that place
// them in time.
//
// An Animation turns a progress value in [0,1] into a layer. Evaluators are
// shared read-only between frames, so implementations must not keep state
// that changes between calls.
package effects

import (
	"github.com/ivlev/shape2video/internal/shape"
)

// Animation produces the visual state of something at a given progress.
type Animation interface {
	Animate(progress float64) shape.Layer
}

// Func adapts a function to Animation.
type Func func(progress float64) shape.Layer

// Animate calls f.
func (f Func) Animate(progress float64) shape.Layer { return f(progress) }

// NoOp draws nothing. It is the usual enter or exit of an object that should
// simply appear or disappear.
type NoOp struct{}

// Animate returns an empty group at z 0.
func (NoOp) Animate(float64) shape.Layer {
	return shape.Layer{Node: shape.Empty()}
}

// Reverse plays the wrapped animation backwards.
type Reverse struct {
	Animation Animation
}

// Animate evaluates the wrapped animation at 1-progress.
func (r Reverse) Animate(progress float64) shape.Layer {
	return r.Animation.Animate(1 - progress)
}

// Fade fades an object in. The object is rendered once when the Fade is
// built.
type Fade struct {
	layer shape.Layer
}

// NewFade pre-renders obj.
func NewFade(obj shape.Object) Fade {
	return Fade{layer: obj.Render()}
}

// Animate wraps the pre-rendered node in a group with opacity progress.
func (f Fade) Animate(progress float64) shape.Layer {
	return shape.Layer{
		Z: f.layer.Z,
		Node: shape.Group{
			Opacity:  progress,
			Children: []shape.Node{f.layer.Node},
		},
	}
}

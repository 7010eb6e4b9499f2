package effects

import (
	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/timing"
)

// ErrMissingObject is returned for an entity without an object.
var ErrMissingObject = errors.New("missing object")

// Entity is an object with an enter and an exit animation. Between the end
// of Enter and the start of Exit the object itself is drawn. Enter is
// expected to end before Exit starts, but nothing enforces it.
type Entity struct {
	Object shape.Object
	Enter  Handle
	Exit   Handle
}

// NewEntity returns an entity that appears and disappears without animation.
func NewEntity(obj shape.Object) Entity {
	return Entity{
		Object: obj,
		Enter:  NewHandle(NoOp{}),
		Exit:   NewHandle(NoOp{}),
	}
}

// WithEnter replaces the enter handle.
func (e Entity) WithEnter(h Handle) Entity {
	e.Enter = h
	return e
}

// WithExit replaces the exit handle.
func (e Entity) WithExit(h Handle) Entity {
	e.Exit = h
	return e
}

// Lifetime moves the exit so it starts d seconds after the enter ends,
// keeping the exit's duration.
func (e Entity) Lifetime(d float64) Entity {
	e.Exit.Interval = timing.Span(e.Enter.End()+d, e.Exit.Duration())
	return e
}

// Steady is the window in which the plain object is drawn.
func (e Entity) Steady() timing.Interval {
	return timing.New(e.Enter.End(), e.Exit.Start())
}

// Validate checks the object and both handles.
func (e Entity) Validate() error {
	if e.Object == nil {
		return ErrMissingObject
	}
	if err := e.Enter.Validate(); err != nil {
		return errors.Wrap(err, "enter")
	}
	if err := e.Exit.Validate(); err != nil {
		return errors.Wrap(err, "exit")
	}
	return nil
}

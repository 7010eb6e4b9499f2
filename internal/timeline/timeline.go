// Package timeline collects static objects and animated entities and compiles
// them into per-frame descriptors at a fixed frame rate.
package timeline

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/effects"
	"github.com/ivlev/shape2video/internal/shape"
)

var (
	// ErrInvalidFrameRate is returned for a frame rate that is not positive.
	ErrInvalidFrameRate = errors.New("invalid frame rate")
	// ErrEmptyTimeline is returned when a duration is required but nothing
	// is animated.
	ErrEmptyTimeline = errors.New("empty timeline")
	// ErrUnknownHandle is returned for IDs that belong to another timeline or
	// are out of range.
	ErrUnknownHandle = errors.New("unknown handle")
)

// ObjectID refers to a static object of the Timeline that returned it.
type ObjectID struct {
	owner *Timeline
	index int
}

// EntityID refers to an entity of the Timeline that returned it.
type EntityID struct {
	owner *Timeline
	index int
}

// Timeline accumulates objects and entities. It is not safe for concurrent
// mutation; Compile only reads it.
type Timeline struct {
	statics  []shape.Object
	entities []effects.Entity
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// AddStatic adds an object drawn on every frame.
func (tl *Timeline) AddStatic(obj shape.Object) (ObjectID, error) {
	if obj == nil {
		return ObjectID{}, errors.Wrapf(effects.ErrMissingObject, "static %d", len(tl.statics))
	}
	tl.statics = append(tl.statics, obj)
	return ObjectID{owner: tl, index: len(tl.statics) - 1}, nil
}

// AddAnimated validates e and adds it.
func (tl *Timeline) AddAnimated(e effects.Entity) (EntityID, error) {
	if err := e.Validate(); err != nil {
		return EntityID{}, errors.Wrapf(err, "entity %d", len(tl.entities))
	}
	tl.entities = append(tl.entities, e)
	return EntityID{owner: tl, index: len(tl.entities) - 1}, nil
}

// Replace swaps the entity behind id for e, after validating it.
func (tl *Timeline) Replace(id EntityID, e effects.Entity) error {
	if _, err := tl.Entity(id); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return errors.Wrapf(err, "entity %d", id.index)
	}
	tl.entities[id.index] = e
	return nil
}

// Entity returns the entity behind id.
func (tl *Timeline) Entity(id EntityID) (effects.Entity, error) {
	if id.owner != tl || id.index < 0 || id.index >= len(tl.entities) {
		return effects.Entity{}, ErrUnknownHandle
	}
	return tl.entities[id.index], nil
}

// Object returns the static object behind id.
func (tl *Timeline) Object(id ObjectID) (shape.Object, error) {
	if id.owner != tl || id.index < 0 || id.index >= len(tl.statics) {
		return nil, ErrUnknownHandle
	}
	return tl.statics[id.index], nil
}

// Entities returns the entities in registration order.
func (tl *Timeline) Entities() []effects.Entity {
	return append([]effects.Entity(nil), tl.entities...)
}

// Statics returns the static objects in registration order.
func (tl *Timeline) Statics() []shape.Object {
	return append([]shape.Object(nil), tl.statics...)
}

// Len is the number of animated entities.
func (tl *Timeline) Len() int { return len(tl.entities) }

// Duration is the latest exit end over all entities, or zero.
func (tl *Timeline) Duration() float64 {
	end := 0.0
	for _, e := range tl.entities {
		end = math.Max(end, e.Exit.End())
	}
	return end
}

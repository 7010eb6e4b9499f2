package director

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ivlev/shape2video/internal/analyzer"
	"github.com/ivlev/shape2video/internal/effects"
	"github.com/ivlev/shape2video/internal/shape"
)

var (
	// ErrUnknownReference is returned when a scene names an object or entity
	// it does not define.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrCyclicReference is returned when timing ops depend on each other in
	// a loop.
	ErrCyclicReference = errors.New("cyclic reference")
	// ErrInvalidScene wraps every other problem found by Validate.
	ErrInvalidScene = errors.New("invalid scene")
)

// Validate reports every problem in the scene at once.
func (s *Scene) Validate() error {
	var errs error
	invalid := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, errors.Wrap(ErrInvalidScene, fmt.Sprintf(format, args...)))
	}
	unknown := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, errors.Wrap(ErrUnknownReference, fmt.Sprintf(format, args...)))
	}

	if s.Width < 0 || s.Height < 0 {
		invalid("size %dx%d", s.Width, s.Height)
	}
	if s.FPS < 0 {
		invalid("fps %d", s.FPS)
	}
	if s.Background != "" {
		if _, err := shape.ParseHex(s.Background); err != nil {
			invalid("background: %v", err)
		}
	}

	objects := make(map[string]ObjectSpec, len(s.Objects))
	for i, o := range s.Objects {
		name := o.Name
		if name == "" {
			invalid("object %d has no name", i)
			continue
		}
		if _, dup := objects[name]; dup {
			invalid("object %q defined twice", name)
		}
		objects[name] = o
		errs = multierr.Append(errs, o.validate())
	}

	for _, name := range s.Statics {
		if _, ok := objects[name]; !ok {
			unknown("static %q", name)
		}
	}

	entities := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			invalid("entity %d has no name", i)
			continue
		}
		if entities[e.Name] {
			invalid("entity %q defined twice", e.Name)
		}
		entities[e.Name] = true
	}

	for _, e := range s.Entities {
		obj, ok := objects[e.Object]
		if !ok {
			unknown("entity %q: object %q", e.Name, e.Object)
		}
		if e.Lifetime != nil && (*e.Lifetime < 0 || math.IsNaN(*e.Lifetime)) {
			invalid("entity %q: lifetime %v", e.Name, *e.Lifetime)
		}
		where := fmt.Sprintf("entity %q", e.Name)
		errs = multierr.Append(errs, e.Enter.validate(where+" enter", obj, ok, objects, entities))
		errs = multierr.Append(errs, e.Exit.validate(where+" exit", obj, ok, objects, entities))
	}

	last := math.Inf(-1)
	for i, k := range s.Camera {
		if k.Time < last {
			invalid("camera keyframe %d at %.2fs is out of order", i, k.Time)
		}
		if k.Zoom <= 0 {
			invalid("camera keyframe %d: zoom %v", i, k.Zoom)
		}
		last = k.Time
	}

	return errs
}

func (o ObjectSpec) validate() error {
	var errs error
	invalid := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, errors.Wrap(ErrInvalidScene,
			fmt.Sprintf("object %q: ", o.Name)+fmt.Sprintf(format, args...)))
	}

	if o.At != nil && len(o.At) != 2 {
		invalid("at needs 2 coordinates, got %d", len(o.At))
	}
	for _, c := range []struct{ field, value string }{
		{"fill", o.Fill}, {"outline", o.Outline}, {"color", o.Color},
	} {
		if c.value == "" {
			continue
		}
		if _, err := shape.ParseHex(c.value); err != nil {
			invalid("%s: %v", c.field, err)
		}
	}

	switch o.Kind {
	case KindPolygon:
		if len(o.Points) == 0 {
			invalid("polygon without points")
		}
		for i, p := range o.Points {
			if len(p) != 2 {
				invalid("point %d needs 2 coordinates, got %d", i, len(p))
			}
		}
	case KindRegular:
		if o.Sides < 3 {
			invalid("regular polygon with %d sides", o.Sides)
		}
		if o.Radius <= 0 {
			invalid("radius %v", o.Radius)
		}
	case KindRect:
		if o.Width <= 0 || o.Height <= 0 {
			invalid("size %vx%v", o.Width, o.Height)
		}
	case KindText:
		if o.Anchor != "" {
			switch shape.Anchor(o.Anchor) {
			case shape.AnchorStart, shape.AnchorMiddle, shape.AnchorEnd:
			default:
				invalid("anchor %q", o.Anchor)
			}
		}
	case KindQRCode:
		if o.Text == "" {
			invalid("qrcode without text")
		}
	case KindImage:
		if o.Source == "" {
			invalid("image without source")
		}
		if o.Width <= 0 || o.Height <= 0 {
			invalid("size %vx%v", o.Width, o.Height)
		}
		if o.Crop != "" {
			if _, err := analyzer.NewDetector(o.Crop); err != nil {
				invalid("crop: %v", err)
			}
		}
		if o.Margin < 0 {
			invalid("margin %d", o.Margin)
		}
	default:
		invalid("unknown kind %q", o.Kind)
	}
	return errs
}

func isPolygonKind(kind string) bool {
	return kind == KindPolygon || kind == KindRect || kind == KindRegular
}

func (a AnimationSpec) validate(where string, obj ObjectSpec, haveObj bool,
	objects map[string]ObjectSpec, entities map[string]bool,
) error {
	var errs error
	invalid := func(format string, args ...interface{}) {
		errs = multierr.Append(errs, errors.Wrap(ErrInvalidScene, where+": "+fmt.Sprintf(format, args...)))
	}

	if a.Duration != nil && (*a.Duration < 0 || math.IsNaN(*a.Duration)) {
		invalid("duration %v", *a.Duration)
	}
	if _, err := effects.Easing(a.Ease); err != nil {
		invalid("%v", err)
	}

	switch a.Kind {
	case "", AnimNone, AnimFade:
	case AnimDraw:
		if haveObj && !isPolygonKind(obj.Kind) {
			invalid("draw needs a polygon, %q is a %s", obj.Name, obj.Kind)
		}
	case AnimMorph:
		if haveObj && !isPolygonKind(obj.Kind) {
			invalid("morph needs a polygon, %q is a %s", obj.Name, obj.Kind)
		}
		from, ok := objects[a.From]
		switch {
		case !ok:
			errs = multierr.Append(errs, errors.Wrapf(ErrUnknownReference, "%s: morph from %q", where, a.From))
		case !isPolygonKind(from.Kind):
			invalid("morph needs a polygon, %q is a %s", from.Name, from.Kind)
		}
	case AnimType:
		if haveObj && obj.Kind != KindText {
			invalid("type needs text, %q is a %s", obj.Name, obj.Kind)
		}
	default:
		invalid("unknown animation %q", a.Kind)
	}

	for i, op := range a.Timing {
		switch op.Op {
		case OpDelay:
		case OpDuration, OpDurationKeepEnd:
			if op.Value < 0 {
				invalid("op %d: %s %v", i, op.Op, op.Value)
			}
		case OpAfter, OpStartWith, OpEndWith, OpSynchronize:
			name, side, err := splitRef(op.Ref)
			if err != nil {
				invalid("op %d: %v", i, err)
				continue
			}
			if !entities[name] {
				errs = multierr.Append(errs, errors.Wrapf(ErrUnknownReference, "%s: op %d: entity %q (%s)", where, i, name, side))
			}
		default:
			invalid("op %d: unknown op %q", i, op.Op)
		}
	}
	return errs
}

// splitRef splits "<entity>.enter" or "<entity>.exit".
func splitRef(ref string) (string, string, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 {
		return "", "", errors.Errorf("reference %q is not <entity>.enter or <entity>.exit", ref)
	}
	name, side := ref[:i], ref[i+1:]
	if side != "enter" && side != "exit" {
		return "", "", errors.Errorf("reference %q is not <entity>.enter or <entity>.exit", ref)
	}
	return name, side, nil
}

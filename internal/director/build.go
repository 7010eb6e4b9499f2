package director

import (
	"image"
	"math"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ivlev/shape2video/internal/analyzer"
	"github.com/ivlev/shape2video/internal/effects"
	"github.com/ivlev/shape2video/internal/morph"
	"github.com/ivlev/shape2video/internal/shape"
	"github.com/ivlev/shape2video/internal/source"
	"github.com/ivlev/shape2video/internal/timeline"
	"github.com/ivlev/shape2video/internal/timing"
)

// Build validates the scene and turns it into a timeline. Entities are added
// in scene order; timing ops may refer to any entity as long as the
// references do not form a loop.
func Build(scene *Scene) (*timeline.Timeline, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		scene:    scene,
		objects:  make(map[string]shape.Object, len(scene.Objects)),
		specs:    make(map[string]EntitySpec, len(scene.Entities)),
		base:     make(map[string]effects.Handle),
		resolved: make(map[string]effects.Handle),
		visiting: make(map[string]bool),
	}
	for _, o := range scene.Objects {
		obj, err := b.buildObject(o)
		if err != nil {
			return nil, errors.Wrapf(err, "object %q", o.Name)
		}
		b.objects[o.Name] = obj
	}

	tl := timeline.New()
	for _, name := range scene.Statics {
		if _, err := tl.AddStatic(b.objects[name]); err != nil {
			return nil, err
		}
	}

	for _, e := range scene.Entities {
		b.specs[e.Name] = e
		for side, a := range []AnimationSpec{e.Enter, e.Exit} {
			h, err := b.buildHandle(e, a)
			if err != nil {
				return nil, errors.Wrapf(err, "entity %q %s", e.Name, sides[side])
			}
			b.base[e.Name+"."+sides[side]] = h
		}
	}

	for _, e := range scene.Entities {
		enter, err := b.resolve(e.Name + ".enter")
		if err != nil {
			return nil, err
		}
		exit, err := b.resolve(e.Name + ".exit")
		if err != nil {
			return nil, err
		}
		entity := effects.Entity{Object: b.objects[e.Object], Enter: enter, Exit: exit}
		if _, err := tl.AddAnimated(entity); err != nil {
			return nil, errors.Wrapf(err, "entity %q", e.Name)
		}
	}
	return tl, nil
}

var sides = [2]string{"enter", "exit"}

type builder struct {
	scene    *Scene
	objects  map[string]shape.Object
	specs    map[string]EntitySpec
	base     map[string]effects.Handle
	resolved map[string]effects.Handle
	visiting map[string]bool
}

func point(at []float64) shape.Point {
	if len(at) != 2 {
		return shape.Pt(0, 0)
	}
	return shape.Pt(at[0], at[1])
}

func (b *builder) buildObject(o ObjectSpec) (shape.Object, error) {
	at := point(o.At)

	switch o.Kind {
	case KindPolygon, KindRect, KindRegular:
		return polygonOf(o)
	case KindText:
		t := shape.NewText(o.Text).At(at.X, at.Y).WithZ(o.Z)
		if o.Size > 0 {
			t = t.WithSize(o.Size)
		}
		if o.Anchor != "" {
			t = t.WithAnchor(shape.Anchor(o.Anchor))
		}
		if o.Color != "" {
			t = t.WithColor(shape.MustHex(o.Color))
		}
		return t, nil
	case KindQRCode:
		module := o.Size
		if module <= 0 {
			module = 10
		}
		q, err := shape.NewQRCode(o.Text, module)
		if err != nil {
			return nil, err
		}
		q = q.At(at.X, at.Y).WithZ(o.Z)
		if o.Color != "" {
			q = q.WithColor(shape.MustHex(o.Color))
		}
		return q, nil
	case KindImage:
		path := o.Source
		if !filepath.IsAbs(path) && b.scene.Dir != "" {
			path = filepath.Join(b.scene.Dir, path)
		}
		img, err := source.LoadPage(path, o.Page, source.DefaultDPI)
		if err != nil {
			return nil, err
		}
		if o.Crop != "" {
			if img, err = cropContent(img, o.Crop, o.Margin); err != nil {
				return nil, errors.Wrapf(err, "crop %s", o.Source)
			}
		}
		return shape.NewImage(img, at.X-o.Width/2, at.Y-o.Height/2, o.Width, o.Height).WithZ(o.Z), nil
	}
	return nil, errors.Wrapf(ErrInvalidScene, "unknown kind %q", o.Kind)
}

// cropContent trims img to what the detector for mode finds on it.
func cropContent(img image.Image, mode string, margin int) (image.Image, error) {
	d, err := analyzer.NewDetector(mode)
	if err != nil {
		return nil, err
	}
	r, err := analyzer.ContentBounds(d, img, margin)
	if errors.Is(err, analyzer.ErrNoContent) {
		return img, nil
	}
	if err != nil {
		return nil, err
	}
	return analyzer.Crop(img, r), nil
}

// polygonOf builds the polygon for a polygon, rect or regular object.
func polygonOf(o ObjectSpec) (shape.Polygon, error) {
	var p shape.Polygon
	switch o.Kind {
	case KindPolygon:
		pts := make([]shape.Point, len(o.Points))
		for i, xy := range o.Points {
			pts[i] = point(xy)
		}
		p = shape.NewPolygon(pts...)
	case KindRect:
		p = shape.Rect(-o.Width/2, -o.Height/2, o.Width, o.Height)
	case KindRegular:
		p = shape.Regular(o.Sides, o.Radius, o.Rotation*math.Pi/180)
	default:
		return shape.Polygon{}, errors.Wrapf(ErrInvalidScene, "%q is a %s, not a polygon", o.Name, o.Kind)
	}

	at := point(o.At)
	p = p.Shift(at.X, at.Y).WithZ(o.Z)
	if o.Fill != "" {
		fill := shape.MustHex(o.Fill)
		p = p.WithFill(fill).WithOutline(fill.Darken(0.5))
	}
	if o.Outline != "" {
		p = p.WithOutline(shape.MustHex(o.Outline))
	}
	if o.Stroke != nil {
		p = p.WithStroke(*o.Stroke)
	}
	return p, p.Validate()
}

func (b *builder) specOf(name string) ObjectSpec {
	for _, o := range b.scene.Objects {
		if o.Name == name {
			return o
		}
	}
	return ObjectSpec{}
}

func (b *builder) buildHandle(e EntitySpec, a AnimationSpec) (effects.Handle, error) {
	obj := b.objects[e.Object]

	var anim effects.Animation
	switch a.Kind {
	case "", AnimNone:
		anim = effects.NoOp{}
	case AnimFade:
		anim = effects.NewFade(obj)
	case AnimDraw:
		p, err := polygonOf(b.specOf(e.Object))
		if err != nil {
			return effects.Handle{}, err
		}
		anim = effects.NewDraw(p)
	case AnimMorph:
		from, err := polygonOf(b.specOf(a.From))
		if err != nil {
			return effects.Handle{}, err
		}
		to, err := polygonOf(b.specOf(e.Object))
		if err != nil {
			return effects.Handle{}, err
		}
		var opts []morph.Option
		if a.Strict {
			opts = append(opts, morph.Strict())
		}
		m, err := effects.NewMorph(from, to, opts...)
		if err != nil {
			return effects.Handle{}, err
		}
		anim = m
	case AnimType:
		text, ok := obj.(shape.Text)
		if !ok {
			return effects.Handle{}, errors.Wrapf(ErrInvalidScene, "type needs text, %q is %T", e.Object, obj)
		}
		anim = effects.NewTypeText(text)
	default:
		return effects.Handle{}, errors.Wrapf(ErrInvalidScene, "unknown animation %q", a.Kind)
	}

	h := effects.NewHandle(anim)
	switch {
	case a.Duration != nil:
		h = h.WithDuration(*a.Duration)
	case a.Kind == AnimType && a.WPM > 0:
		h = h.WithDuration(obj.(shape.Text).WPM(a.WPM))
	}
	if a.Reverse {
		h = h.Reverse()
	}
	ease, err := effects.Easing(a.Ease)
	if err != nil {
		return effects.Handle{}, err
	}
	return h.WithEase(ease), nil
}

// resolve applies the timing ops of the handle named "<entity>.<side>",
// resolving the handles it refers to first.
func (b *builder) resolve(ref string) (effects.Handle, error) {
	if h, ok := b.resolved[ref]; ok {
		return h, nil
	}
	if b.visiting[ref] {
		return effects.Handle{}, errors.Wrapf(ErrCyclicReference, "%s", ref)
	}
	b.visiting[ref] = true
	defer delete(b.visiting, ref)

	name, side, err := splitRef(ref)
	if err != nil {
		return effects.Handle{}, err
	}
	spec, ok := b.specs[name]
	if !ok {
		return effects.Handle{}, errors.Wrapf(ErrUnknownReference, "entity %q", name)
	}
	h := b.base[ref]
	a := spec.Enter

	if side == "exit" {
		a = spec.Exit
		if spec.Lifetime != nil {
			enter, err := b.resolve(name + ".enter")
			if err != nil {
				return effects.Handle{}, err
			}
			h.Interval = timing.Span(enter.End()+*spec.Lifetime, h.Duration())
		}
	}

	for i, op := range a.Timing {
		switch op.Op {
		case OpDelay:
			h = h.Delay(op.Value)
		case OpDuration:
			h = h.WithDuration(op.Value)
		case OpDurationKeepEnd:
			h = h.WithDurationKeepEnd(op.Value)
		default:
			other, err := b.resolve(op.Ref)
			if err != nil {
				return effects.Handle{}, errors.Wrapf(err, "%s op %d", ref, i)
			}
			switch op.Op {
			case OpAfter:
				h = h.After(other)
			case OpStartWith:
				h = h.StartWith(other)
			case OpEndWith:
				h = h.EndWith(other)
			case OpSynchronize:
				h = h.Synchronize(other)
			}
		}
	}

	b.resolved[ref] = h
	return h, nil
}

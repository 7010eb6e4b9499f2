package timing

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestWithDuration(t *testing.T) {
	for _, d := range []float64{0, 0.1, 1, 2.5, 1e6} {
		for _, start := range []float64{-3, 0, 0.7, 42} {
			got := New(start, start+10).WithDuration(d).Duration()
			test.That(t, got, test.ShouldAlmostEqual, d, 1e-9)
		}
	}
}

func TestCombinators(t *testing.T) {
	a := New(0, 2)
	b := New(0, 1)

	t.Run("after", func(t *testing.T) {
		got := b.After(a)
		test.That(t, got, test.ShouldResemble, New(2, 3))
		// the referenced interval is untouched
		test.That(t, a, test.ShouldResemble, New(0, 2))
	})

	t.Run("duration keep end", func(t *testing.T) {
		test.That(t, New(1, 5).WithDurationKeepEnd(1.5), test.ShouldResemble, New(3.5, 5))
	})

	t.Run("delay", func(t *testing.T) {
		test.That(t, New(1, 2).Delay(0.5), test.ShouldResemble, New(1.5, 2.5))
		test.That(t, New(1, 2).Delay(-1), test.ShouldResemble, New(0, 1))
	})

	t.Run("start and end with", func(t *testing.T) {
		other := New(4, 9)
		test.That(t, New(1, 6).StartWith(other), test.ShouldResemble, New(4, 6))
		test.That(t, New(1, 6).EndWith(other), test.ShouldResemble, New(1, 9))
		test.That(t, New(1, 6).StartWith(other).EndWith(New(0, 5)), test.ShouldResemble, New(4, 5))
	})

	t.Run("synchronize", func(t *testing.T) {
		test.That(t, b.Synchronize(New(3, 7)), test.ShouldResemble, New(3, 7))
	})

	t.Run("span and default", func(t *testing.T) {
		test.That(t, Span(2, 0.5), test.ShouldResemble, New(2, 2.5))
		test.That(t, Default(), test.ShouldResemble, New(0, 1))
	})
}

func TestProgress(t *testing.T) {
	iv := New(1, 3)
	tests := []struct {
		at   float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 0.5},
		{3, 1},
		{10, 1},
	}
	for _, tt := range tests {
		test.That(t, iv.Progress(tt.at), test.ShouldAlmostEqual, tt.want)
	}

	t.Run("instant", func(t *testing.T) {
		inst := New(2, 2)
		test.That(t, inst.IsInstant(), test.ShouldBeTrue)
		for _, at := range []float64{0, 2, 5} {
			p := inst.Progress(at)
			test.That(t, math.IsNaN(p), test.ShouldBeFalse)
			test.That(t, p, test.ShouldEqual, 1.0)
		}
	})

	t.Run("clamp", func(t *testing.T) {
		test.That(t, Clamp01(math.NaN()), test.ShouldEqual, 0.0)
		test.That(t, Clamp01(-0.0001), test.ShouldEqual, 0.0)
		test.That(t, Clamp01(1.0001), test.ShouldEqual, 1.0)
		test.That(t, Clamp01(0.25), test.ShouldEqual, 0.25)
	})
}

func TestContains(t *testing.T) {
	iv := New(1, 2)
	test.That(t, iv.Contains(1), test.ShouldBeTrue)
	test.That(t, iv.Contains(1.999), test.ShouldBeTrue)
	test.That(t, iv.Contains(2), test.ShouldBeFalse)
	test.That(t, iv.Contains(0.5), test.ShouldBeFalse)
}

func TestValidate(t *testing.T) {
	test.That(t, New(0, 1).Validate(), test.ShouldBeNil)
	test.That(t, New(2, 2).Validate(), test.ShouldBeNil)

	for _, iv := range []Interval{
		New(2, 1),
		New(math.NaN(), 1),
		New(0, math.Inf(1)),
	} {
		err := iv.Validate()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, errors.Is(err, ErrDegenerateInterval), test.ShouldBeTrue)
	}
}

package shape

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestColor(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		c, err := ParseHex("#c80000")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c, test.ShouldResemble, RGB(200, 0, 0))

		c, err = ParseHex("#0000c880")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c, test.ShouldResemble, Color{R: 0, G: 0, B: 200, A: 128})
		test.That(t, c.Hex(), test.ShouldEqual, "#0000c880")

		_, err = ParseHex("nope")
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("lerp rounds", func(t *testing.T) {
		// truncation would give 127
		got := RGB(0, 0, 0).Lerp(RGB(255, 255, 255), 0.5)
		test.That(t, got, test.ShouldResemble, RGB(128, 128, 128))

		test.That(t, RGB(10, 20, 30).Lerp(RGB(200, 100, 0), 0), test.ShouldResemble, RGB(10, 20, 30))
		test.That(t, RGB(10, 20, 30).Lerp(RGB(200, 100, 0), 1), test.ShouldResemble, RGB(200, 100, 0))
	})

	t.Run("darken", func(t *testing.T) {
		test.That(t, RGB(200, 0, 0).Darken(0.5), test.ShouldResemble, RGB(100, 0, 0))
		test.That(t, RGB(200, 0, 0).Darken(2), test.ShouldResemble, RGB(200, 0, 0))
	})
}

func TestPolygon(t *testing.T) {
	sq := Rect(0, 0, 2, 2)
	test.That(t, sq.Len(), test.ShouldEqual, 4)

	t.Run("shift copies", func(t *testing.T) {
		moved := sq.Shift(1, -1)
		test.That(t, moved.Points[0], test.ShouldResemble, Pt(1, -1))
		test.That(t, sq.Points[0], test.ShouldResemble, Pt(0, 0))
	})

	t.Run("add point copies", func(t *testing.T) {
		more := sq.AddPoint(5, 5)
		test.That(t, more.Len(), test.ShouldEqual, 5)
		test.That(t, sq.Len(), test.ShouldEqual, 4)
	})

	t.Run("render", func(t *testing.T) {
		l := sq.WithZ(3).Render()
		test.That(t, l.Z, test.ShouldEqual, 3)
		p, ok := l.Node.(Polygon)
		test.That(t, ok, test.ShouldBeTrue)
		p.Points[0] = Pt(9, 9)
		test.That(t, sq.Points[0], test.ShouldResemble, Pt(0, 0))
	})

	t.Run("validate", func(t *testing.T) {
		test.That(t, sq.Validate(), test.ShouldBeNil)
		err := NewPolygon().Validate()
		test.That(t, errors.Is(err, ErrDegeneratePolygon), test.ShouldBeTrue)
		err = NewPolygon(Pt(math.NaN(), 0)).Validate()
		test.That(t, errors.Is(err, ErrDegeneratePolygon), test.ShouldBeTrue)
	})

	t.Run("regular", func(t *testing.T) {
		tri := Regular(3, 1, 0)
		test.That(t, tri.Len(), test.ShouldEqual, 3)
		test.That(t, tri.Points[0].X, test.ShouldAlmostEqual, 1)
		test.That(t, tri.Points[0].Y, test.ShouldAlmostEqual, 0)
	})
}

func TestText(t *testing.T) {
	txt := NewText("Square").WithSize(50).At(0, -200)
	test.That(t, txt.WPM(60), test.ShouldAlmostEqual, 6.0/5.0)

	b := txt.Bounds()
	test.That(t, b.Center().X, test.ShouldAlmostEqual, 0)
	test.That(t, b.Hi().Y, test.ShouldAlmostEqual, -200)
}

func TestQRCode(t *testing.T) {
	q, err := NewQRCode("shape2video", 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Size(), test.ShouldBeGreaterThan, 0)

	l := q.At(10, 10).WithZ(2).Render()
	test.That(t, l.Z, test.ShouldEqual, 2)
	g, ok := l.Node.(Group)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(g.Children), test.ShouldBeGreaterThan, 0)

	side := float64(q.Size()) * 4
	b := g.Bounds()
	test.That(t, b.Lo().X, test.ShouldBeGreaterThanOrEqualTo, 10-side/2-1e-9)
	test.That(t, b.Hi().X, test.ShouldBeLessThanOrEqualTo, 10+side/2+1e-9)
}

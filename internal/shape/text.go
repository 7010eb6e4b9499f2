package shape

import (
	"unicode/utf8"

	"github.com/golang/geo/r2"
)

// Anchor is where a text's position sits relative to the text.
type Anchor string

// Anchors, named after the SVG text-anchor values.
const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// averageWordLength is used to turn words per minute into characters.
const averageWordLength = 5.0

// Text is a single line of text. Pos is the anchor point on the baseline.
type Text struct {
	Content string
	Pos     Point
	Size    float64
	Color   Color
	Anchor  Anchor
	Z       int
}

// NewText returns white, centred, 100 unit text at the origin.
func NewText(s string) Text {
	return Text{
		Content: s,
		Size:    100,
		Color:   White,
		Anchor:  AnchorMiddle,
	}
}

// At sets the anchor position.
func (t Text) At(x, y float64) Text {
	t.Pos = Pt(x, y)
	return t
}

// Shift moves the text by (dx, dy).
func (t Text) Shift(dx, dy float64) Text {
	t.Pos = t.Pos.Add(Pt(dx, dy))
	return t
}

// WithSize sets the font size.
func (t Text) WithSize(size float64) Text {
	t.Size = size
	return t
}

// WithColor sets the text colour.
func (t Text) WithColor(c Color) Text {
	t.Color = c
	return t
}

// WithAnchor sets the anchor.
func (t Text) WithAnchor(a Anchor) Text {
	t.Anchor = a
	return t
}

// WithZ sets the z-index.
func (t Text) WithZ(z int) Text {
	t.Z = z
	return t
}

// WithContent replaces the string, keeping the style.
func (t Text) WithContent(s string) Text {
	t.Content = s
	return t
}

// WPM is the time in seconds needed to type the text at wpm words per minute.
func (t Text) WPM(wpm float64) float64 {
	return float64(len(t.Content)) / averageWordLength / wpm * 60
}

// Bounds implements Node. Without font metrics the width is estimated at half
// an em per rune; the rasterizer measures exactly.
func (t Text) Bounds() r2.Rect {
	w := float64(utf8.RuneCountInString(t.Content)) * t.Size * 0.5
	x := t.Pos.X
	switch t.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	return r2.RectFromPoints(Pt(x, t.Pos.Y-t.Size), Pt(x+w, t.Pos.Y))
}

// Render implements Object.
func (t Text) Render() Layer {
	return Layer{Z: t.Z, Node: t}
}

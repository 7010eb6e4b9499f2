package effects

import (
	"math"

	"github.com/ivlev/shape2video/internal/shape"
)

const cursor = "_"

// TypeText types a text out rune by rune with a trailing cursor.
type TypeText struct {
	Text shape.Text
}

// NewTypeText returns a TypeText for t.
func NewTypeText(t shape.Text) TypeText {
	return TypeText{Text: t}
}

// Animate shows the first floor(len*progress) runes. The cursor is shown
// until every rune is typed.
func (a TypeText) Animate(progress float64) shape.Layer {
	runes := []rune(a.Text.Content)
	n := int(math.Floor(float64(len(runes)) * progress))
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	s := string(runes[:n])
	if n != len(runes) {
		s += cursor
	}
	return a.Text.WithContent(s).Render()
}

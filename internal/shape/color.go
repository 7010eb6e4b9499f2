package shape

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is a straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Common colours.
var (
	White       = RGB(255, 255, 255)
	Black       = RGB(0, 0, 0)
	Gray        = RGB(100, 100, 100)
	Transparent = Color{}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "bad alpha in colour %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrapf(err, "bad colour %q", s)
	}
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustHex is ParseHex for package-level constants.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	h := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A != 255 {
		h += fmt.Sprintf("%02x", c.A)
	}
	return h
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Lerp interpolates every channel independently. Channels are rounded to the
// nearest value so that mid-way colours do not drift darker.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerpChannel(c.R, to.R, t),
		G: lerpChannel(c.G, to.G, t),
		B: lerpChannel(c.B, to.B, t),
		A: lerpChannel(c.A, to.A, t),
	}
}

// Darken scales the colour channels by amount in [0,1], keeping alpha.
func (c Color) Darken(amount float64) Color {
	amount = math.Max(0, math.Min(1, amount))
	return Color{
		R: roundChannel(float64(c.R) * amount),
		G: roundChannel(float64(c.G) * amount),
		B: roundChannel(float64(c.B) * amount),
		A: c.A,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return roundChannel(float64(a) + (float64(b)-float64(a))*t)
}

func roundChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

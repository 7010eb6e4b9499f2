package shape

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCode renders a QR symbol as filled squares, one rectangle per horizontal
// run of dark modules.
type QRCode struct {
	Content string
	Center  Point
	Module  float64
	Color   Color
	Z       int

	bitmap [][]bool
}

// NewQRCode encodes content at medium recovery. module is the side of one
// module in scene units.
func NewQRCode(content string, module float64) (QRCode, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return QRCode{}, errors.Wrapf(err, "encode qr %q", content)
	}
	q.DisableBorder = true
	return QRCode{
		Content: content,
		Module:  module,
		Color:   White,
		bitmap:  q.Bitmap(),
	}, nil
}

// At centres the symbol on (x, y).
func (q QRCode) At(x, y float64) QRCode {
	q.Center = Pt(x, y)
	return q
}

// WithColor sets the module colour.
func (q QRCode) WithColor(c Color) QRCode {
	q.Color = c
	return q
}

// WithZ sets the z-index.
func (q QRCode) WithZ(z int) QRCode {
	q.Z = z
	return q
}

// Size is the number of modules per side.
func (q QRCode) Size() int {
	return len(q.bitmap)
}

// Render implements Object.
func (q QRCode) Render() Layer {
	n := float64(len(q.bitmap))
	origin := q.Center.Sub(Pt(n*q.Module/2, n*q.Module/2))

	g := Group{Opacity: 1}
	for y, row := range q.bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			run := x
			for run < len(row) && row[run] {
				run++
			}
			sq := Rect(
				origin.X+float64(x)*q.Module,
				origin.Y+float64(y)*q.Module,
				float64(run-x)*q.Module,
				q.Module,
			).WithFill(q.Color).WithOutline(Transparent).WithStroke(0)
			g.Children = append(g.Children, sq)
			x = run
		}
	}
	return Layer{Z: q.Z, Node: g}
}

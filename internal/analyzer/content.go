package analyzer

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ContrastDetector finds content by its edges: a Sobel gradient is
// thresholded, dilated so letters of one paragraph join up, and every
// connected region large enough becomes a block.
type ContrastDetector struct {
	MinBlockArea  int     // pixels², smaller regions are noise
	EdgeThreshold float64 // gradient magnitude
	DilateRadius  int
	DilatePasses  int
}

// NewContrastDetector returns a detector tuned for rasterized PDF pages.
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500, // ~22x22
		EdgeThreshold: 30,
		DilateRadius:  2,
		DilatePasses:  2,
	}
}

// mask is a binary image in local coordinates.
type mask struct {
	w, h int
	bits []bool
}

func newMask(w, h int) *mask {
	return &mask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *mask) at(x, y int) bool {
	return m.bits[y*m.w+x]
}

// Detect implements Detector.
func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, b.Min, xdraw.Src)

	edges := d.sobel(gray)
	for i := 0; i < d.DilatePasses; i++ {
		edges = dilate(edges, d.DilateRadius)
	}

	var blocks []Block
	for _, blk := range components(edges) {
		if blk.Rect.Dx()*blk.Rect.Dy() < d.MinBlockArea {
			continue
		}
		blk.Rect = blk.Rect.Add(b.Min)
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func (d *ContrastDetector) sobel(gray *image.Gray) *mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := newMask(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				row := (y + ky) * gray.Stride
				for kx := -1; kx <= 1; kx++ {
					v := float64(gray.Pix[row+x+kx])
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			out.bits[y*w+x] = math.Hypot(gx, gy) > d.EdgeThreshold
		}
	}
	return out
}

// dilate sets every pixel within radius (Chebyshev) of a set pixel.
func dilate(m *mask, radius int) *mask {
	out := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) {
				continue
			}
			for yy := max(0, y-radius); yy <= min(m.h-1, y+radius); yy++ {
				for xx := max(0, x-radius); xx <= min(m.w-1, x+radius); xx++ {
					out.bits[yy*m.w+xx] = true
				}
			}
		}
	}
	return out
}

// components returns the bounding box of every 4-connected region.
func components(m *mask) []Block {
	visited := make([]bool, len(m.bits))
	var blocks []Block
	var stack []image.Point

	for start := range m.bits {
		if !m.bits[start] || visited[start] {
			continue
		}
		x0, y0 := start%m.w, start/m.w
		r := image.Rect(x0, y0, x0+1, y0+1)
		area := 0

		visited[start] = true
		stack = append(stack[:0], image.Pt(x0, y0))
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++
			r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

			for _, n := range [4]image.Point{p.Add(image.Pt(1, 0)), p.Add(image.Pt(-1, 0)), p.Add(image.Pt(0, 1)), p.Add(image.Pt(0, -1))} {
				if n.X < 0 || n.Y < 0 || n.X >= m.w || n.Y >= m.h {
					continue
				}
				i := n.Y*m.w + n.X
				if m.bits[i] && !visited[i] {
					visited[i] = true
					stack = append(stack, n)
				}
			}
		}
		blocks = append(blocks, Block{Rect: r, Area: area})
	}
	return blocks
}

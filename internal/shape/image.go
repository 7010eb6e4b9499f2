package shape

import "image"

// Image places a bitmap, typically a backdrop, in scene space.
type Image struct {
	Raster
	Z int
}

// NewImage places img with its top-left corner at (x, y) scaled to w by h.
func NewImage(img image.Image, x, y, w, h float64) Image {
	return Image{Raster: Raster{Image: img, Min: Pt(x, y), Size: Pt(w, h)}}
}

// WithZ sets the z-index.
func (i Image) WithZ(z int) Image {
	i.Z = z
	return i
}

// Render implements Object.
func (i Image) Render() Layer {
	return Layer{Z: i.Z, Node: i.Raster}
}

// Package analyzer finds the regions of a raster image that carry content,
// so an image object can be cropped to what is actually drawn on a page.
package analyzer

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrNoContent is returned when a detector finds nothing to crop to.
	ErrNoContent = errors.New("no content detected")
	// ErrUnknownDetector is returned by NewDetector for an unsupported variant.
	ErrUnknownDetector = errors.New("unknown detector")
)

// Block is one detected region of interest.
type Block struct {
	Rect image.Rectangle
	// Area is the number of edge pixels inside Rect, not Rect's area.
	Area int
}

// Detector finds regions of interest in an image.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// NewDetector returns the detector for a crop mode of an image object.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "content", "":
		return NewContrastDetector(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownDetector, "%q", variant)
	}
}

// ContentBounds is the union of every block found in img, grown by margin
// pixels and clipped to the image.
func ContentBounds(d Detector, img image.Image, margin int) (image.Rectangle, error) {
	blocks, err := d.Detect(img)
	if err != nil {
		return image.Rectangle{}, err
	}
	if len(blocks) == 0 {
		return image.Rectangle{}, ErrNoContent
	}

	r := blocks[0].Rect
	for _, b := range blocks[1:] {
		r = r.Union(b.Rect)
	}
	return r.Inset(-margin).Intersect(img.Bounds()), nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the part of img inside r, with bounds starting at r.Min.
// Images without SubImage are copied.
func Crop(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	out := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

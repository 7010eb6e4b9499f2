// Package source loads raster backdrops for image objects, either from the
// pages of a PDF document or from image files.
package source

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pkg/errors"
)

// DefaultDPI is the resolution PDF pages are rasterized at.
const DefaultDPI = 150

// ErrPageOutOfRange is returned for a page index the source does not have.
var ErrPageOutOfRange = errors.New("page out of range")

// Source is a sequence of pages that can be rasterized.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the source type from the path: a .pdf file is read with fitz,
// anything else as an image file or a directory of images.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// LoadPage opens path and rasterizes a single page of it.
func LoadPage(path string, page, dpi int) (image.Image, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if page < 0 || page >= src.PageCount() {
		return nil, errors.Wrapf(ErrPageOutOfRange, "%s has %d pages, want page %d", path, src.PageCount(), page)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return src.RenderPage(page, dpi)
}

// FitzPDFSource renders PDF pages with MuPDF.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

// NewFitzPDFSource opens the document at path.
func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open pdf %s", path)
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

// PageCount implements Source.
func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

// GetPageDimensions implements Source.
func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage implements Source. A fitz document must not be shared between
// goroutines, so every call opens its own.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

// Close implements Source.
func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
